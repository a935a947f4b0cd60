package integrations

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"traintracker/internal/models"
	"traintracker/internal/parser"
)

// Внешние API присылают одни и те же поля под разными именами. Сначала
// сырой JSON приводится к одному промежуточному виду (externalItem),
// и только потом включаются общие эвристики типа/уровня — иначе
// алиасы расползаются по каждому маппер-у.

type externalItem struct {
	ID        string
	Date      string
	TimeStart string
	TimeEnd   string
	Type      string
	Level     string
	Coach     string
	Location  string
	Title     string
	SignupURL string
	Price     int
	Spots     int
}

// DecodeItems принимает либо голый массив, либо объект с полем
// data/trainings. Всё остальное — ошибка формата.
func DecodeItems(payload []byte) ([]map[string]interface{}, error) {
	var items []map[string]interface{}
	if err := json.Unmarshal(payload, &items); err == nil {
		return items, nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, fmt.Errorf("нераспознанный формат ответа: %w", err)
	}
	for _, key := range []string{"data", "trainings"} {
		if raw, ok := wrapper[key]; ok {
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, fmt.Errorf("поле %s не является списком: %w", key, err)
			}
			return items, nil
		}
	}
	return nil, fmt.Errorf("в ответе нет ни массива, ни поля data/trainings")
}

func normalizeItem(m map[string]interface{}) externalItem {
	return externalItem{
		ID:        getString(m, "id", "external_id", "uid"),
		Date:      getString(m, "date", "day", "training_date"),
		TimeStart: getString(m, "time_start", "timeStart", "start_time", "start"),
		TimeEnd:   getString(m, "time_end", "timeEnd", "end_time", "end"),
		Type:      getString(m, "type", "training_type", "kind"),
		Level:     getString(m, "level", "skill_level"),
		Coach:     getString(m, "coach", "trainer", "instructor"),
		Location:  getString(m, "location", "place", "address"),
		Title:     getString(m, "title", "name"),
		SignupURL: getString(m, "signup_url", "url", "link"),
		Price:     getInt(m, "price", "cost"),
		Spots:     getInt(m, "spots", "capacity", "total_spots", "seats"),
	}
}

func getString(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

func getInt(m map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return int(v)
		case string:
			var n int
			if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
				return n
			}
		}
	}
	return 0
}

var isoDateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func normalizeDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if isoDateRE.MatchString(s) {
		return s
	}
	return parser.ExtractDate(s, now)
}

func mapItem(it externalItem, messageID string, now time.Time) *models.Training {
	date := normalizeDate(it.Date, now)
	if date == "" || it.TimeStart == "" || !parser.IsValidTime(it.TimeStart) {
		return nil
	}
	end := it.TimeEnd
	if !parser.IsValidTime(end) {
		end = ""
	}

	typ := it.Type
	if typ == "" {
		typ = typeFromTitle(it.Title)
	}
	level := it.Level
	if level == "" {
		level = levelFromTitle(it.Title)
	}

	return &models.Training{
		Date:      date,
		TimeStart: it.TimeStart,
		TimeEnd:   end,
		Type:      typ,
		Level:     level,
		Coach:     it.Coach,
		Location:  it.Location,
		Price:     it.Price,
		Spots:     it.Spots,
		Title:     it.Title,
		SignupURL: it.SignupURL,
		MessageID: messageID,
	}
}

// MapPollingBatch разбирает ответ опрашиваемого API. Источник синхронизируется
// целиком (будущие записи канала стираются перед вставкой), поэтому ключ
// идемпотентности здесь одноразовый, в рамках батча.
func MapPollingBatch(payload []byte, now time.Time) ([]models.Training, error) {
	items, err := DecodeItems(payload)
	if err != nil {
		return nil, err
	}
	batch := uuid.New().String()[:8]
	var out []models.Training
	for i, raw := range items {
		t := mapItem(normalizeItem(raw), fmt.Sprintf("api_%s_%d", batch, i), now)
		if t == nil {
			continue
		}
		t.RawText = rawJSON(raw)
		out = append(out, *t)
	}
	return out, nil
}

// MapWebhook разбирает пуш внешней системы. Ключ идемпотентности обязан быть
// стабильным между повторными доставками одного события: берём чужой id,
// а без него — дату, время и название.
func MapWebhook(payload []byte, now time.Time) ([]models.Training, error) {
	items, err := DecodeItems(payload)
	if err != nil {
		return nil, err
	}
	var out []models.Training
	for _, raw := range items {
		it := normalizeItem(raw)
		t := mapItem(it, webhookKey(it), now)
		if t == nil {
			continue
		}
		t.RawText = rawJSON(raw)
		out = append(out, *t)
	}
	return out, nil
}

func webhookKey(it externalItem) string {
	if it.ID != "" {
		return "wh_" + it.ID
	}
	slug := strings.ToLower(strings.Join(strings.Fields(it.Title), "-"))
	return fmt.Sprintf("wh_%s_%s_%s", it.Date, it.TimeStart, slug)
}

func rawJSON(m map[string]interface{}) string {
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}
