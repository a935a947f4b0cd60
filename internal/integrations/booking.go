package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"traintracker/internal/models"
)

// BookingClient ходит в API букинг-платформы. Ретраи и таймауты политики —
// забота вызывающего, клиент делает один запрос.
type BookingClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewBookingClient(baseURL, token string) *BookingClient {
	return &BookingClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// BookingActivity — запись календаря активности платформы.
type BookingActivity struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"` // "2006-01-02"
	Time     string `json:"time"` // "15:04"
	Capacity int    `json:"capacity"`
	Service  struct {
		Title    string `json:"title"`
		Duration int    `json:"duration"` // секунды
		PriceMin int    `json:"price_min"`
	} `json:"service"`
	Staff struct {
		Name string `json:"name"`
	} `json:"staff"`
}

// BookingRecord — сгруппированная запись клиентов на услугу.
type BookingRecord struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	SeatsMax int    `json:"seats_max"`
	Services []struct {
		Title string `json:"title"`
		Cost  int    `json:"cost"`
	} `json:"services"`
	StaffName string `json:"staff_name"`
}

func (c *BookingClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("букинг-платформа недоступна: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("букинг-платформа отклонила авторизацию: статус %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("букинг-платформа вернула статус %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchActivities возвращает активности компании в окне дат (ISO, включительно).
func (c *BookingClient) FetchActivities(ctx context.Context, companyID, dateFrom, dateTo string) ([]BookingActivity, error) {
	var payload struct {
		Data []BookingActivity `json:"data"`
	}
	path := fmt.Sprintf("/company/%s/activities?date_from=%s&date_to=%s", companyID, dateFrom, dateTo)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// FetchRecords возвращает сгруппированные записи компании в окне дат.
func (c *BookingClient) FetchRecords(ctx context.Context, companyID, dateFrom, dateTo string) ([]BookingRecord, error) {
	var payload struct {
		Data []BookingRecord `json:"data"`
	}
	path := fmt.Sprintf("/company/%s/records?date_from=%s&date_to=%s", companyID, dateFrom, dateTo)
	if err := c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// MapActivity переводит активность платформы в тренировку. Ключ
// идемпотентности строится из id компании и id активности, поэтому
// повторный опрос обновляет запись, а не плодит дубли.
func MapActivity(companyID string, a BookingActivity) *models.Training {
	if a.Date == "" || a.Time == "" {
		return nil
	}
	return &models.Training{
		Date:      a.Date,
		TimeStart: a.Time,
		TimeEnd:   addMinutes(a.Time, a.Service.Duration/60),
		Type:      typeFromTitle(a.Service.Title),
		Level:     levelFromTitle(a.Service.Title),
		Coach:     a.Staff.Name,
		Price:     a.Service.PriceMin,
		Spots:     a.Capacity,
		Title:     a.Service.Title,
		MessageID: fmt.Sprintf("booking:%s:activity:%d", companyID, a.ID),
	}
}

// MapRecord переводит сгруппированную запись платформы в тренировку.
func MapRecord(companyID string, r BookingRecord) *models.Training {
	if r.Date == "" || r.Time == "" || len(r.Services) == 0 {
		return nil
	}
	svc := r.Services[0]
	return &models.Training{
		Date:      r.Date,
		TimeStart: r.Time,
		Type:      typeFromTitle(svc.Title),
		Level:     levelFromTitle(svc.Title),
		Coach:     r.StaffName,
		Price:     svc.Cost,
		Spots:     r.SeatsMax,
		Title:     svc.Title,
		MessageID: fmt.Sprintf("booking:%s:record:%d", companyID, r.ID),
	}
}

// addMinutes прибавляет минуты к "HH:MM". Невалидное время даёт пустой конец.
func addMinutes(clock string, minutes int) string {
	if minutes <= 0 {
		return ""
	}
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return ""
	}
	total := (h*60 + m + minutes) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
