package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"traintracker/internal/models"
)

// Извлечение полей построено одинаково: упорядоченный список кандидатов,
// каждый — чистая функция текст -> (значение, ok). Побеждает первый
// сработавший, порядок задаёт приоритет.

// ---------- Дата ----------

var (
	dateWithYearRE = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{2,4})`)
	dateShortRE    = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})`)
)

// ExtractDate находит первую валидную дату. Двузначный год раскрывается
// в 20YY, отсутствующий подбирается через resolveYear.
func ExtractDate(text string, now time.Time) string {
	for _, m := range dateWithYearRE.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if !isValidDayMonth(day, month) {
			continue
		}
		if year < 100 {
			year += 2000
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}
	for _, m := range dateShortRE.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if !isValidDayMonth(day, month) {
			continue
		}
		return fmt.Sprintf("%04d-%02d-%02d", resolveYear(month, now), month, day)
	}
	return ""
}

// ---------- Время ----------

var (
	timeLabeledRE   = regexp.MustCompile(`(?i)время:?\s*(\d{1,2})[:.](\d{2})\s*[-–—]\s*(\d{1,2})[:.](\d{2})`)
	timeRangeRE     = regexp.MustCompile(`(\d{1,2})[:.](\d{2})\s*[-–—]\s*(\d{1,2})[:.](\d{2})`)
	timeFromToRE    = regexp.MustCompile(`(?i)с\s*(\d{1,2})\s*до\s*(\d{1,2})`)
	timeFromDashRE  = regexp.MustCompile(`(?i)с\s*(\d{1,2})\s*[-–—]\s*(\d{1,2})`)
	timeBareToRE    = regexp.MustCompile(`(\d{1,2})\s+до\s+(\d{1,2})`)
	timeStandaloneRE = regexp.MustCompile(`\b(\d{1,2})[:.](\d{2})\b`)
)

func fmtClock(hh, mm string) string {
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// кандидаты на диапазон времени, от самых конкретных к самым общим
var timeCandidates = []func(string) (string, string, bool){
	func(s string) (string, string, bool) {
		if m := timeLabeledRE.FindStringSubmatch(s); m != nil {
			return fmtClock(m[1], m[2]), fmtClock(m[3], m[4]), true
		}
		return "", "", false
	},
	func(s string) (string, string, bool) {
		if m := timeRangeRE.FindStringSubmatch(s); m != nil {
			return fmtClock(m[1], m[2]), fmtClock(m[3], m[4]), true
		}
		return "", "", false
	},
	func(s string) (string, string, bool) {
		if m := timeFromToRE.FindStringSubmatch(s); m != nil {
			return fmtClock(m[1], "00"), fmtClock(m[2], "00"), true
		}
		return "", "", false
	},
	func(s string) (string, string, bool) {
		if m := timeFromDashRE.FindStringSubmatch(s); m != nil {
			return fmtClock(m[1], "00"), fmtClock(m[2], "00"), true
		}
		return "", "", false
	},
	func(s string) (string, string, bool) {
		if m := timeBareToRE.FindStringSubmatch(s); m != nil {
			return fmtClock(m[1], "00"), fmtClock(m[2], "00"), true
		}
		return "", "", false
	},
	func(s string) (string, string, bool) {
		tokens := timeStandaloneRE.FindAllStringSubmatch(s, 2)
		if len(tokens) == 0 {
			return "", "", false
		}
		start := fmtClock(tokens[0][1], tokens[0][2])
		end := ""
		if len(tokens) > 1 {
			end = fmtClock(tokens[1][1], tokens[1][2])
		}
		return start, end, true
	},
}

// ExtractTimeRange находит время начала и конца. Перед поиском из текста
// убираются даты, иначе "08.12" превращается в 08:12. Невалидное время
// обнуляется, следующий кандидат не пробуется.
func ExtractTimeRange(text string) (string, string) {
	s := StripDateTokens(text)
	for _, candidate := range timeCandidates {
		start, end, ok := candidate(s)
		if !ok {
			continue
		}
		if !IsValidTime(start) {
			start = ""
		}
		if !IsValidTime(end) {
			end = ""
		}
		return start, end
	}
	return "", ""
}

// ---------- Уровень ----------

// \b в Go работает только для ASCII, поэтому вокруг кириллицы границы слов
// записаны явными классами (?:^|[^...]) / (?:[^...]|$).
const nonLetter = `[^А-Яа-яЁёA-Za-z0-9]`

var (
	levelNumRangeRE = regexp.MustCompile(`\b([1-5])[.,]([05])\s*[-–—]\s*([1-5])[.,]([05])\b`)
	levelNumRE      = regexp.MustCompile(`\b([1-5])[.,]([05])\b`)
	levelPlusRE     = regexp.MustCompile(`(?:^|` + nonLetter + `)([A-FАВСДЕФ])\s*(?:\+|(?i:и выше))`)
	levelKeywordRE  = regexp.MustCompile(`(?i)(?:уровень|уровни|level)[:\s]+([a-fавсдеф])(?:\s*[-–—/]\s*([a-fавсдеф]))?(?:` + nonLetter + `|$)`)
	levelPairJoinRE = regexp.MustCompile(`(?:^|` + nonLetter + `)([A-FАВСДЕФ])([A-FАВСДЕФ])(?:` + nonLetter + `|$)`)
	levelPairSepRE  = regexp.MustCompile(`(?:^|` + nonLetter + `)([A-FАВСДЕФ])\s*[-–—/]\s*([A-FАВСДЕФ])(?:` + nonLetter + `|$)`)
	levelAllRE      = regexp.MustCompile(`(?i)все\s+уровни`)
	levelAnyRE      = regexp.MustCompile(`(?i)(?:^|` + nonLetter + `)(?:любой|any)(?:` + nonLetter + `|$)`)
	levelNoviceRE   = regexp.MustCompile(`(?i:новичк|начинающ)(?i:[а-яё])*` + nonLetter + `+([A-FАВСДЕФ])(?:\s*[-–—/]\s*([A-FАВСДЕФ]))?`)
)

var levelTiers = []struct{ keyword, value string }{
	{"старт", "Старт"},
	{"комфорт", "Комфорт"},
	{"прайм", "Прайм"},
	{"смешанная", "Смешанная"},
}

var levelWords = []struct{ keyword, value string }{
	{"начин", "Начинающий"},
	{"средн", "Средний"},
	{"продвин", "Продвинутый"},
}

var levelCandidates = []func(string) (string, bool){
	func(s string) (string, bool) {
		if m := levelNumRangeRE.FindStringSubmatch(s); m != nil {
			return m[1] + "." + m[2] + "-" + m[3] + "." + m[4], true
		}
		return "", false
	},
	func(s string) (string, bool) {
		if m := levelNumRE.FindStringSubmatch(s); m != nil {
			return m[1] + "." + m[2], true
		}
		return "", false
	},
	func(s string) (string, bool) {
		if m := levelPlusRE.FindStringSubmatch(s); m != nil {
			return NormalizeLevel(m[1]) + "+", true
		}
		return "", false
	},
	func(s string) (string, bool) {
		return levelFromKeyword(s)
	},
	func(s string) (string, bool) {
		if m := levelPairJoinRE.FindStringSubmatch(s); m != nil {
			return NormalizeLevel(m[1] + "-" + m[2]), true
		}
		return "", false
	},
	func(s string) (string, bool) {
		if m := levelPairSepRE.FindStringSubmatch(s); m != nil {
			return NormalizeLevel(m[1] + "-" + m[2]), true
		}
		return "", false
	},
	func(s string) (string, bool) {
		if levelAllRE.MatchString(s) {
			return "Все уровни", true
		}
		return "", false
	},
	func(s string) (string, bool) {
		if levelAnyRE.MatchString(s) {
			return "Любой", true
		}
		return "", false
	},
	func(s string) (string, bool) {
		lower := strings.ToLower(s)
		for _, t := range levelTiers {
			if strings.Contains(lower, t.keyword) {
				return t.value, true
			}
		}
		return "", false
	},
	func(s string) (string, bool) {
		if m := levelNoviceRE.FindStringSubmatch(s); m != nil {
			level := m[1]
			if m[2] != "" {
				level += "-" + m[2]
			}
			return NormalizeLevel(level) + " (новички)", true
		}
		return "", false
	},
	func(s string) (string, bool) {
		lower := strings.ToLower(s)
		for _, w := range levelWords {
			if strings.Contains(lower, w.keyword) {
				return w.value, true
			}
		}
		return "", false
	},
}

// ExtractLevel находит уровень: числовой диапазон, буквы, именованные
// группы или словесное описание, в порядке убывания конкретности.
func ExtractLevel(text string) string {
	for _, candidate := range levelCandidates {
		if level, ok := candidate(text); ok {
			return level
		}
	}
	return ""
}

// levelFromKeyword — буква или пара букв после слова "уровень".
// В недельных расписаниях используется только этот вариант.
func levelFromKeyword(text string) (string, bool) {
	m := levelKeywordRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	level := m[1]
	if m[2] != "" {
		level += "-" + m[2]
	}
	return NormalizeLevel(level), true
}

// ---------- Тип ----------

var typeGameWordRE = regexp.MustCompile(`(?:^|` + nonLetter + `)игр(?:а|ы)(?:` + nonLetter + `|$)`)

// typeChecks проверяются по порядку: составные типы раньше своих подстрок,
// иначе "мини-игровая" распознается как "игровая".
var typeChecks = []struct {
	match func(string) bool
	value string
}{
	{func(s string) bool { return strings.Contains(s, "мини-игровая") || strings.Contains(s, "мини игровая") }, "мини-игровая"},
	{func(s string) bool { return strings.Contains(s, "мини-группа") || strings.Contains(s, "мини группа") }, "мини-группа"},
	{func(s string) bool { return strings.Contains(s, "детская") || strings.Contains(s, "детские") }, "детская группа"},
	{func(s string) bool { return strings.Contains(s, "групп") }, "групповая"},
	{func(s string) bool { return strings.Contains(s, "игров") || typeGameWordRE.MatchString(s) }, "игровая"},
	{func(s string) bool { return strings.Contains(s, "техник") }, "техника"},
	{func(s string) bool {
		return strings.Contains(s, "турнир") || strings.Contains(s, "командник") || strings.Contains(s, "микстер")
	}, "турнир"},
	{func(s string) bool { return strings.Contains(s, "индивидуальн") }, "индивидуальная"},
}

// ExtractType определяет тип тренировки. Пустая строка — тип не указан.
func ExtractType(text string) string {
	lower := strings.ToLower(text)
	for _, check := range typeChecks {
		if check.match(lower) {
			return check.value
		}
	}
	return ""
}

// ---------- Тренер ----------

var (
	coachLabelRE = regexp.MustCompile(`(?i:тренер|coach|ведущий|ведущая)[а-яёa-z]*[:\s—–-]*([А-ЯЁA-Z][а-яёa-z]+(?:\s+[А-ЯЁA-Z][а-яёa-z]+)?)`)
	coachPipeRE  = regexp.MustCompile(`\d{1,2}\.\d{1,2}\s*\|[^|\n]*\|\s*([А-ЯЁ][а-яё]+(?:\s+[А-ЯЁ][а-яё]+)?)`)
)

// ExtractCoach находит имя тренера после явной пометки или в строке-таблице
// вида "ДД.ММ | ЧЧ:ММ-ЧЧ:ММ | Имя".
func ExtractCoach(text string) string {
	if m := coachLabelRE.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := coachPipeRE.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ---------- Зал ----------

var parenFragmentRE = regexp.MustCompile(`\([^)]+\)`)

// ExtractLocation ищет зал в справочнике по названию, потом по алиасам.
// Если не нашли — берём вторую строку сообщения, когда она похожа на адрес
// (содержит фрагмент в скобках); id справочника тогда не присваивается.
func ExtractLocation(text string, locations []models.Location) (string, int) {
	if name, id, ok := lookupLocation(text, locations); ok {
		return name, id
	}
	lines := nonEmptyLines(text)
	if len(lines) >= 2 && parenFragmentRE.MatchString(lines[1]) {
		return strings.TrimSpace(lines[1]), 0
	}
	return "", 0
}

// lookupLocation — поиск по справочнику подстрокой, сначала имена, затем алиасы.
func lookupLocation(text string, locations []models.Location) (string, int, bool) {
	lower := strings.ToLower(text)
	for _, loc := range locations {
		if loc.Name != "" && strings.Contains(lower, strings.ToLower(loc.Name)) {
			return loc.Name, loc.ID, true
		}
	}
	for _, loc := range locations {
		for _, alias := range loc.Aliases {
			if alias != "" && strings.Contains(lower, strings.ToLower(alias)) {
				return loc.Name, loc.ID, true
			}
		}
	}
	return "", 0, false
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// ---------- Места ----------

var (
	spotsPeopleRE  = regexp.MustCompile(`(\d+)\s*чел`)
	spotsBeforeRE  = regexp.MustCompile(`(\d+)\s*мест`)
	spotsLabeledRE = regexp.MustCompile(`(?i)(?:количество\s+)?мест[ао]?\s*:\s*(\d+)`)
)

// ExtractSpots возвращает число мест. Из всех совпадений берётся максимум:
// сообщения часто сначала пишут "осталось 3 места", а полную вместимость ниже.
func ExtractSpots(text string) int {
	for _, re := range []*regexp.Regexp{spotsPeopleRE, spotsBeforeRE, spotsLabeledRE} {
		max := 0
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > max {
				max = n
			}
		}
		if max > 0 {
			return max
		}
	}
	return 0
}

// ---------- Цена ----------

var (
	priceRE        = regexp.MustCompile(`(\d+)\s*(?:руб|₽|rub|р\.)`)
	priceReverseRE = regexp.MustCompile(`(?:₽|руб[а-яё]*\.?)\s*[:\-–—]?\s*(\d+)`)
)

// ExtractPrice находит цену в рублях. 0 — цена не указана.
func ExtractPrice(text string) int {
	for _, re := range []*regexp.Regexp{priceRE, priceReverseRE} {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}

// ---------- Ссылка записи ----------

var (
	signupLabeledRE = regexp.MustCompile(`(?i)запись:?\s*(https?://\S+)`)
	signupTmeRE     = regexp.MustCompile(`https://t\.me/\S+`)
)

// ExtractSignupURL возвращает ссылку записи: помеченную словом "Запись",
// иначе любую t.me-ссылку из текста.
func ExtractSignupURL(text string) string {
	if m := signupLabeledRE.FindStringSubmatch(text); m != nil {
		return strings.TrimRight(m[1], ".,;")
	}
	if m := signupTmeRE.FindString(text); m != "" {
		return strings.TrimRight(m, ".,;")
	}
	return ""
}
