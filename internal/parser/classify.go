package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind — результат классификации входящего текста.
type Kind int

const (
	KindUnparseable Kind = iota // не похоже на тренировку, пропускаем
	KindSingle                  // одна тренировка
	KindWeekly                  // расписание на несколько дней
)

var (
	weekPhraseRE    = regexp.MustCompile(`(?i)(?:следующ|текущ)[а-яё]*(?:\s+\S+){0,2}\s+недел`)
	scheduleWeekRE  = regexp.MustCompile(`(?i)расписание[\s\S]{0,60}недел`)
	weekDateRangeRE = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\s*[-–—]\s*(\d{1,2})\.(\d{1,2})`)
	parenDateRE     = regexp.MustCompile(`\(\s*\d{1,2}\.\d{1,2}\s*\)`)
)

// IsWeeklySchedule решает, описывает ли сообщение неделю целиком:
// фразы про неделю, диапазон дат, два и более дня недели или
// два и более заголовка вида "(ДД.ММ)".
func IsWeeklySchedule(text string) bool {
	if weekPhraseRE.MatchString(text) || scheduleWeekRE.MatchString(text) {
		return true
	}
	if containsDateRange(text) {
		return true
	}
	lower := strings.ToLower(text)
	days := 0
	for name := range weekdayNames {
		if strings.Contains(lower, name) {
			days++
		}
	}
	if days >= 2 {
		return true
	}
	return len(parenDateRE.FindAllString(text, -1)) >= 2
}

// containsDateRange ищет диапазон дат "ДД.ММ - ДД.ММ". Оба конца обязаны
// быть валидными датами: "19.00-20.30" — это время, а не неделя.
func containsDateRange(text string) bool {
	for _, m := range weekDateRangeRE.FindAllStringSubmatch(text, -1) {
		d1, _ := strconv.Atoi(m[1])
		m1, _ := strconv.Atoi(m[2])
		d2, _ := strconv.Atoi(m[3])
		m2, _ := strconv.Atoi(m[4])
		if isValidDayMonth(d1, m1) && isValidDayMonth(d2, m2) {
			return true
		}
	}
	return false
}

// Classify относит текст к недельному расписанию, одиночной тренировке
// или мусору. Порядок важен: недельные признаки проверяются раньше
// фильтра по дате, одиночный разбор — только после него.
func Classify(text string) Kind {
	if IsWeeklySchedule(text) {
		return KindWeekly
	}
	if ContainsTrainingDate(text) {
		return KindSingle
	}
	return KindUnparseable
}
