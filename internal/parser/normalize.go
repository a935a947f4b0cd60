package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// cyrToLat переводит кириллические буквы уровней в латиницу (А-Е выглядят одинаково)
var cyrToLat = strings.NewReplacer(
	"А", "A", "В", "B", "С", "C", "Д", "D", "Е", "E", "Ф", "F",
)

var levelSepRE = regexp.MustCompile(`([A-Z])\s*[-–—/]\s*([A-Z])`)

// NormalizeLevel приводит уровень к единому виду: верхний регистр, латиница,
// одиночный дефис между буквами. Повторный вызов ничего не меняет.
func NormalizeLevel(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = cyrToLat.Replace(s)
	return levelSepRE.ReplaceAllString(s, "$1-$2")
}

var timeRE = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// IsValidTime проверяет время "HH:MM". Пустая строка — валидна (время не указано).
func IsValidTime(s string) bool {
	if s == "" {
		return true
	}
	m := timeRE.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h >= 0 && h <= 23 && min >= 0 && min <= 59
}

var dateTokenRE = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})`)

func isValidDayMonth(day, month int) bool {
	return day >= 1 && day <= 31 && month >= 1 && month <= 12
}

// ContainsTrainingDate проверяет, есть ли в тексте дата вида ДД.ММ.
// Это входной фильтр: сообщение без даты не считается тренировкой.
func ContainsTrainingDate(text string) bool {
	for _, m := range dateTokenRE.FindAllStringSubmatch(text, -1) {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if isValidDayMonth(day, month) {
			return true
		}
	}
	return false
}

// dateOrRangeRE находит дату или диапазон дат, с годом или без.
var dateOrRangeRE = regexp.MustCompile(
	`(\d{1,2})\.(\d{1,2})(?:\.\d{2,4})?(?:\s*[-–—]\s*\d{1,2}\.\d{1,2}(?:\.\d{2,4})?)?`)

// StripDateTokens убирает из текста даты и диапазоны дат, чтобы "08.12"
// не читалось потом как время 08:12. Токены с невалидным днём/месяцем
// (например время "19.00") не трогает.
func StripDateTokens(text string) string {
	return dateOrRangeRE.ReplaceAllStringFunc(text, func(tok string) string {
		m := dateOrRangeRE.FindStringSubmatch(tok)
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if isValidDayMonth(day, month) {
			return " "
		}
		return tok
	})
}

// GetNextDays возвращает n дат в формате ISO начиная с сегодняшней.
func GetNextDays(n int) []string {
	dates := make([]string, 0, n)
	now := time.Now()
	for i := 0; i < n; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return dates
}

var weekdayNames = map[string]time.Weekday{
	"понедельник": time.Monday,
	"вторник":     time.Tuesday,
	"среда":       time.Wednesday,
	"четверг":     time.Thursday,
	"пятница":     time.Friday,
	"суббота":     time.Saturday,
	"воскресенье": time.Sunday,
}

// GetDatesForDayInMonth возвращает все даты месяца, приходящиеся на указанный
// по-русски день недели ("понедельник", "среда", ...).
func GetDatesForDayInMonth(dayName string, year int, month time.Month) []time.Time {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(dayName))]
	if !ok {
		return nil
	}
	var dates []time.Time
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Month() == month {
		if d.Weekday() == wd {
			dates = append(dates, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return dates
}

// resolveYear подбирает год для даты без года: если месяц больше чем на один
// позади текущего, значит речь про следующий год (расписания на январь,
// опубликованные в декабре).
func resolveYear(month int, now time.Time) int {
	if month < int(now.Month())-1 {
		return now.Year() + 1
	}
	return now.Year()
}
