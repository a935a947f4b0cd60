package integrations

import (
	"regexp"
	"strings"

	"traintracker/internal/parser"
)

// Упрощённые эвристики для внешних источников: там тип и уровень лежат
// в названии услуги, хватает проверки подстрок. Полные каскады из
// internal/parser здесь не нужны.

func typeFromTitle(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "мини-игров") || strings.Contains(t, "мини игров"):
		return "мини-игровая"
	case strings.Contains(t, "мини"):
		return "мини-группа"
	case strings.Contains(t, "детск"):
		return "детская группа"
	case strings.Contains(t, "групп"):
		return "групповая"
	case strings.Contains(t, "игров") || strings.Contains(t, "игра"):
		return "игровая"
	case strings.Contains(t, "техник"):
		return "техника"
	case strings.Contains(t, "турнир"):
		return "турнир"
	case strings.Contains(t, "индивид"):
		return "индивидуальная"
	}
	return ""
}

var titleLevelRE = regexp.MustCompile(`[A-FАВСДЕФ]\s*[-–—/]\s*[A-FАВСДЕФ]`)

func levelFromTitle(title string) string {
	if m := titleLevelRE.FindString(title); m != "" {
		return parser.NormalizeLevel(m)
	}
	return ""
}
