package parser

import (
	"testing"
	"time"

	"traintracker/internal/models"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestExtractDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"full year", "Тренировка 15.03.2025", "2025-03-15"},
		{"two-digit year", "15.03.25 игровая", "2025-03-15"},
		{"no year same month", "Тренировка 15.03", "2025-03-15"},
		{"no year next month", "Тренировка 02.04", "2025-04-02"},
		{"january from march means next year", "Сбор 05.01", "2026-01-05"},
		{"previous month stays current year", "Отчёт 28.02", "2025-02-28"},
		{"invalid month skipped", "версия 10.45, тренировка 15.03", "2025-03-15"},
		{"no date", "просто текст", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractDate(tt.input, testNow); got != tt.want {
				t.Errorf("ExtractDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart string
		wantEnd   string
	}{
		{"labeled range", "Время: 19:00-20:30", "19:00", "20:30"},
		{"bare range", "игровая 19:00 - 20:30", "19:00", "20:30"},
		{"dotted range", "игровая 19.00-20.30", "19:00", "20:30"},
		{"date stripped before time", "08.12 тренировка 19:00-20:30", "19:00", "20:30"},
		{"hour range with words", "играем с 19 до 21", "19:00", "21:00"},
		{"hour range with dash", "с 19-21", "19:00", "21:00"},
		{"hour range without prefix", "19 до 21", "19:00", "21:00"},
		{"two standalone tokens", "начало 19.00 конец 20.30", "19:00", "20:30"},
		{"single token", "начало в 19:30", "19:30", ""},
		{"invalid hours dropped", "25:00 - 26:00", "", ""},
		{"no time", "просто анонс", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ExtractTimeRange(tt.input)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("ExtractTimeRange(%q) = (%q, %q), want (%q, %q)",
					tt.input, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestExtractLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"numeric range", "уровень 1.0-2.0", "1.0-2.0"},
		{"numeric range comma", "уровень 2,5-3,5", "2.5-3.5"},
		{"numeric beats letters", "играем 1.0-2.0 и C-D", "1.0-2.0"},
		{"bare numeric", "группа 3.5", "3.5"},
		{"letter plus", "уровень D+ и сильнее", "D+"},
		{"letter and above", "С и выше", "C+"},
		{"keyword pair", "Уровень: C-D", "C-D"},
		{"keyword cyrillic", "Уровень: С-Д", "C-D"},
		{"keyword single", "Уровень: E", "E"},
		{"adjoining pair", "группа EC", "E-C"},
		{"separated pair", "игровая D/E", "D-E"},
		{"all levels", "открытая игра, все уровни", "Все уровни"},
		{"any", "подходит любой уровень игры", "Любой"},
		{"named tier", "группа Комфорт", "Комфорт"},
		{"novice letter", "новичкам С", "C (новички)"},
		{"beginner word", "для начинающих", "Начинающий"},
		{"intermediate word", "средний уровень подготовки", "Средний"},
		{"advanced word", "продвинутые игроки", "Продвинутый"},
		{"nothing", "просто игра в зале", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractLevel(tt.input); got != tt.want {
				t.Errorf("ExtractLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"compound wins over parts", "мини-игровая группа", "мини-игровая"},
		{"mini group alone", "мини-группа", "мини-группа"},
		{"kids before group", "детская группа 7-10 лет", "детская группа"},
		{"group", "Групповая тренировка", "групповая"},
		{"bare group word", "набор в группу", "групповая"},
		{"game", "Игровая, все уровни", "игровая"},
		{"bare game word", "вечерняя игра", "игровая"},
		{"technique", "техника перемещений", "техника"},
		{"tournament", "турнир выходного дня", "турнир"},
		{"team event", "командник в субботу", "турнир"},
		{"individual", "индивидуальная тренировка", "индивидуальная"},
		{"unknown", "встреча клуба", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractType(tt.input); got != tt.want {
				t.Errorf("ExtractType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractCoach(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"labeled", "Тренер: Иванов", "Иванов"},
		{"labeled full name", "Тренер: Анна Петрова", "Анна Петрова"},
		{"lowercase label", "тренер Сидоров", "Сидоров"},
		{"leading word form", "Ведущая Мария", "Мария"},
		{"pipe row", "15.03 | 19:00-20:30 | Козлов", "Козлов"},
		{"no coach", "игровая тренировка", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCoach(tt.input); got != tt.want {
				t.Errorf("ExtractCoach(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractSpots(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"chel", "осталось 8 чел.", 8},
		{"mest", "10 мест", 10},
		{"max of all matches", "осталось 3 места из 10 мест", 10},
		{"chel beats mest", "12 чел, свободно 2 места", 12},
		{"labeled", "Количество мест: 16", 16},
		{"none", "запись открыта", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSpots(tt.input); got != tt.want {
				t.Errorf("ExtractSpots(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"rub word", "500 руб", 500},
		{"ruble sign", "Стоимость: 600 ₽", 600},
		{"r dot", "взнос 300 р.", 300},
		{"reversed", "₽ 700", 700},
		{"none", "бесплатно", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPrice(tt.input); got != tt.want {
				t.Errorf("ExtractPrice(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractSignupURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"labeled", "Запись: https://forms.example.com/abc", "https://forms.example.com/abc"},
		{"bare tme", "пишите в https://t.me/badminton_club", "https://t.me/badminton_club"},
		{"labeled beats tme", "Запись: https://forms.example.com/a и чат https://t.me/chat", "https://forms.example.com/a"},
		{"none", "запись у администратора", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSignupURL(tt.input); got != tt.want {
				t.Errorf("ExtractSignupURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func testLocations() []models.Location {
	return []models.Location{
		{ID: 1, Name: "Метеор", Address: "ул. Ленина, 5", Aliases: []string{"метеоре", "meteor"}},
		{ID: 2, Name: "Центр бадминтона", Aliases: []string{"цб"}},
	}
}

func TestExtractLocation(t *testing.T) {
	locs := testLocations()

	tests := []struct {
		name     string
		input    string
		wantName string
		wantID   int
	}{
		{"by name", "Играем в зале Метеор в 19:00", "Метеор", 1},
		{"by alias", "тренировка в метеоре", "Метеор", 1},
		{"second entry", "Центр бадминтона, корт 3", "Центр бадминтона", 2},
		{"fallback to address line", "Игровая\nЗал Юность (ул. Мира, 10)\n19:00", "Зал Юность (ул. Мира, 10)", 0},
		{"no match", "Игровая\nзапись открыта", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, id := ExtractLocation(tt.input, locs)
			if name != tt.wantName || id != tt.wantID {
				t.Errorf("ExtractLocation(%q) = (%q, %d), want (%q, %d)",
					tt.input, name, id, tt.wantName, tt.wantID)
			}
		})
	}
}
