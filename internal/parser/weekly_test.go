package parser

import "testing"

const weeklyFixture = `Расписание на следующую неделю

Стоимость групповых тренировок - 600 руб
Стоимость игровых тренировок - 800 руб

Понедельник (10.03)

Метеор 19:00-20:30
Тренер: Иванов
Уровень: C-D

21:00-22:30 игровая

Среда (12.03)

19:00 - 20:30

Запись у администратора`

func TestParseWeekly(t *testing.T) {
	got := ParseWeekly("123", weeklyFixture, testLocations(), testNow)
	if len(got) != 3 {
		t.Fatalf("ожидались 3 тренировки, получили %d: %+v", len(got), got)
	}

	first := got[0]
	if first.Date != "2025-03-10" {
		t.Errorf("Date = %q, want 2025-03-10", first.Date)
	}
	if first.TimeStart != "19:00" || first.TimeEnd != "20:30" {
		t.Errorf("время = (%q, %q)", first.TimeStart, first.TimeEnd)
	}
	if first.Location != "Метеор" || first.LocationID != 1 {
		t.Errorf("зал = (%q, %d), want (Метеор, 1)", first.Location, first.LocationID)
	}
	if first.Coach != "Иванов" {
		t.Errorf("Coach = %q, want Иванов", first.Coach)
	}
	if first.Type != "групповая" {
		t.Errorf("Type = %q, want групповая", first.Type)
	}
	if first.Level != "C-D" {
		t.Errorf("Level = %q, want C-D", first.Level)
	}
	if first.Price != 600 {
		t.Errorf("Price = %d, want 600 из общего тарифа", first.Price)
	}
	if first.MessageID != "123_понедельник_0" {
		t.Errorf("MessageID = %q", first.MessageID)
	}

	second := got[1]
	if second.Type != "игровая" {
		t.Errorf("Type = %q, want игровая", second.Type)
	}
	if second.Price != 800 {
		t.Errorf("Price = %d, want 800 из тарифа игровых", second.Price)
	}
	if second.MessageID != "123_понедельник_1" {
		t.Errorf("MessageID = %q", second.MessageID)
	}

	third := got[2]
	if third.Date != "2025-03-12" {
		t.Errorf("Date = %q, want 2025-03-12", third.Date)
	}
	if third.Type != "групповая" {
		t.Errorf("блок без типа считается групповым, получили %q", third.Type)
	}
	if third.Price != 600 {
		t.Errorf("Price = %d, want 600", third.Price)
	}
	if third.MessageID != "123_среда_0" {
		t.Errorf("MessageID = %q", third.MessageID)
	}

	seen := map[string]bool{}
	for _, tr := range got {
		if seen[tr.MessageID] {
			t.Errorf("дублирующийся MessageID %q", tr.MessageID)
		}
		seen[tr.MessageID] = true
	}
}

func TestParseWeekly_BlockPriceOverridesDefault(t *testing.T) {
	text := `Стоимость групповых тренировок - 600 руб

Пятница (14.03)

19:00-20:30
Разовое занятие 750 руб`

	got := ParseWeekly("5", text, nil, testNow)
	if len(got) != 1 {
		t.Fatalf("ожидалась 1 тренировка, получили %d", len(got))
	}
	if got[0].Price != 600 {
		t.Errorf("тариф по типу важнее цены в блоке: Price = %d, want 600", got[0].Price)
	}
}

func TestParseWeekly_InBlockPriceWhenNoDefault(t *testing.T) {
	text := `Пятница (14.03)

19:00-20:30 игровая
Взнос 750 руб`

	got := ParseWeekly("5", text, nil, testNow)
	if len(got) != 1 {
		t.Fatalf("ожидалась 1 тренировка, получили %d", len(got))
	}
	if got[0].Price != 750 {
		t.Errorf("без общего тарифа берётся цена из блока: Price = %d, want 750", got[0].Price)
	}
}

func TestParseWeekly_NoHeaders(t *testing.T) {
	if got := ParseWeekly("9", "Просто текст без дней недели", nil, testNow); len(got) != 0 {
		t.Errorf("без заголовков дней ожидался пустой результат, получили %+v", got)
	}
}
