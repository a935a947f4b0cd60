package parser

import (
	"testing"
)

func TestParseSingle(t *testing.T) {
	text := "Групповая тренировка\n" +
		"15.03\n" +
		"Время: 19:00-20:30\n" +
		"Уровень: C-D\n" +
		"Тренер: Иванов\n" +
		"10 мест\n" +
		"500 руб"

	got := ParseSingle("42", text, testLocations(), testNow)
	if got == nil {
		t.Fatal("ParseSingle вернул nil на корректном сообщении")
	}

	if got.Date != "2025-03-15" {
		t.Errorf("Date = %q, want 2025-03-15", got.Date)
	}
	if got.TimeStart != "19:00" || got.TimeEnd != "20:30" {
		t.Errorf("время = (%q, %q), want (19:00, 20:30)", got.TimeStart, got.TimeEnd)
	}
	if got.Type != "групповая" {
		t.Errorf("Type = %q, want групповая", got.Type)
	}
	if got.Level != "C-D" {
		t.Errorf("Level = %q, want C-D", got.Level)
	}
	if got.Coach != "Иванов" {
		t.Errorf("Coach = %q, want Иванов", got.Coach)
	}
	if got.Spots != 10 {
		t.Errorf("Spots = %d, want 10", got.Spots)
	}
	if got.Price != 500 {
		t.Errorf("Price = %d, want 500", got.Price)
	}
	if got.Title != "Групповая тренировка" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.MessageID != "42" {
		t.Errorf("MessageID = %q, want 42", got.MessageID)
	}
}

func TestParseSingle_DottedTimeRange(t *testing.T) {
	text := "Игровая тренировка 15.03\nВремя: 19.00-20.30"

	if kind := Classify(text); kind != KindSingle {
		t.Fatalf("Classify = %v, want KindSingle — время через точку не делает текст недельным", kind)
	}

	got := ParseSingle("8", text, nil, testNow)
	if got == nil {
		t.Fatal("ParseSingle вернул nil")
	}
	if got.Date != "2025-03-15" {
		t.Errorf("Date = %q, want 2025-03-15", got.Date)
	}
	if got.TimeStart != "19:00" || got.TimeEnd != "20:30" {
		t.Errorf("время = (%q, %q), want (19:00, 20:30)", got.TimeStart, got.TimeEnd)
	}
	if got.Type != "игровая" {
		t.Errorf("Type = %q, want игровая", got.Type)
	}
}

func TestParseSingle_RequiresDate(t *testing.T) {
	if got := ParseSingle("1", "Игровая в 19:00, все уровни", nil, testNow); got != nil {
		t.Errorf("без даты ожидался nil, получили %+v", got)
	}
}

func TestParseSingle_RequiresStartTime(t *testing.T) {
	if got := ParseSingle("1", "Тренировка 15.03, запись открыта", nil, testNow); got != nil {
		t.Errorf("без времени начала ожидался nil, получили %+v", got)
	}
}

func TestParseSingle_InvalidTimeDropped(t *testing.T) {
	if got := ParseSingle("1", "Тренировка 15.03 в 25:70", nil, testNow); got != nil {
		t.Errorf("невалидное время не должно давать запись, получили %+v", got)
	}
}

func TestParseSingle_OptionalFieldsStayEmpty(t *testing.T) {
	got := ParseSingle("7", "Сбор 15.03 в 19:00", nil, testNow)
	if got == nil {
		t.Fatal("дата и время есть, запись должна собраться")
	}
	if got.Type != "" || got.Level != "" || got.Coach != "" {
		t.Errorf("опциональные поля должны остаться пустыми: %+v", got)
	}
	if got.Price != 0 || got.Spots != 0 {
		t.Errorf("цена и места должны быть нулевыми: %+v", got)
	}
}
