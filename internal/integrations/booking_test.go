package integrations

import "testing"

func TestMapActivity(t *testing.T) {
	a := BookingActivity{
		ID:       5,
		Date:     "2025-03-15",
		Time:     "19:00",
		Capacity: 12,
	}
	a.Service.Title = "Групповая тренировка C-D"
	a.Service.Duration = 5400 // 90 минут
	a.Service.PriceMin = 600
	a.Staff.Name = "Иванов"

	got := MapActivity("77", a)
	if got == nil {
		t.Fatal("MapActivity вернул nil")
	}
	if got.TimeEnd != "20:30" {
		t.Errorf("TimeEnd = %q, want 20:30 из длительности услуги", got.TimeEnd)
	}
	if got.Type != "групповая" || got.Level != "C-D" {
		t.Errorf("тип и уровень из названия услуги: (%q, %q)", got.Type, got.Level)
	}
	if got.Coach != "Иванов" || got.Price != 600 || got.Spots != 12 {
		t.Errorf("поля = (%q, %d, %d)", got.Coach, got.Price, got.Spots)
	}
	if got.MessageID != "booking:77:activity:5" {
		t.Errorf("MessageID = %q", got.MessageID)
	}
}

func TestMapActivity_RequiresDateAndTime(t *testing.T) {
	if got := MapActivity("77", BookingActivity{Time: "19:00"}); got != nil {
		t.Errorf("без даты ожидался nil, получили %+v", got)
	}
	if got := MapActivity("77", BookingActivity{Date: "2025-03-15"}); got != nil {
		t.Errorf("без времени ожидался nil, получили %+v", got)
	}
}

func TestMapRecord(t *testing.T) {
	r := BookingRecord{
		ID:        9,
		Date:      "2025-03-16",
		Time:      "10:00",
		SeatsMax:  8,
		StaffName: "Петров",
	}
	r.Services = []struct {
		Title string `json:"title"`
		Cost  int    `json:"cost"`
	}{
		{Title: "Игровая E/D", Cost: 800},
	}

	got := MapRecord("77", r)
	if got == nil {
		t.Fatal("MapRecord вернул nil")
	}
	if got.Type != "игровая" || got.Level != "E-D" {
		t.Errorf("тип и уровень = (%q, %q)", got.Type, got.Level)
	}
	if got.Price != 800 || got.Spots != 8 || got.Coach != "Петров" {
		t.Errorf("поля = (%d, %d, %q)", got.Price, got.Spots, got.Coach)
	}
	if got.MessageID != "booking:77:record:9" {
		t.Errorf("MessageID = %q", got.MessageID)
	}
}

func TestMapRecord_RequiresService(t *testing.T) {
	r := BookingRecord{ID: 9, Date: "2025-03-16", Time: "10:00"}
	if got := MapRecord("77", r); got != nil {
		t.Errorf("запись без услуг пропускается, получили %+v", got)
	}
}

func TestAddMinutes(t *testing.T) {
	tests := []struct {
		clock   string
		minutes int
		want    string
	}{
		{"19:00", 90, "20:30"},
		{"23:30", 60, "00:30"},
		{"10:00", 0, ""},
		{"кривое", 30, ""},
	}
	for _, tt := range tests {
		if got := addMinutes(tt.clock, tt.minutes); got != tt.want {
			t.Errorf("addMinutes(%q, %d) = %q, want %q", tt.clock, tt.minutes, got, tt.want)
		}
	}
}

func TestTypeFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Мини-игровая тренировка", "мини-игровая"},
		{"Мини-группа", "мини-группа"},
		{"Детский бадминтон", "детская группа"},
		{"Групповая C-D", "групповая"},
		{"Вечерняя игра", "игровая"},
		{"Индивидуальное занятие", "индивидуальная"},
		{"Аренда корта", ""},
	}
	for _, tt := range tests {
		if got := typeFromTitle(tt.title); got != tt.want {
			t.Errorf("typeFromTitle(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
