package models

// Training представляет одну тренировку с конкретной датой и временем начала.
// Уникальность записи в БД — (channel_id, date, time_start, message_id).
type Training struct {
	ID          int
	ChannelID   int64
	Date        string // ISO, "2006-01-02"
	TimeStart   string // "HH:MM", обязательно
	TimeEnd     string // "HH:MM", может быть пустым
	Type        string // "игровая", "групповая", "мини-группа" и т.д., может быть пустым
	Level       string // "C-D", "1.0-2.0", "Все уровни" и т.д.
	Coach       string
	Location    string
	LocationID  int // 0 = не найдена в справочнике
	Price       int // 0 = не указана
	Spots       int // общее число мест, 0 = не указано
	Title       string
	Description string
	SignupURL   string
	RawText     string // исходный текст сообщения для отладки
	MessageID   string // ключ идемпотентности в рамках канала
}

// Location — запись справочника залов. Только для поиска, парсер её не меняет.
type Location struct {
	ID      int
	Name    string
	Address string
	Aliases []string
}

// Режимы каналов-источников.
const (
	ModeText    = "text"    // посты в Telegram-канале, свободный текст
	ModeImage   = "image"   // посты с картинками-расписаниями
	ModeBooking = "booking" // API букинг-платформы
	ModeAPI     = "api"     // внешний API, опрос по расписанию
	ModeWebhook = "webhook" // внешняя система присылает события сама
)

// Channel — конфигурация источника. Читается из БД, парсер её не меняет.
type Channel struct {
	ID             int64
	Name           string
	Mode           string
	Endpoint       string // URL внешнего API или букинг-платформы
	APIKey         string
	CompanyID      string // id компании на букинг-платформе
	DefaultCoach   string
	GameSignupURL  string // постоянная ссылка записи на игровые
	GroupSignupURL string // постоянная ссылка записи на групповые
	WebhookSecret  string
}

// SignupLinkFor возвращает постоянную ссылку записи канала по типу тренировки.
func (c *Channel) SignupLinkFor(trainingType string) string {
	if trainingType == "игровая" || trainingType == "мини-игровая" {
		return c.GameSignupURL
	}
	return c.GroupSignupURL
}

// ImageTraining — одна строка распознанного с картинки расписания.
type ImageTraining struct {
	Type      string `json:"type"`
	Level     string `json:"level"`
	Coach     string `json:"coach"`
	Day       string `json:"day"` // русское название дня недели
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
}

// ImageSchedule — структурированный ответ vision-модели по картинке.
type ImageSchedule struct {
	Location  string          `json:"location"`
	Trainings []ImageTraining `json:"trainings"`
}
