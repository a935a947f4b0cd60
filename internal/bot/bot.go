package bot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"traintracker/clients/ai"
	"traintracker/internal/models"
	"traintracker/internal/parser"
	"traintracker/internal/repository"
	"traintracker/internal/syncer"
)

// Bot слушает посты в настроенных Telegram-каналах и прогоняет их через
// парсер: текст — через классификатор, картинки — через vision-модель.
type Bot struct {
	api    *tgbotapi.BotAPI
	repo   *repository.Repository
	syncer *syncer.Syncer
	vision *ai.VisionClient
}

// New создаёт новый экземпляр бота
func New(api *tgbotapi.BotAPI, repo *repository.Repository, s *syncer.Syncer, vision *ai.VisionClient) *Bot {
	return &Bot{
		api:    api,
		repo:   repo,
		syncer: s,
		vision: vision,
	}
}

// Start запускает бота
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "channel_post", "edited_channel_post"}

	for update := range b.api.GetUpdatesChan(u) {
		msg := update.ChannelPost
		if msg == nil {
			msg = update.EditedChannelPost
		}
		if msg == nil {
			msg = update.Message
		}
		if msg == nil {
			continue
		}
		b.handlePost(msg)
	}
	return nil
}

func (b *Bot) handlePost(msg *tgbotapi.Message) {
	ch, err := b.repo.Channel.GetByID(msg.Chat.ID)
	if err != nil {
		return // пост из ненастроенного чата, не наш
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ch, msg)
		return
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text != "" {
		b.handleText(ch, msg.MessageID, text)
	}
}

// handleText разбирает текстовый пост. Нераспознанный текст — ожидаемый
// случай (анонсы, опросы), он просто пропускается.
func (b *Bot) handleText(ch *models.Channel, messageID int, text string) {
	locations := b.syncer.Locations()
	msgID := strconv.Itoa(messageID)
	now := time.Now()

	var drafts []models.Training
	switch parser.Classify(text) {
	case parser.KindWeekly:
		drafts = parser.ParseWeekly(msgID, text, locations, now)
	case parser.KindSingle:
		if t := parser.ParseSingle(msgID, text, locations, now); t != nil {
			drafts = append(drafts, *t)
		}
	default:
		log.Printf("Канал %d: сообщение %d не похоже на тренировку, пропускаем", ch.ID, messageID)
		return
	}

	saved := b.syncer.SaveDrafts(*ch, drafts)
	log.Printf("Канал %d (%s): сообщение %d, сохранено %d тренировок", ch.ID, ch.Name, messageID, saved)
}

// handlePhoto распознаёт расписание с картинки. Результат кешируется по
// содержимому файла: репост той же картинки не тратит второй вызов модели.
func (b *Bot) handlePhoto(ch *models.Channel, msg *tgbotapi.Message) {
	if b.vision == nil {
		log.Printf("Канал %d: картинка пропущена, vision-клиент не настроен", ch.ID)
		return
	}

	photo := msg.Photo[len(msg.Photo)-1] // самое большое превью
	hash := sha256.Sum256([]byte(photo.FileUniqueID))
	visKey := hex.EncodeToString(hash[:8])

	sched, err := b.syncer.Cache().GetImageSchedule(visKey)
	if err != nil {
		log.Printf("Канал %d: кеш vision недоступен: %v", ch.ID, err)
	}
	if sched == nil {
		url, err := b.api.GetFileDirectURL(photo.FileID)
		if err != nil {
			log.Printf("Канал %d: не удалось получить URL картинки: %v", ch.ID, err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		sched, err = b.vision.ExtractSchedule(ctx, url)
		if err != nil {
			log.Printf("Канал %d: распознавание картинки не удалось: %v", ch.ID, err)
			return
		}
		if err := b.syncer.Cache().SaveImageSchedule(visKey, sched); err != nil {
			log.Printf("Канал %d: не удалось закешировать vision-ответ: %v", ch.ID, err)
		}
	}

	drafts := parser.ExpandImageSchedule(*sched, b.syncer.Locations(), time.Now())
	for i := range drafts {
		// ключ привязан к содержимому картинки, а не к посту: репост
		// обновляет те же записи
		drafts[i].MessageID = visKey + "_" + drafts[i].MessageID
	}

	saved := b.syncer.SaveDrafts(*ch, drafts)
	log.Printf("Канал %d (%s): картинка, сохранено %d тренировок", ch.ID, ch.Name, saved)
}
