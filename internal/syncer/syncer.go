package syncer

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron"

	"traintracker/internal/cache"
	"traintracker/internal/integrations"
	"traintracker/internal/models"
	"traintracker/internal/parser"
	"traintracker/internal/repository"
)

const bookingWindowDays = 14

// Syncer опрашивает настроенные источники по расписанию и складывает
// результат в БД. Ошибка одного канала не мешает остальным.
type Syncer struct {
	repo       *repository.Repository
	cache      *cache.Cache
	httpClient *http.Client
	cron       *cron.Cron
}

func New(repo *repository.Repository, c *cache.Cache) *Syncer {
	return &Syncer{
		repo:       repo,
		cache:      c,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Cache возвращает общий кеш приложения
func (s *Syncer) Cache() *cache.Cache {
	return s.cache
}

// Start запускает периодическую синхронизацию по cron-расписанию
func (s *Syncer) Start(spec string) error {
	s.cron = cron.New()
	if err := s.cron.AddFunc(spec, s.SyncAll); err != nil {
		return fmt.Errorf("не удалось запустить синхронизацию: %w", err)
	}
	s.cron.Start()
	log.Printf("Синхронизация запущена: %s", spec)
	return nil
}

// SyncAll обходит все опрашиваемые каналы
func (s *Syncer) SyncAll() {
	channels, err := s.repo.Channel.List()
	if err != nil {
		log.Printf("Не удалось получить список каналов: %v", err)
		return
	}

	for _, ch := range channels {
		var err error
		switch ch.Mode {
		case models.ModeBooking:
			err = s.syncBooking(ch)
		case models.ModeAPI:
			err = s.syncAPI(ch)
		default:
			continue // telegram-каналы и webhook обрабатываются не опросом
		}
		if err != nil {
			log.Printf("Канал %d (%s): синхронизация не удалась: %v", ch.ID, ch.Name, err)
			continue
		}
	}
}

// Locations возвращает справочник залов: сперва из Redis, иначе из БД с
// прогревом кеша. Пустой справочник — не ошибка, парсер обойдётся без него.
func (s *Syncer) Locations() []models.Location {
	if cached, err := s.cache.GetLocations(); err == nil && cached != nil {
		return cached
	}

	locations, err := s.repo.Location.List()
	if err != nil {
		log.Printf("Не удалось загрузить справочник залов: %v", err)
		return nil
	}
	if err := s.cache.SaveLocations(locations); err != nil {
		log.Printf("Не удалось закешировать справочник залов: %v", err)
	}
	return locations
}

// SaveDrafts дополняет черновики настройками канала и сохраняет их.
// Черновики без даты или времени начала отбрасываются — таблица требует оба.
func (s *Syncer) SaveDrafts(ch models.Channel, drafts []models.Training) int {
	saved := 0
	for i := range drafts {
		t := drafts[i]
		if t.Date == "" || t.TimeStart == "" {
			continue
		}
		t.ChannelID = ch.ID
		if t.Coach == "" {
			t.Coach = ch.DefaultCoach
		}
		if t.SignupURL == "" {
			t.SignupURL = ch.SignupLinkFor(t.Type)
		}
		if err := s.repo.Training.Upsert(&t); err != nil {
			log.Printf("Канал %d: не удалось сохранить тренировку %s %s: %v",
				ch.ID, t.Date, t.TimeStart, err)
			continue
		}
		saved++
	}
	return saved
}

// syncBooking опрашивает букинг-платформу: активности и записи за две недели
func (s *Syncer) syncBooking(ch models.Channel) error {
	client := integrations.NewBookingClient(ch.Endpoint, ch.APIKey)
	days := parser.GetNextDays(bookingWindowDays)
	from, to := days[0], days[len(days)-1]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var drafts []models.Training

	activities, err := client.FetchActivities(ctx, ch.CompanyID, from, to)
	if err != nil {
		return err
	}
	for _, a := range activities {
		if t := integrations.MapActivity(ch.CompanyID, a); t != nil {
			drafts = append(drafts, *t)
		}
	}

	records, err := client.FetchRecords(ctx, ch.CompanyID, from, to)
	if err != nil {
		return err
	}
	for _, r := range records {
		if t := integrations.MapRecord(ch.CompanyID, r); t != nil {
			drafts = append(drafts, *t)
		}
	}

	saved := s.SaveDrafts(ch, drafts)
	log.Printf("Канал %d (%s): букинг-платформа, сохранено %d из %d", ch.ID, ch.Name, saved, len(drafts))
	return nil
}

// syncAPI опрашивает внешний API. Источник грузится целиком: старые будущие
// записи канала стираются, свежий батч вставляется заново.
func (s *Syncer) syncAPI(ch models.Channel) error {
	req, err := http.NewRequest(http.MethodGet, ch.Endpoint, nil)
	if err != nil {
		return err
	}
	if ch.APIKey != "" {
		req.Header.Set("X-Api-Key", ch.APIKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("внешний API недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("внешний API вернул статус %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	drafts, err := integrations.MapPollingBatch(body, time.Now())
	if err != nil {
		return err
	}

	if err := s.repo.Training.DeleteFuture(ch.ID); err != nil {
		return fmt.Errorf("не удалось очистить старые записи: %w", err)
	}

	saved := s.SaveDrafts(ch, drafts)
	log.Printf("Канал %d (%s): внешний API, сохранено %d из %d", ch.ID, ch.Name, saved, len(drafts))
	return nil
}
