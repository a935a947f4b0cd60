package syncer

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"traintracker/internal/integrations"
)

// WebhookHandler принимает пуши внешних систем: POST /webhook?channel=ID
// с секретом канала в заголовке X-Webhook-Secret. Повторная доставка того же
// события безопасна — адаптер строит стабильный ключ, upsert обновляет запись.
func (s *Syncer) WebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		channelID, err := strconv.ParseInt(r.URL.Query().Get("channel"), 10, 64)
		if err != nil {
			http.Error(w, "bad channel id", http.StatusBadRequest)
			return
		}

		ch, err := s.repo.Channel.GetByID(channelID)
		if err != nil {
			http.Error(w, "unknown channel", http.StatusNotFound)
			return
		}
		if ch.WebhookSecret == "" || r.Header.Get("X-Webhook-Secret") != ch.WebhookSecret {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			http.Error(w, "read error", http.StatusBadRequest)
			return
		}

		drafts, err := integrations.MapWebhook(body, time.Now())
		if err != nil {
			log.Printf("Канал %d: webhook не распарсился: %v", ch.ID, err)
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}

		saved := s.SaveDrafts(*ch, drafts)
		log.Printf("Канал %d (%s): webhook, сохранено %d из %d", ch.ID, ch.Name, saved, len(drafts))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"saved": saved})
	}
}

// StartWebhookServer поднимает HTTP-приёмник вебхуков
func (s *Syncer) StartWebhookServer(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhook", s.WebhookHandler())
	log.Printf("Webhook-приёмник слушает %s", addr)
	return http.ListenAndServe(addr, mux)
}
