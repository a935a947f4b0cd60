package main

import (
	"database/sql"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"

	"traintracker/clients/ai"
	"traintracker/internal/bot"
	"traintracker/internal/cache"
	"traintracker/internal/config"
	"traintracker/internal/repository"
	"traintracker/internal/syncer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("База данных недоступна: %v", err)
	}
	repo := repository.New(db)

	c := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := c.Ping(); err != nil {
		log.Fatalf("Redis недоступен: %v", err)
	}

	var vision *ai.VisionClient
	if cfg.OpenAIKey != "" {
		vision = ai.NewVisionClient(cfg.OpenAIKey)
	} else {
		log.Println("OPENAI_API_KEY не задан, картинки с расписаниями распознаваться не будут")
	}

	s := syncer.New(repo, c)
	if err := s.Start(cfg.SyncSpec); err != nil {
		log.Fatal(err)
	}
	go func() {
		if err := s.StartWebhookServer(cfg.WebhookAddr); err != nil {
			log.Fatalf("Webhook-приёмник упал: %v", err)
		}
	}()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal(err)
	}

	if err := bot.New(api, repo, s, vision).Start(); err != nil {
		log.Fatal(err)
	}
}
