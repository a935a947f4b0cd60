package repository

import (
	"database/sql"

	"traintracker/internal/models"
)

// ChannelRepository работает с конфигурацией каналов-источников
type ChannelRepository struct {
	db *sql.DB
}

// NewChannelRepository создаёт репозиторий каналов
func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

const channelColumns = `
	id, name, mode, COALESCE(endpoint, ''), COALESCE(api_key, ''),
	COALESCE(company_id, ''), COALESCE(default_coach, ''),
	COALESCE(game_signup_url, ''), COALESCE(group_signup_url, ''),
	COALESCE(webhook_secret, '')`

func scanChannel(row interface{ Scan(...interface{}) error }) (models.Channel, error) {
	var ch models.Channel
	err := row.Scan(&ch.ID, &ch.Name, &ch.Mode, &ch.Endpoint, &ch.APIKey,
		&ch.CompanyID, &ch.DefaultCoach, &ch.GameSignupURL, &ch.GroupSignupURL,
		&ch.WebhookSecret)
	return ch, err
}

// List возвращает все настроенные каналы
func (r *ChannelRepository) List() ([]models.Channel, error) {
	rows, err := r.db.Query("SELECT " + channelColumns + " FROM public.channels ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			continue
		}
		channels = append(channels, ch)
	}
	return channels, nil
}

// GetByID возвращает канал по идентификатору
func (r *ChannelRepository) GetByID(id int64) (*models.Channel, error) {
	row := r.db.QueryRow("SELECT "+channelColumns+" FROM public.channels WHERE id = $1", id)
	ch, err := scanChannel(row)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}
