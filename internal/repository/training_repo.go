package repository

import (
	"database/sql"

	"traintracker/internal/models"
)

// TrainingRepository работает с таблицей тренировок
type TrainingRepository struct {
	db *sql.DB
}

// NewTrainingRepository создаёт репозиторий тренировок
func NewTrainingRepository(db *sql.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

// Upsert создаёт или обновляет тренировку. Конфликт по
// (channel_id, date, time_start, message_id) означает повторную загрузку
// того же события — обновляем цену, места и прочие поля на месте.
func (r *TrainingRepository) Upsert(t *models.Training) error {
	_, err := r.db.Exec(`
		INSERT INTO public.trainings
			(channel_id, date, time_start, time_end, type, level, coach,
			 location, location_id, price, spots, title, description,
			 signup_url, raw_text, message_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, 0), NULLIF($10, 0),
			NULLIF($11, 0), $12, $13, $14, $15, $16)
		ON CONFLICT (channel_id, date, time_start, message_id)
		DO UPDATE SET
			time_end = $4, type = $5, level = $6, coach = $7,
			location = $8, location_id = NULLIF($9, 0), price = NULLIF($10, 0),
			spots = NULLIF($11, 0), title = $12, description = $13,
			signup_url = $14, raw_text = $15, updated_at = now()`,
		t.ChannelID, t.Date, t.TimeStart, t.TimeEnd, t.Type, t.Level, t.Coach,
		t.Location, t.LocationID, t.Price, t.Spots, t.Title, t.Description,
		t.SignupURL, t.RawText, t.MessageID,
	)
	return err
}

// DeleteFuture удаляет будущие тренировки канала. Нужно источникам,
// которые синхронизируются целиком при каждом опросе.
func (r *TrainingRepository) DeleteFuture(channelID int64) error {
	_, err := r.db.Exec(
		"DELETE FROM public.trainings WHERE channel_id = $1 AND date >= CURRENT_DATE",
		channelID,
	)
	return err
}

// ListUpcoming возвращает будущие тренировки канала по возрастанию даты
func (r *TrainingRepository) ListUpcoming(channelID int64) ([]models.Training, error) {
	rows, err := r.db.Query(`
		SELECT id, channel_id, TO_CHAR(date, 'YYYY-MM-DD'),
		       TO_CHAR(time_start, 'HH24:MI'), COALESCE(TO_CHAR(time_end, 'HH24:MI'), ''),
		       COALESCE(type, ''), COALESCE(level, ''), COALESCE(coach, ''),
		       COALESCE(location, ''), COALESCE(location_id, 0),
		       COALESCE(price, 0), COALESCE(spots, 0),
		       COALESCE(title, ''), COALESCE(description, ''),
		       COALESCE(signup_url, ''), COALESCE(raw_text, ''), message_id
		FROM public.trainings
		WHERE channel_id = $1 AND date >= CURRENT_DATE
		ORDER BY date, time_start`, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []models.Training
	for rows.Next() {
		var t models.Training
		if err := rows.Scan(&t.ID, &t.ChannelID, &t.Date,
			&t.TimeStart, &t.TimeEnd, &t.Type, &t.Level, &t.Coach,
			&t.Location, &t.LocationID, &t.Price, &t.Spots,
			&t.Title, &t.Description, &t.SignupURL, &t.RawText, &t.MessageID); err != nil {
			continue
		}
		trainings = append(trainings, t)
	}
	return trainings, nil
}
