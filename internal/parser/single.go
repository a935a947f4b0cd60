package parser

import (
	"strings"
	"time"

	"traintracker/internal/models"
)

// ParseSingle собирает тренировку из одиночного сообщения. Возвращает nil,
// если в тексте нет даты или не удалось найти время начала — без этих двух
// полей запись не сохранить. Остальные поля опциональны: нераспознанное
// значение остаётся пустым, запись не бракуется.
func ParseSingle(messageID, text string, locations []models.Location, now time.Time) *models.Training {
	if !ContainsTrainingDate(text) {
		return nil
	}

	date := ExtractDate(text, now)
	if date == "" {
		return nil
	}

	start, end := ExtractTimeRange(text)
	if !IsValidTime(start) {
		start = ""
	}
	if !IsValidTime(end) {
		end = ""
	}
	if start == "" {
		return nil
	}

	locName, locID := ExtractLocation(text, locations)

	lines := nonEmptyLines(text)
	title := ""
	if len(lines) > 0 {
		title = lines[0]
	}
	description := ""
	if len(lines) > 2 {
		description = lines[1] + "\n" + lines[2]
	} else if len(lines) > 1 {
		description = lines[1]
	}

	return &models.Training{
		Date:        date,
		TimeStart:   start,
		TimeEnd:     end,
		Type:        ExtractType(text),
		Level:       ExtractLevel(text),
		Coach:       ExtractCoach(text),
		Location:    locName,
		LocationID:  locID,
		Price:       ExtractPrice(text),
		Spots:       ExtractSpots(text),
		Title:       title,
		Description: description,
		SignupURL:   ExtractSignupURL(text),
		RawText:     strings.TrimSpace(text),
		MessageID:   messageID,
	}
}
