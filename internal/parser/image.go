package parser

import (
	"fmt"
	"strings"
	"time"

	"traintracker/internal/models"
)

// ExpandImageSchedule превращает распознанное с картинки недельное
// расписание в конкретные тренировки: каждый день недели раскрывается
// в даты текущего и следующего месяца. Прошедшие даты пропускаются.
// Параллельные сессии в один день и час остаются отдельными записями —
// индекс строки входит в message_id.
func ExpandImageSchedule(sched models.ImageSchedule, locations []models.Location, now time.Time) []models.Training {
	locName, locID := "", 0
	if sched.Location != "" {
		if name, id, ok := lookupLocation(sched.Location, locations); ok {
			locName, locID = name, id
		} else {
			locName = sched.Location
		}
	}

	year, month := now.Year(), now.Month()
	nextYear, nextMonth := year, month+1
	if nextMonth > time.December {
		nextYear, nextMonth = year+1, time.January
	}
	today := time.Date(year, month, now.Day(), 0, 0, 0, 0, time.UTC)

	var out []models.Training
	for idx, tr := range sched.Trainings {
		if tr.Day == "" || tr.TimeStart == "" || !IsValidTime(tr.TimeStart) {
			continue
		}
		end := tr.TimeEnd
		if !IsValidTime(end) {
			end = ""
		}

		var dates []time.Time
		dates = append(dates, GetDatesForDayInMonth(tr.Day, year, month)...)
		dates = append(dates, GetDatesForDayInMonth(tr.Day, nextYear, nextMonth)...)

		for _, d := range dates {
			if d.Before(today) {
				continue
			}
			out = append(out, models.Training{
				Date:       d.Format("2006-01-02"),
				TimeStart:  tr.TimeStart,
				TimeEnd:    end,
				Type:       tr.Type,
				Level:      tr.Level,
				Coach:      tr.Coach,
				Location:   locName,
				LocationID: locID,
				Title:      strings.TrimSpace(tr.Type + " " + tr.TimeStart),
				MessageID:  fmt.Sprintf("img_%s_%s_%d", strings.ToLower(tr.Day), tr.TimeStart, idx),
			})
		}
	}
	return out
}
