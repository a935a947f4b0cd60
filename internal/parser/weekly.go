package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"traintracker/internal/models"
)

var (
	groupPriceRE = regexp.MustCompile(`(?i)стоимость\s+груп[а-яё]*\s+тренировок[^\d]*(\d+)`)
	gamePriceRE  = regexp.MustCompile(`(?i)стоимость\s+игров[а-яё]*\s+тренировок[^\d]*(\d+)`)
	dayHeaderRE  = regexp.MustCompile(`(?i)(понедельник|вторник|среда|четверг|пятница|суббота|воскресенье)[^(\n]*\(\s*(\d{1,2})\.(\d{1,2})\s*\)`)
	blockPriceRE = regexp.MustCompile(`(\d+)\s*(?:руб|₽)`)
	blankLineRE  = regexp.MustCompile(`\n\s*\n`)
)

// ParseWeekly разбирает недельное расписание: текст режется на блоки дней
// по заголовкам "День недели (ДД.ММ)", блок дня — на сессии по пустым
// строкам. День без распознанных сессий просто даёт ноль записей, остальные
// дни при этом не теряются.
func ParseWeekly(messageID, text string, locations []models.Location, now time.Time) []models.Training {
	groupPrice := matchedInt(groupPriceRE, text)
	gamePrice := matchedInt(gamePriceRE, text)

	headers := dayHeaderRE.FindAllStringSubmatchIndex(text, -1)
	var out []models.Training
	for i, h := range headers {
		dayName := strings.ToLower(text[h[2]:h[3]])
		day, _ := strconv.Atoi(text[h[4]:h[5]])
		month, _ := strconv.Atoi(text[h[6]:h[7]])
		if !isValidDayMonth(day, month) {
			continue
		}
		date := fmt.Sprintf("%04d-%02d-%02d", resolveYear(month, now), month, day)

		blockEnd := len(text)
		if i+1 < len(headers) {
			blockEnd = headers[i+1][0]
		}
		body := text[h[1]:blockEnd]

		idx := 0
		for _, block := range splitSessionBlocks(body) {
			t := parseSessionBlock(block, locations, groupPrice, gamePrice)
			if t == nil {
				continue
			}
			t.Date = date
			t.MessageID = fmt.Sprintf("%s_%s_%d", messageID, dayName, idx)
			idx++
			out = append(out, *t)
		}
	}
	return out
}

func splitSessionBlocks(body string) []string {
	var blocks []string
	for _, block := range blankLineRE.Split(body, -1) {
		if trimmed := strings.TrimSpace(block); trimmed != "" {
			blocks = append(blocks, trimmed)
		}
	}
	return blocks
}

// parseSessionBlock разбирает один блок сессии. Первая строка обязана
// содержать диапазон времени, текст до него — зал. Блок без времени
// пропускается, это не ошибка дня.
func parseSessionBlock(block string, locations []models.Location, groupPrice, gamePrice int) *models.Training {
	lines := nonEmptyLines(block)
	if len(lines) == 0 {
		return nil
	}

	first := lines[0]
	m := timeRangeRE.FindStringSubmatchIndex(first)
	if m == nil {
		return nil
	}
	start := fmtClock(first[m[2]:m[3]], first[m[4]:m[5]])
	end := fmtClock(first[m[6]:m[7]], first[m[8]:m[9]])
	if !IsValidTime(start) || start == "" {
		return nil
	}
	if !IsValidTime(end) {
		end = ""
	}

	locText := strings.Trim(strings.TrimSpace(first[:m[0]]), "-–—,:|")
	locName, locID := "", 0
	if locText != "" {
		if name, id, ok := lookupLocation(locText, locations); ok {
			locName, locID = name, id
		} else {
			locName = strings.TrimSpace(locText)
		}
	}

	coach := ""
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "тренер") {
			coach = ExtractCoach(line)
			break
		}
	}

	// Неподписанные блоки почти всегда групповые, если нет намёка на игровую.
	typ := ExtractType(block)
	if typ == "" && !strings.Contains(strings.ToLower(block), "игров") {
		typ = "групповая"
	}

	price := 0
	switch typ {
	case "игровая", "мини-игровая":
		price = gamePrice
	case "групповая", "мини-группа", "детская группа":
		price = groupPrice
	}
	if price == 0 {
		price = matchedInt(blockPriceRE, block)
	}
	if price == 0 {
		price = groupPrice
	}

	level := ""
	if l, ok := levelFromKeyword(block); ok {
		level = l
	}

	return &models.Training{
		TimeStart:  start,
		TimeEnd:    end,
		Type:       typ,
		Level:      level,
		Coach:      coach,
		Location:   locName,
		LocationID: locID,
		Price:      price,
		Title:      first,
		RawText:    block,
	}
}

func matchedInt(re *regexp.Regexp, text string) int {
	if m := re.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}
