package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"traintracker/internal/models"
)

const visionPrompt = `На картинке расписание бадминтонных тренировок. Верни строго JSON без пояснений:
{"location": "название зала или null", "trainings": [{"type": "тип тренировки", "level": "уровень", "coach": "тренер", "day": "день недели по-русски", "time_start": "HH:MM", "time_end": "HH:MM"}]}
Поля, которых нет на картинке, оставляй пустыми строками. Каждая параллельная группа — отдельный элемент массива.`

// VisionClient распознаёт расписание с картинки через OpenAI.
// Для остального кода это чёрный ящик: URL картинки на входе,
// структурированное расписание на выходе.
type VisionClient struct {
	client *openai.Client
	model  string
}

// NewVisionClient создаёт клиент распознавания
func NewVisionClient(apiKey string) *VisionClient {
	return &VisionClient{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// ExtractSchedule распознаёт расписание с картинки по её URL
func (c *VisionClient) ExtractSchedule(ctx context.Context, imageURL string) (*models.ImageSchedule, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.1,
		MaxTokens:   2000,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("запрос к vision-модели не удался: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("vision-модель вернула пустой ответ")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	var sched models.ImageSchedule
	if err := json.Unmarshal([]byte(content), &sched); err != nil {
		return nil, fmt.Errorf("ответ vision-модели не распарсился: %w", err)
	}
	return &sched, nil
}

// cleanJSONResponse убирает markdown-обёртку, которую модели любят
// добавлять вокруг JSON
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
