package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"traintracker/internal/models"
)

var ctx = context.Background()

// Cache хранит в Redis справочник залов и результаты vision-распознавания,
// чтобы не ходить в БД и в платный API на каждый прогон.
type Cache struct {
	client *redis.Client
}

func New(addr, password string, db int) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{client: rdb}
}

func (c *Cache) Ping() error {
	return c.client.Ping(ctx).Err()
}

// SaveLocations кеширует справочник залов (TTL: 1 час)
func (c *Cache) SaveLocations(locations []models.Location) error {
	data, err := json.Marshal(locations)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "cache:locations", data, time.Hour).Err()
}

// GetLocations возвращает справочник залов из кеша, nil если кеш пуст
func (c *Cache) GetLocations() ([]models.Location, error) {
	val, err := c.client.Get(ctx, "cache:locations").Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var locations []models.Location
	if err := json.Unmarshal([]byte(val), &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// SaveImageSchedule кеширует распознанное расписание по ключу картинки
// (TTL: 7 дней — картинки в каналах часто репостят)
func (c *Cache) SaveImageSchedule(key string, sched *models.ImageSchedule) error {
	data, err := json.Marshal(sched)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "vision:"+key, data, 7*24*time.Hour).Err()
}

// GetImageSchedule возвращает распознанное расписание из кеша, nil если его нет
func (c *Cache) GetImageSchedule(key string) (*models.ImageSchedule, error) {
	val, err := c.client.Get(ctx, "vision:"+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sched models.ImageSchedule
	if err := json.Unmarshal([]byte(val), &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}
