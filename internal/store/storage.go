package store

import (
	"context"
	"errors"
	"time"

	"panascoop/internal/models"
)

// Record — сохраняемая запись пользователя: список уведомлений
// и время последнего обновления.
type Record struct {
	Entries   []models.Notification `json:"entries"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// ErrNotFound возвращается, когда для ключа нет сохранённой записи.
var ErrNotFound = errors.New("record not found")

// Storage описывает долговременное хранилище записей уведомлений.
// Ровно одна запись на ключ; ключ выводится из идентификатора пользователя.
type Storage interface {
	Load(ctx context.Context, key string) (*Record, error)
	Save(ctx context.Context, key string, rec *Record) error
	Delete(ctx context.Context, key string) error
}
