package models

import "time"

// Значения по умолчанию для событий брокера с пропущенными полями.
const (
	DefaultTitle   = "Notification"
	DefaultMessage = "You have a new notification"
	DefaultType    = "reminder"
)

// Notification представляет нормализованное уведомление реального времени
// swagger:model
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	TaskID    string    `json:"taskId"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// RawEvent — сырое событие брокера. Все поля опциональны,
// timestamp передаётся в миллисекундах эпохи.
type RawEvent struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	TaskID    string `json:"taskId"`
	Timestamp int64  `json:"timestamp"`
}

// Normalize превращает сырое событие в Notification, подставляя
// значения по умолчанию для отсутствующих полей.
func (e RawEvent) Normalize(id string, now time.Time) Notification {
	n := Notification{
		ID:        id,
		Title:     e.Title,
		Message:   e.Message,
		Type:      e.Type,
		TaskID:    e.TaskID,
		Timestamp: now,
	}
	if n.Title == "" {
		n.Title = DefaultTitle
	}
	if n.Message == "" {
		n.Message = DefaultMessage
	}
	if n.Type == "" {
		n.Type = DefaultType
	}
	if e.Timestamp > 0 {
		n.Timestamp = time.UnixMilli(e.Timestamp)
	}
	return n
}
