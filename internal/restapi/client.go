package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"panascoop/internal/models"
	"panascoop/internal/utils"
)

// APIError — ответ бэкенда со статусом вне 2xx.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Body)
}

// Client ходит в REST-бэкенд за записями настроек напоминаний.
// Записи валидируются до любого запроса; идентификаторы генерирует
// клиент, запись идёт идемпотентным PUT, поэтому повтор после
// неоднозначного 5xx безопасен по построению.
type Client struct {
	base     string
	token    string
	httpc    *http.Client
	validate *validator.Validate
	log      *logrus.Logger
}

// NewClient возвращает клиент для базового URL бэкенда.
func NewClient(base, token string, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		base:     base,
		token:    token,
		httpc:    &http.Client{Timeout: 10 * time.Second},
		validate: validator.New(),
		log:      log,
	}
}

// List возвращает все настройки напоминаний текущего пользователя.
func (c *Client) List(ctx context.Context) ([]models.ReminderConfig, error) {
	var out []models.ReminderConfig
	if err := c.do(ctx, http.MethodGet, "/reminders", nil, &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert создаёт или обновляет настройку напоминания. Пустой ID
// заменяется свежим nanoid до отправки.
func (c *Client) Upsert(ctx context.Context, cfg models.ReminderConfig) (models.ReminderConfig, error) {
	if err := c.validate.Struct(cfg); err != nil {
		return models.ReminderConfig{}, fmt.Errorf("reminder config: %w", err)
	}
	if cfg.ID == "" {
		id, err := utils.GenerateNanoID()
		if err != nil {
			return models.ReminderConfig{}, err
		}
		cfg.ID = id
	}
	var out models.ReminderConfig
	if err := c.do(ctx, http.MethodPut, "/reminders/"+cfg.ID, cfg, &out, true); err != nil {
		return models.ReminderConfig{}, err
	}
	return out, nil
}

// Delete удаляет настройку напоминания по идентификатору.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+id, nil, nil, true)
}

// do выполняет запрос; идемпотентные операции повторяются один раз
// после 5xx или сетевой ошибки.
func (c *Client) do(ctx context.Context, method, path string, in, out any, retriable bool) error {
	err := c.once(ctx, method, path, in, out)
	if err == nil || !retriable {
		return err
	}
	if apiErr, ok := err.(*APIError); ok && apiErr.Status < http.StatusInternalServerError {
		return err
	}
	c.log.Warnf("%s %s: %v, retrying", method, path, err)
	return c.once(ctx, method, path, in, out)
}

func (c *Client) once(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
