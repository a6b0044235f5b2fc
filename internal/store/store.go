package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"panascoop/internal/models"
	"panascoop/internal/utils"
)

const (
	// MaxEntries — предел количества уведомлений, старые вытесняются.
	MaxEntries = 50
	// DedupWindow — окно близости меток времени для дубликатов одной задачи.
	DedupWindow = 5 * time.Second
	// RetentionWindow — записи старше отбрасываются при загрузке.
	RetentionWindow = 24 * time.Hour
	// FallbackWindow — при отказе записи повтор идёт только со свежими записями.
	FallbackWindow = 12 * time.Hour
)

// Store владеет каноническим списком уведомлений активного пользователя.
// Список упорядочен по вызовам: новые в голове. Все операции
// сериализованы мьютексом.
type Store struct {
	mu      sync.Mutex
	storage Storage
	log     *logrus.Logger
	userID  string
	list    []models.Notification
}

// New создаёт пустой Store поверх переданного хранилища.
func New(storage Storage, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{storage: storage, log: log}
}

// storageKey возвращает ключ записи для идентификатора пользователя.
// Пустой идентификатор получает анонимный ключ, который никогда
// не смешивается с данными авторизованных пользователей.
func storageKey(userID string) string {
	if userID == "" {
		return "notifications:anon"
	}
	return "notifications:" + userID
}

// Ingest нормализует событие брокера и вставляет его в голову списка.
// Дубликат (та же задача, метки времени ближе DedupWindow) молча
// отбрасывается. Возвращает уведомление и признак вставки.
func (s *Store) Ingest(raw models.RawEvent) (models.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := utils.GenerateNanoID()
	if err != nil {
		s.log.Warnf("nanoid: %v", err)
		return models.Notification{}, false
	}
	n := raw.Normalize(id, time.Now())

	for _, e := range s.list {
		if e.TaskID == n.TaskID && absDiff(e.Timestamp, n.Timestamp) <= DedupWindow {
			return models.Notification{}, false
		}
	}

	s.list = append([]models.Notification{n}, s.list...)
	if len(s.list) > MaxEntries {
		s.list = s.list[:MaxEntries]
	}
	s.persistLocked()
	return n, true
}

// MarkRead помечает уведомление прочитанным. Повторный вызов — no-op.
func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID == id {
			if !s.list[i].Read {
				s.list[i].Read = true
				s.persistLocked()
			}
			return true
		}
	}
	return false
}

// MarkAllRead помечает все непрочитанные уведомления и возвращает их число.
func (s *Store) MarkAllRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range s.list {
		if !s.list[i].Read {
			s.list[i].Read = true
			count++
		}
	}
	if count > 0 {
		s.persistLocked()
	}
	return count
}

// Remove удаляет уведомление по идентификатору.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.list {
		if s.list[i].ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// Clear опустошает список и удаляет сохранённую запись пользователя
// целиком, а не пишет пустой список.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
	if err := s.storage.Delete(context.Background(), storageKey(s.userID)); err != nil {
		s.log.Warnf("delete record: %v", err)
	}
}

// Reset очищает только память, сохранённая запись остаётся на месте.
// Вызывается при завершении сессии.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
	s.list = nil
}

// Load загружает запись пользователя, отбрасывает записи старше
// RetentionWindow и делает пользователя активным. Повреждённая запись
// сбрасывается, ошибка не поднимается наружу.
func (s *Store) Load(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = userID
	s.list = nil
	key := storageKey(userID)
	ctx := context.Background()

	rec, err := s.storage.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warnf("load record %s: %v", key, err)
			if derr := s.storage.Delete(ctx, key); derr != nil {
				s.log.Warnf("reset record %s: %v", key, derr)
			}
		}
		return
	}

	cutoff := time.Now().Add(-RetentionWindow)
	kept := make([]models.Notification, 0, len(rec.Entries))
	for _, n := range rec.Entries {
		if n.Timestamp.After(cutoff) {
			kept = append(kept, n)
		}
	}
	s.list = kept
	if len(kept) < len(rec.Entries) {
		s.persistLocked()
	}
}

// List возвращает копию текущего списка, новые в начале.
func (s *Store) List() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, len(s.list))
	copy(out, s.list)
	return out
}

// UserID возвращает идентификатор активного пользователя.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// persistLocked пишет текущий список в хранилище. При отказе повторяет
// один раз только со свежими записями (моложе FallbackWindow); второй
// отказ логируется и глотается — список в памяти остаётся корректным.
func (s *Store) persistLocked() {
	key := storageKey(s.userID)
	ctx := context.Background()
	now := time.Now()
	rec := &Record{Entries: s.list, UpdatedAt: now}
	err := s.storage.Save(ctx, key, rec)
	if err == nil {
		return
	}
	s.log.Warnf("persist %s: %v, retrying with fresh entries", key, err)

	cutoff := now.Add(-FallbackWindow)
	fresh := make([]models.Notification, 0, len(s.list))
	for _, n := range s.list {
		if n.Timestamp.After(cutoff) {
			fresh = append(fresh, n)
		}
	}
	if err := s.storage.Save(ctx, key, &Record{Entries: fresh, UpdatedAt: now}); err != nil {
		s.log.Warnf("persist %s failed, keeping in memory only: %v", key, err)
	}
}

func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
