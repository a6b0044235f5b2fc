package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"panascoop/internal/models"
)

func setupDBStorage(t *testing.T) *DBStorage {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	s, err := NewDBStorage(db)
	if err != nil {
		t.Fatalf("storage init: %v", err)
	}
	return s
}

func sampleRecord() *Record {
	return &Record{
		Entries: []models.Notification{
			{ID: "n1", Title: "Reminder", TaskID: "t1", Timestamp: time.Now().Truncate(time.Millisecond)},
		},
		UpdatedAt: time.Now().Truncate(time.Millisecond),
	}
}

func TestDBStorageRoundtrip(t *testing.T) {
	s := setupDBStorage(t)
	ctx := context.Background()
	key := "notifications:db-roundtrip"

	if _, err := s.Load(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	rec := sampleRecord()
	if err := s.Save(ctx, key, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].ID != "n1" {
		t.Fatalf("unexpected entries: %+v", got.Entries)
	}

	// Повторный Save по тому же ключу — upsert, не вторая строка.
	rec.Entries[0].Read = true
	if err := s.Save(ctx, key, rec); err != nil {
		t.Fatalf("save again: %v", err)
	}
	got, err = s.Load(ctx, key)
	if err != nil {
		t.Fatalf("load again: %v", err)
	}
	if len(got.Entries) != 1 || !got.Entries[0].Read {
		t.Fatalf("upsert lost update: %+v", got.Entries)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDBStorageCorruptedPayload(t *testing.T) {
	s := setupDBStorage(t)
	key := "notifications:db-corrupted"

	row := StorageRecord{Key: key, Payload: datatypes.JSON(`{"entries": broken`), UpdatedAt: time.Now()}
	if err := s.db.Create(&row).Error; err != nil {
		t.Fatalf("seed row: %v", err)
	}

	_, err := s.Load(context.Background(), key)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
	if !strings.Contains(err.Error(), "decode record") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedisStorageRoundtrip(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	s := NewRedisStorage(client)
	ctx := context.Background()
	key := "notifications:redis-roundtrip"

	if _, err := s.Load(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	rec := sampleRecord()
	if err := s.Save(ctx, key, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].TaskID != "t1" {
		t.Fatalf("unexpected entries: %+v", got.Entries)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Load(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRedisStorageCorruptedPayload(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	s := NewRedisStorage(client)
	key := "notifications:redis-corrupted"

	srv.Set(key, "{broken")

	_, err := s.Load(context.Background(), key)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
