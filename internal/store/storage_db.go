package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorageRecord — строка таблицы локального хранилища.
type StorageRecord struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// DBStorage хранит записи в локальной базе через GORM (sqlite).
type DBStorage struct {
	db *gorm.DB
}

// NewDBStorage выполняет миграцию таблицы и возвращает хранилище.
func NewDBStorage(db *gorm.DB) (*DBStorage, error) {
	if err := db.AutoMigrate(&StorageRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return &DBStorage{db: db}, nil
}

func (s *DBStorage) Load(ctx context.Context, key string) (*Record, error) {
	var row StorageRecord
	if err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

func (s *DBStorage) Save(ctx context.Context, key string, rec *Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	row := StorageRecord{Key: key, Payload: datatypes.JSON(b), UpdatedAt: rec.UpdatedAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (s *DBStorage) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&StorageRecord{}, "key = ?", key).Error
}

var _ Storage = (*DBStorage)(nil)
