package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// errCapacity сигнализирует про исчерпание места в хранилище.
var errCapacity = errors.New("storage capacity exceeded")

// memoryStorage — in-memory реализация Storage для дев-режима и тестов.
// capacity ограничивает размер сериализованной записи в байтах,
// 0 — без ограничения.
type memoryStorage struct {
	mu       sync.Mutex
	m        map[string][]byte
	capacity int
}

// NewMemoryStorage возвращает in-memory хранилище.
func NewMemoryStorage(capacity int) Storage {
	return &memoryStorage{m: make(map[string][]byte), capacity: capacity}
}

func (s *memoryStorage) Load(ctx context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.m[key]
	if !ok {
		return nil, ErrNotFound
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

func (s *memoryStorage) Save(ctx context.Context, key string, rec *Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capacity > 0 && len(b) > s.capacity {
		return errCapacity
	}
	s.m[key] = b
	return nil
}

func (s *memoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

var _ Storage = (*memoryStorage)(nil)
