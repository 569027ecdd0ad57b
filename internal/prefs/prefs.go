// Package prefs реализует строковое key-value хранилище настроек
// приложения поверх Redis. Отсутствующий ключ отдаёт значение
// по умолчанию, это не ошибка.
package prefs

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "prefs:"

// Store хранилище настроек.
type Store struct {
	db *redis.Client
}

// New создаёт Store поверх уже открытого соединения с Redis.
func New(db *redis.Client) *Store {
	return &Store{db: db}
}

// Get возвращает значение ключа или fallback, если ключ не задан.
func (s *Store) Get(ctx context.Context, key, fallback string) (string, error) {
	const op = "prefs.Get"
	val, err := s.db.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return val, nil
}

// Set записывает значение ключа без срока жизни.
func (s *Store) Set(ctx context.Context, key, value string) error {
	const op = "prefs.Set"
	if err := s.db.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
