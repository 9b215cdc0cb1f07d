// Package kv is the only place that talks to a storage.Backend.
// It turns structured values into JSON and absorbs every storage failure,
// so callers treat persistence as always available.
package kv

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/iudanet/carenest/internal/client/storage"
)

//go:generate moq -out store_mock.go . Store

// Store is the get/set/remove contract shared by every collaborator.
// None of the methods return errors: a failed read looks like a missing key,
// a failed write returns false and leaves the previous value in place.
type Store interface {
	// Get decodes the value stored under key into v.
	// Returns false if the key is absent, holds JSON null or can't be decoded
	Get(ctx context.Context, key string, v any) bool

	// Set encodes v as JSON and stores it under key
	Set(ctx context.Context, key string, v any) bool

	// Remove deletes key. Removing a missing key succeeds
	Remove(ctx context.Context, key string) bool

	// Keys lists stored keys with the prefix in ascending order, nil on failure
	Keys(ctx context.Context, prefix string) []string

	// Clear removes every key
	Clear(ctx context.Context) bool
}

// JSONStore implements Store on top of a storage.Backend
type JSONStore struct {
	backend storage.Backend
	log     *zap.Logger
}

// Compile-time check that JSONStore implements Store
var _ Store = (*JSONStore)(nil)

// New wraps backend. A nil logger disables diagnostics
func New(backend storage.Backend, log *zap.Logger) *JSONStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &JSONStore{
		backend: backend,
		log:     log.Named("kv"),
	}
}

func (s *JSONStore) Get(ctx context.Context, key string, v any) bool {
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.log.Error("storage get error", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	// Проверяем JSON до декодирования, чтобы отличить битые данные от несовпадения схемы
	if !gjson.ValidBytes(raw) {
		s.log.Warn("corrupt value in storage", zap.String("key", key), zap.Int("size", len(raw)))
		return false
	}
	if gjson.ParseBytes(raw).Type == gjson.Null {
		return false
	}

	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn("storage decode error", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (s *JSONStore) Set(ctx context.Context, key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error("storage encode error", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := s.backend.Put(ctx, key, raw); err != nil {
		s.log.Error("storage set error", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

func (s *JSONStore) Remove(ctx context.Context, key string) bool {
	if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		s.log.Error("storage remove error", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *JSONStore) Keys(ctx context.Context, prefix string) []string {
	keys, err := s.backend.Keys(ctx, prefix)
	if err != nil {
		s.log.Error("storage keys error", zap.String("prefix", prefix), zap.Error(err))
		return nil
	}
	return keys
}

func (s *JSONStore) Clear(ctx context.Context) bool {
	if err := s.backend.Clear(ctx); err != nil {
		s.log.Error("storage clear error", zap.Error(err))
		return false
	}
	return true
}
