package data

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iudanet/carenest/internal/client/kv"
)

// Manager implements Service over a kv.Store.
// Every operation is a read-modify-write of whole values; there are no
// transactions across keys.
type Manager struct {
	store kv.Store
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// Compile-time check that Manager implements Service
var _ Service = (*Manager)(nil)

// Option настраивает Manager
type Option func(*Manager)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов записей
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

// WithLogger sets the logger for skipped malformed records
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log.Named("data")
		}
	}
}

// NewManager creates a data manager over store
func NewManager(store kv.Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type validator interface {
	Validate() error
}

// records is a decoded list together with the raw elements that failed to
// decode or validate. Those elements are written back unchanged after the
// decoded part, so a read-modify-write never drops data it can't read
type records[T any] struct {
	items   []T
	skipped []json.RawMessage
}

func (r records[T]) MarshalJSON() ([]byte, error) {
	out := make([]any, 0, len(r.items)+len(r.skipped))
	for _, item := range r.items {
		out = append(out, item)
	}
	for _, raw := range r.skipped {
		out = append(out, raw)
	}
	return json.Marshal(out)
}

// loadRecords читает список записей, откладывая битые элементы в skipped.
// Отсутствующий ключ дает пустой список; ключ, который есть в хранилище,
// но не читается целиком, дает ErrUnreadable
func loadRecords[T any, PT interface {
	*T
	validator
}](ctx context.Context, m *Manager, key string) (records[T], error) {
	var raw []json.RawMessage
	if !m.store.Get(ctx, key, &raw) {
		if m.present(ctx, key) {
			return records[T]{items: []T{}}, fmt.Errorf("%w: %s", ErrUnreadable, key)
		}
		return records[T]{items: []T{}}, nil
	}

	recs := records[T]{items: make([]T, 0, len(raw))}
	for i, r := range raw {
		var item T
		if err := json.Unmarshal(r, &item); err != nil {
			m.log.Warn("skipping malformed record", zap.String("key", key), zap.Int("index", i), zap.Error(err))
			recs.skipped = append(recs.skipped, r)
			continue
		}
		if err := PT(&item).Validate(); err != nil {
			m.log.Warn("skipping invalid record", zap.String("key", key), zap.Int("index", i), zap.Error(err))
			recs.skipped = append(recs.skipped, r)
			continue
		}
		recs.items = append(recs.items, item)
	}

	return recs, nil
}

// loadList returns only the readable elements. Readers never fail:
// a missing or unreadable key gives an empty list
func loadList[T any, PT interface {
	*T
	validator
}](ctx context.Context, m *Manager, key string) []T {
	recs, _ := loadRecords[T, PT](ctx, m, key)
	return recs.items
}

// present reports whether key exists in storage regardless of its content
func (m *Manager) present(ctx context.Context, key string) bool {
	return slices.Contains(m.store.Keys(ctx, key), key)
}

// save persists v and converts a refused write into ErrNotPersisted
func (m *Manager) save(ctx context.Context, key string, v any) error {
	if !m.store.Set(ctx, key, v) {
		return ErrNotPersisted
	}
	return nil
}
