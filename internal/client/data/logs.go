package data

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iudanet/carenest/internal/models"
)

// LogEntry is a stored daily log together with its key
type LogEntry struct {
	SavedAt time.Time
	Key     string
	Log     models.DailyLog
}

// NewDailyLog returns a log with form defaults for the current moment
func (m *Manager) NewDailyLog(profileID string) models.DailyLog {
	return models.NewDailyLog(profileID, m.now())
}

// SaveLog stores log under a new key log-<profileId>-<epochMillis> and returns the key.
// If that millisecond is already taken the next free one is used
func (m *Manager) SaveLog(ctx context.Context, log models.DailyLog) (string, error) {
	log.Symptoms = strings.TrimSpace(log.Symptoms)
	log.Notes = strings.TrimSpace(log.Notes)
	if err := log.Validate(); err != nil {
		return "", err
	}
	if err := m.requireProfile(ctx, log.ProfileID); err != nil {
		return "", err
	}

	taken := make(map[string]struct{})
	for _, k := range m.store.Keys(ctx, models.LogPrefix(log.ProfileID)) {
		taken[k] = struct{}{}
	}

	millis := m.now().UnixMilli()
	key := models.LogKey(log.ProfileID, millis)
	for {
		if _, ok := taken[key]; !ok {
			break
		}
		millis++
		key = models.LogKey(log.ProfileID, millis)
	}

	if err := m.save(ctx, key, log); err != nil {
		return "", err
	}

	return key, nil
}

// ListLogs returns the profile's logs ordered by save time, oldest first
func (m *Manager) ListLogs(ctx context.Context, profileID string) []LogEntry {
	keys := m.store.Keys(ctx, models.LogPrefix(profileID))

	type keyed struct {
		key    string
		millis int64
	}
	owned := make([]keyed, 0, len(keys))
	for _, k := range keys {
		// Префикс "log-a-" совпадает и с ключами профиля "a-b"
		id, millis, ok := models.ParseLogKey(k)
		if !ok || id != profileID {
			continue
		}
		owned = append(owned, keyed{key: k, millis: millis})
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].millis < owned[j].millis
	})

	entries := make([]LogEntry, 0, len(owned))
	for _, k := range owned {
		var log models.DailyLog
		if !m.store.Get(ctx, k.key, &log) {
			continue
		}
		if err := log.Validate(); err != nil {
			m.log.Warn("skipping invalid daily log", zap.String("key", k.key), zap.Error(err))
			continue
		}
		entries = append(entries, LogEntry{
			Key:     k.key,
			SavedAt: time.UnixMilli(k.millis),
			Log:     log,
		})
	}

	return entries
}

// DeleteLog removes a daily log by its key
func (m *Manager) DeleteLog(ctx context.Context, key string) error {
	if _, _, ok := models.ParseLogKey(key); !ok {
		return ErrLogNotFound
	}

	if !slices.Contains(m.store.Keys(ctx, key), key) {
		return ErrLogNotFound
	}

	if !m.store.Remove(ctx, key) {
		return ErrNotPersisted
	}

	return nil
}
