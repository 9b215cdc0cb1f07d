package data

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/iudanet/carenest/internal/models"
)

// FindOrphans lists per-profile keys whose profile no longer exists.
// Deleting a profile never removes its records, so these accumulate.
// When the profile list can't be read nothing is reported: every record
// would look orphaned
func (m *Manager) FindOrphans(ctx context.Context) ([]string, error) {
	profiles, err := loadRecords[models.Profile](ctx, m, models.KeyProfiles)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{})
	for _, p := range profiles.items {
		known[p.ID] = struct{}{}
	}
	// Нечитаемый профиль все еще владеет своими записями, если у него есть id
	for _, raw := range profiles.skipped {
		id := gjson.GetBytes(raw, "id")
		if (id.Type != gjson.String && id.Type != gjson.Number) || id.String() == "" {
			return nil, fmt.Errorf("%w: profile without id in %s", ErrUnreadable, models.KeyProfiles)
		}
		known[id.String()] = struct{}{}
	}

	var orphans []string
	for _, key := range m.store.Keys(ctx, "") {
		owner, ok := models.OwnerOf(key)
		if !ok {
			continue
		}
		if _, exists := known[owner]; !exists {
			orphans = append(orphans, key)
		}
	}

	return orphans, nil
}

// PurgeOrphans removes every orphaned key and returns the removed ones.
// Keys that could not be removed are reported through ErrNotPersisted
func (m *Manager) PurgeOrphans(ctx context.Context) ([]string, error) {
	var (
		removed []string
		failed  int
	)
	orphans, err := m.FindOrphans(ctx)
	if err != nil {
		return nil, err
	}

	for _, key := range orphans {
		if !m.store.Remove(ctx, key) {
			failed++
			continue
		}
		removed = append(removed, key)
	}

	if failed > 0 {
		m.log.Warn("failed to remove orphaned keys", zap.Int("failed", failed))
		return removed, ErrNotPersisted
	}

	return removed, nil
}
