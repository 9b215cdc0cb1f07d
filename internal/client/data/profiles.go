package data

import (
	"context"
	"strings"

	"github.com/iudanet/carenest/internal/models"
)

// ListProfiles returns all profiles in creation order
func (m *Manager) ListProfiles(ctx context.Context) []models.Profile {
	return loadList[models.Profile](ctx, m, models.KeyProfiles)
}

// GetProfile returns the profile with the given ID
func (m *Manager) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	profiles, err := loadRecords[models.Profile](ctx, m, models.KeyProfiles)
	if err != nil {
		return nil, err
	}

	for _, p := range profiles.items {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrProfileNotFound
}

// AddProfile appends a new profile. The name is trimmed and required
func (m *Manager) AddProfile(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	p := models.Profile{
		ID:        m.newID(),
		CreatedAt: m.now(),
	}
	applyProfileInput(&p, in)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	profiles, err := loadRecords[models.Profile](ctx, m, models.KeyProfiles)
	if err != nil {
		return nil, err
	}

	profiles.items = append(profiles.items, p)
	if err := m.save(ctx, models.KeyProfiles, profiles); err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdateProfile replaces the editable fields of a profile; ID and CreatedAt are kept
func (m *Manager) UpdateProfile(ctx context.Context, id string, in models.ProfileInput) (*models.Profile, error) {
	profiles, err := loadRecords[models.Profile](ctx, m, models.KeyProfiles)
	if err != nil {
		return nil, err
	}

	for i := range profiles.items {
		if profiles.items[i].ID != id {
			continue
		}

		updated := profiles.items[i]
		applyProfileInput(&updated, in)
		if err := updated.Validate(); err != nil {
			return nil, err
		}

		profiles.items[i] = updated
		if err := m.save(ctx, models.KeyProfiles, profiles); err != nil {
			return nil, err
		}
		return &updated, nil
	}

	return nil, ErrProfileNotFound
}

// DeleteProfile removes the profile from the list only.
// Per-profile records stay in storage; see FindOrphans
func (m *Manager) DeleteProfile(ctx context.Context, id string) error {
	profiles, err := loadRecords[models.Profile](ctx, m, models.KeyProfiles)
	if err != nil {
		return err
	}

	kept := make([]models.Profile, 0, len(profiles.items))
	for _, p := range profiles.items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if len(kept) == len(profiles.items) {
		return ErrProfileNotFound
	}

	profiles.items = kept
	return m.save(ctx, models.KeyProfiles, profiles)
}

// requireProfile проверяет, что профиль существует
func (m *Manager) requireProfile(ctx context.Context, id string) error {
	_, err := m.GetProfile(ctx, id)
	return err
}

func applyProfileInput(p *models.Profile, in models.ProfileInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Nickname = strings.TrimSpace(in.Nickname)
	p.Notes = strings.TrimSpace(in.Notes)
	p.Age = in.Age
}
