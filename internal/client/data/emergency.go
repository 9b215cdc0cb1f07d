package data

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iudanet/carenest/internal/models"
)

// GetEmergency returns the emergency record of a profile.
// A missing or unreadable record yields the empty default
func (m *Manager) GetEmergency(ctx context.Context, profileID string) *models.EmergencyRecord {
	key := models.EmergencyKey(profileID)

	rec := models.NewEmergencyRecord()
	if !m.store.Get(ctx, key, rec) {
		return models.NewEmergencyRecord()
	}

	if dropped := rec.Normalize(); dropped > 0 {
		m.log.Warn("skipping invalid emergency entries", zap.String("key", key), zap.Int("dropped", dropped))
	}

	return rec
}

// updateEmergency читает запись, применяет fn и сохраняет результат
func (m *Manager) updateEmergency(ctx context.Context, profileID string, fn func(*models.EmergencyRecord) error) error {
	if err := m.requireProfile(ctx, profileID); err != nil {
		return err
	}

	key := models.EmergencyKey(profileID)
	if !m.store.Get(ctx, key, models.NewEmergencyRecord()) && m.present(ctx, key) {
		return fmt.Errorf("%w: %s", ErrUnreadable, key)
	}

	rec := m.GetEmergency(ctx, profileID)
	if err := fn(rec); err != nil {
		return err
	}

	return m.save(ctx, key, rec)
}

// AddAllergy appends a trimmed, non-empty allergy
func (m *Manager) AddAllergy(ctx context.Context, profileID, allergy string) error {
	allergy = strings.TrimSpace(allergy)
	if allergy == "" {
		return ErrAllergyRequired
	}

	return m.updateEmergency(ctx, profileID, func(rec *models.EmergencyRecord) error {
		rec.Allergies = append(rec.Allergies, allergy)
		return nil
	})
}

// RemoveAllergy removes the allergy at index (zero-based)
func (m *Manager) RemoveAllergy(ctx context.Context, profileID string, index int) error {
	return m.updateEmergency(ctx, profileID, func(rec *models.EmergencyRecord) error {
		if index < 0 || index >= len(rec.Allergies) {
			return ErrIndexOutOfRange
		}
		rec.Allergies = append(rec.Allergies[:index], rec.Allergies[index+1:]...)
		return nil
	})
}

// AddContact appends an emergency contact; name and phone are required
func (m *Manager) AddContact(ctx context.Context, profileID string, contact models.Contact) (*models.Contact, error) {
	contact.ID = m.newID()
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Relationship = strings.TrimSpace(contact.Relationship)
	contact.Phone = strings.TrimSpace(contact.Phone)
	if err := contact.Validate(); err != nil {
		return nil, err
	}

	err := m.updateEmergency(ctx, profileID, func(rec *models.EmergencyRecord) error {
		rec.Contacts = append(rec.Contacts, contact)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// RemoveContact removes a contact by ID
func (m *Manager) RemoveContact(ctx context.Context, profileID, id string) error {
	return m.updateEmergency(ctx, profileID, func(rec *models.EmergencyRecord) error {
		for i, c := range rec.Contacts {
			if c.ID == id {
				rec.Contacts = append(rec.Contacts[:i], rec.Contacts[i+1:]...)
				return nil
			}
		}
		return ErrContactNotFound
	})
}

// SetHospital sets the preferred hospital; an empty value clears it
func (m *Manager) SetHospital(ctx context.Context, profileID, hospital string) error {
	return m.updateEmergency(ctx, profileID, func(rec *models.EmergencyRecord) error {
		rec.Hospital = strings.TrimSpace(hospital)
		return nil
	})
}

// SetInsurance sets the insurance info; an empty value clears it
func (m *Manager) SetInsurance(ctx context.Context, profileID, insurance string) error {
	return m.updateEmergency(ctx, profileID, func(rec *models.EmergencyRecord) error {
		rec.Insurance = strings.TrimSpace(insurance)
		return nil
	})
}
