package data

import (
	"context"
	"strings"

	"github.com/iudanet/carenest/internal/models"
)

// ListMedications returns the profile's medications in insertion order
func (m *Manager) ListMedications(ctx context.Context, profileID string) []models.Medication {
	return loadList[models.Medication](ctx, m, models.MedicationsKey(profileID))
}

// AddMedication appends a medication; it starts as not taken
func (m *Manager) AddMedication(ctx context.Context, profileID string, med models.Medication) (*models.Medication, error) {
	if err := m.requireProfile(ctx, profileID); err != nil {
		return nil, err
	}

	med.ID = m.newID()
	med.Name = strings.TrimSpace(med.Name)
	med.Time = strings.TrimSpace(med.Time)
	med.Taken = false
	if err := med.Validate(); err != nil {
		return nil, err
	}

	list, err := loadRecords[models.Medication](ctx, m, models.MedicationsKey(profileID))
	if err != nil {
		return nil, err
	}

	list.items = append(list.items, med)
	if err := m.save(ctx, models.MedicationsKey(profileID), list); err != nil {
		return nil, err
	}

	return &med, nil
}

// ToggleTaken flips the taken mark of one medication and returns the result
func (m *Manager) ToggleTaken(ctx context.Context, profileID, id string) (*models.Medication, error) {
	list, err := loadRecords[models.Medication](ctx, m, models.MedicationsKey(profileID))
	if err != nil {
		return nil, err
	}

	for i := range list.items {
		if list.items[i].ID != id {
			continue
		}

		list.items[i].Taken = !list.items[i].Taken
		if err := m.save(ctx, models.MedicationsKey(profileID), list); err != nil {
			return nil, err
		}
		med := list.items[i]
		return &med, nil
	}

	return nil, ErrMedicationNotFound
}

// DeleteMedication removes one medication by ID
func (m *Manager) DeleteMedication(ctx context.Context, profileID, id string) error {
	list, err := loadRecords[models.Medication](ctx, m, models.MedicationsKey(profileID))
	if err != nil {
		return err
	}

	kept := make([]models.Medication, 0, len(list.items))
	for _, med := range list.items {
		if med.ID != id {
			kept = append(kept, med)
		}
	}

	if len(kept) == len(list.items) {
		return ErrMedicationNotFound
	}

	list.items = kept
	return m.save(ctx, models.MedicationsKey(profileID), list)
}
