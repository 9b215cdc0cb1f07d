package data

import (
	"context"
	"strings"

	"github.com/iudanet/carenest/internal/models"
)

// ListAppointments returns the profile's appointments, newest first
func (m *Manager) ListAppointments(ctx context.Context, profileID string) []models.Appointment {
	return loadList[models.Appointment](ctx, m, models.AppointmentsKey(profileID))
}

// AddAppointment validates appt and puts it at the head of the list
func (m *Manager) AddAppointment(ctx context.Context, profileID string, appt models.Appointment) (*models.Appointment, error) {
	if err := m.requireProfile(ctx, profileID); err != nil {
		return nil, err
	}

	appt.ID = m.newID()
	appt.Date = strings.TrimSpace(appt.Date)
	appt.FollowUp = strings.TrimSpace(appt.FollowUp)
	appt.Provider = strings.TrimSpace(appt.Provider)
	if err := appt.Validate(); err != nil {
		return nil, err
	}

	list, err := loadRecords[models.Appointment](ctx, m, models.AppointmentsKey(profileID))
	if err != nil {
		return nil, err
	}

	list.items = append([]models.Appointment{appt}, list.items...)

	if err := m.save(ctx, models.AppointmentsKey(profileID), list); err != nil {
		return nil, err
	}

	return &appt, nil
}

// DeleteAppointment removes one appointment by ID
func (m *Manager) DeleteAppointment(ctx context.Context, profileID, id string) error {
	list, err := loadRecords[models.Appointment](ctx, m, models.AppointmentsKey(profileID))
	if err != nil {
		return err
	}

	kept := make([]models.Appointment, 0, len(list.items))
	for _, a := range list.items {
		if a.ID != id {
			kept = append(kept, a)
		}
	}

	if len(kept) == len(list.items) {
		return ErrAppointmentNotFound
	}

	list.items = kept
	return m.save(ctx, models.AppointmentsKey(profileID), list)
}
