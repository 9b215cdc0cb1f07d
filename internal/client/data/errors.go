package data

import "errors"

var (
	// ErrNotPersisted возвращается, когда хранилище не подтвердило запись
	ErrNotPersisted = errors.New("changes could not be saved")
	// ErrUnreadable возвращается, когда значение есть в хранилище, но не читается.
	// Такое значение не перезаписывается
	ErrUnreadable = errors.New("stored data is unreadable")

	ErrProfileNotFound     = errors.New("profile not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrMedicationNotFound  = errors.New("medication not found")
	ErrContactNotFound     = errors.New("contact not found")
	ErrLogNotFound         = errors.New("daily log not found")
	ErrAllergyRequired     = errors.New("allergy is required")
	ErrIndexOutOfRange     = errors.New("index out of range")
)
