package models

import "errors"

// Validation errors of stored records
var (
	ErrNameRequired     = errors.New("name is required")
	ErrProviderRequired = errors.New("provider is required")
	ErrDateRequired     = errors.New("date is required")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime      = errors.New("time must be in HH:MM format")
	ErrPhoneRequired    = errors.New("phone is required")
	ErrIDRequired       = errors.New("id is required")
	ErrInvalidAge       = errors.New("age must be a non-negative number")
	ErrOutOfRange       = errors.New("value out of range")
)
