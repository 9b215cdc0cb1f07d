package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used by every record
const DateLayout = "2006-01-02"

// TimeLayout is the clock format used by medications and daily logs
const TimeLayout = "15:04"

// Appointment представляет визит к врачу.
// Списки визитов хранятся от новых к старым.
type Appointment struct {
	ID       string `json:"id"`       // ID уникальный идентификатор
	Date     string `json:"date"`     // Date дата визита (YYYY-MM-DD), обязательна
	Provider string `json:"provider"` // Provider врач или клиника, обязательное поле
	Reason   string `json:"reason"`   // Reason причина визита
	Notes    string `json:"notes"`    // Notes заметки по итогам визита
	Tests    string `json:"tests"`    // Tests назначенные анализы
	FollowUp string `json:"followUp"` // FollowUp дата повторного визита (YYYY-MM-DD), опционально
}

// Validate checks required fields and date formats
func (a *Appointment) Validate() error {
	if a.ID == "" {
		return ErrIDRequired
	}
	if err := validateDate(a.Date, true); err != nil {
		return err
	}
	if strings.TrimSpace(a.Provider) == "" {
		return ErrProviderRequired
	}
	return validateDate(a.FollowUp, false)
}

func validateDate(value string, required bool) error {
	if value == "" {
		if required {
			return ErrDateRequired
		}
		return nil
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func validateTime(value string, required bool) error {
	if value == "" {
		if required {
			return ErrInvalidTime
		}
		return nil
	}
	if _, err := time.Parse(TimeLayout, value); err != nil {
		return ErrInvalidTime
	}
	return nil
}
