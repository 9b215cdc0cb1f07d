package models

import "strings"

// Medication представляет лекарство в списке профиля.
// Taken переключается независимо от создания записи.
type Medication struct {
	ID    string `json:"id"`    // ID уникальный идентификатор
	Name  string `json:"name"`  // Name название, обязательное поле
	Time  string `json:"time"`  // Time обычное время приема (HH:MM), опционально
	Notes string `json:"notes"` // Notes опциональные заметки
	Taken bool   `json:"taken"` // Taken отметка о приеме
}

// Validate checks the invariants of a stored medication
func (m *Medication) Validate() error {
	if m.ID == "" {
		return ErrIDRequired
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrNameRequired
	}
	return validateTime(m.Time, false)
}
