package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Profile представляет члена семьи, владельца всех персональных записей.
// ID генерируется при создании и больше не меняется.
type Profile struct {
	CreatedAt time.Time `json:"createdAt"`          // CreatedAt время создания профиля
	Age       *int      `json:"age,omitempty"`      // Age возраст, nil если не указан
	ID        string    `json:"id"`                 // ID уникальный идентификатор (UUID)
	Name      string    `json:"name"`               // Name имя, обязательное поле
	Nickname  string    `json:"nickname,omitempty"` // Nickname опциональное короткое имя
	Notes     string    `json:"notes,omitempty"`    // Notes опциональные заметки
}

// maxAge ограничивает возраст из хранилища, чтобы дробное значение влезало в int
const maxAge = 1 << 16

// ProfileInput is the editable part of a Profile
type ProfileInput struct {
	Age      *int
	Name     string
	Nickname string
	Notes    string
}

// Validate checks the invariants of a stored profile
func (p *Profile) Validate() error {
	if p.ID == "" {
		return ErrIDRequired
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if p.Age != nil && *p.Age < 0 {
		return ErrInvalidAge
	}
	return nil
}

// DisplayName returns "Name (Nickname)" or just the name
func (p *Profile) DisplayName() string {
	if p.Nickname == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Nickname)
}

// UnmarshalJSON accepts age as a number, a numeric string or an empty string.
// Older records were saved straight from a form where age was free text.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	aux := struct {
		*plain
		Age json.RawMessage `json:"age,omitempty"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	age, err := ParseAge(aux.Age)
	if err != nil {
		return err
	}
	p.Age = age

	return nil
}

// ParseAge decodes an age JSON value (number, numeric string, "" or null).
// Fractional ages are truncated
func ParseAge(raw json.RawMessage) (*int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return ageFromFloat(f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, ErrInvalidAge
	}

	return ParseAgeString(s)
}

// ParseAgeString parses user input; blank input means "not set"
func ParseAgeString(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return nil, ErrInvalidAge
		}
		return &n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ErrInvalidAge
	}
	return ageFromFloat(f)
}

// ageFromFloat отбрасывает дробную часть; возраст больше maxAge не принимается
func ageFromFloat(f float64) (*int, error) {
	if math.IsNaN(f) || f < 0 || f > maxAge {
		return nil, ErrInvalidAge
	}
	n := int(math.Trunc(f))
	return &n, nil
}
