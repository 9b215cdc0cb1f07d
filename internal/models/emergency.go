package models

import "strings"

// Contact is an emergency contact of a profile
type Contact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone"`
}

// Validate checks the invariants of a stored contact
func (c *Contact) Validate() error {
	if c.ID == "" {
		return ErrIDRequired
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrPhoneRequired
	}
	return nil
}

// EmergencyRecord holds the emergency vault of one profile.
// A missing record is equivalent to NewEmergencyRecord().
type EmergencyRecord struct {
	Allergies []string  `json:"allergies"`
	Contacts  []Contact `json:"contacts"`
	Hospital  string    `json:"hospital"`
	Insurance string    `json:"insurance"`
}

// NewEmergencyRecord returns the empty default record
func NewEmergencyRecord() *EmergencyRecord {
	return &EmergencyRecord{
		Allergies: []string{},
		Contacts:  []Contact{},
	}
}

// Normalize replaces nil slices, drops blank allergies and invalid contacts.
// Returns the number of dropped entries
func (e *EmergencyRecord) Normalize() int {
	dropped := 0

	allergies := make([]string, 0, len(e.Allergies))
	for _, a := range e.Allergies {
		if strings.TrimSpace(a) == "" {
			dropped++
			continue
		}
		allergies = append(allergies, a)
	}

	contacts := make([]Contact, 0, len(e.Contacts))
	for _, c := range e.Contacts {
		if err := c.Validate(); err != nil {
			dropped++
			continue
		}
		contacts = append(contacts, c)
	}

	e.Allergies = allergies
	e.Contacts = contacts

	return dropped
}

// IsEmpty reports whether nothing was filled in
func (e *EmergencyRecord) IsEmpty() bool {
	return len(e.Allergies) == 0 && len(e.Contacts) == 0 && e.Hospital == "" && e.Insurance == ""
}
