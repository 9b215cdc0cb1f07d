// Package summary builds a printable health summary of one profile
// over a trailing window of days.
package summary

import (
	"context"
	"time"

	"github.com/iudanet/carenest/internal/client/data"
	"github.com/iudanet/carenest/internal/models"
)

// DefaultDays is the window used when Build gets a non-positive days value
const DefaultDays = 30

// Disclaimer is printed at the end of every summary
const Disclaimer = "Organization tool only. Not medical advice."

// Averages содержит средние значения оценок дневника за период
type Averages struct {
	Intensity float64
	Sleep     float64
	Appetite  float64
	Mood      float64
	Hydration float64
}

// SymptomEntry is a daily log that mentions symptoms
type SymptomEntry struct {
	Date      string
	Time      string
	Symptoms  string
	Intensity int
}

// Summary is the aggregated view of one profile
type Summary struct {
	GeneratedAt  time.Time
	From         time.Time
	To           time.Time
	Emergency    *models.EmergencyRecord
	Profile      models.Profile
	Symptoms     []SymptomEntry
	Medications  []models.Medication
	Appointments []models.Appointment
	FollowUps    []models.Appointment
	Averages     Averages
	Days         int
	LogCount     int
}

// Builder собирает Summary из данных сервиса
type Builder struct {
	data data.Service
	now  func() time.Time
}

// NewBuilder creates a builder; a nil now uses time.Now
func NewBuilder(svc data.Service, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{
		data: svc,
		now:  now,
	}
}

// Build aggregates the last days days (today included) of profileID
func (b *Builder) Build(ctx context.Context, profileID string, days int) (*Summary, error) {
	profile, err := b.data.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = DefaultDays
	}

	now := b.now()
	to := startOfDay(now)
	from := to.AddDate(0, 0, -(days - 1))

	s := &Summary{
		GeneratedAt: now,
		From:        from,
		To:          to,
		Days:        days,
		Profile:     *profile,
		Medications: b.data.ListMedications(ctx, profileID),
		Emergency:   b.data.GetEmergency(ctx, profileID),
	}

	b.aggregateLogs(ctx, s, now.Location())
	b.collectAppointments(ctx, s, now.Location())

	return s, nil
}

func (b *Builder) aggregateLogs(ctx context.Context, s *Summary, loc *time.Location) {
	var sum Averages
	for _, entry := range b.data.ListLogs(ctx, s.Profile.ID) {
		l := entry.Log
		day, err := time.ParseInLocation(models.DateLayout, l.Date, loc)
		if err != nil || day.Before(s.From) || day.After(s.To) {
			continue
		}

		s.LogCount++
		sum.Intensity += float64(l.Intensity)
		sum.Sleep += float64(l.Sleep)
		sum.Appetite += float64(l.Appetite)
		sum.Mood += float64(l.Mood)
		sum.Hydration += float64(l.Hydration)

		if l.Symptoms != "" {
			s.Symptoms = append(s.Symptoms, SymptomEntry{
				Date:      l.Date,
				Time:      l.Time,
				Symptoms:  l.Symptoms,
				Intensity: l.Intensity,
			})
		}
	}

	if s.LogCount == 0 {
		return
	}

	n := float64(s.LogCount)
	s.Averages = Averages{
		Intensity: sum.Intensity / n,
		Sleep:     sum.Sleep / n,
		Appetite:  sum.Appetite / n,
		Mood:      sum.Mood / n,
		Hydration: sum.Hydration / n,
	}
}

// collectAppointments отбирает визиты внутри окна и предстоящие повторные визиты
func (b *Builder) collectAppointments(ctx context.Context, s *Summary, loc *time.Location) {
	for _, a := range b.data.ListAppointments(ctx, s.Profile.ID) {
		if day, err := time.ParseInLocation(models.DateLayout, a.Date, loc); err == nil &&
			!day.Before(s.From) && !day.After(s.To) {
			s.Appointments = append(s.Appointments, a)
		}

		if a.FollowUp == "" {
			continue
		}
		if day, err := time.ParseInLocation(models.DateLayout, a.FollowUp, loc); err == nil && !day.Before(s.To) {
			s.FollowUps = append(s.FollowUps, a)
		}
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
