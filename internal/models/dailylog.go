package models

import (
	"fmt"
	"time"
)

// Rating bounds of a daily log
const (
	MinIntensity = 1
	MaxIntensity = 10
	MinScale     = 1
	MaxScale     = 5
)

// DailyLog представляет одну запись дневника самочувствия.
// Каждое сохранение создает отдельный ключ log-<profileId>-<epochMillis>.
type DailyLog struct {
	Date      string `json:"date"`      // Date дата (YYYY-MM-DD)
	Time      string `json:"time"`      // Time время (HH:MM)
	Symptoms  string `json:"symptoms"`  // Symptoms описание симптомов
	Notes     string `json:"notes"`     // Notes триггеры, контекст
	ProfileID string `json:"profileId"` // ProfileID владелец записи
	Intensity int    `json:"intensity"` // Intensity интенсивность симптомов 1-10
	Sleep     int    `json:"sleep"`     // Sleep качество сна 1-5
	Appetite  int    `json:"appetite"`  // Appetite аппетит 1-5
	Mood      int    `json:"mood"`      // Mood настроение 1-5
	Hydration int    `json:"hydration"` // Hydration количество стаканов воды, >= 0
}

// NewDailyLog returns a log prefilled the way the entry form starts
func NewDailyLog(profileID string, now time.Time) DailyLog {
	return DailyLog{
		Date:      now.Format(DateLayout),
		Time:      now.Format(TimeLayout),
		ProfileID: profileID,
		Intensity: 5,
		Sleep:     3,
		Appetite:  3,
		Mood:      3,
		Hydration: 0,
	}
}

// Validate checks formats and rating ranges
func (l *DailyLog) Validate() error {
	if l.ProfileID == "" {
		return ErrIDRequired
	}
	if err := validateDate(l.Date, true); err != nil {
		return err
	}
	if err := validateTime(l.Time, true); err != nil {
		return err
	}
	if err := checkRange("intensity", l.Intensity, MinIntensity, MaxIntensity); err != nil {
		return err
	}
	for _, r := range []struct {
		name  string
		value int
	}{
		{"sleep", l.Sleep},
		{"appetite", l.Appetite},
		{"mood", l.Mood},
	} {
		if err := checkRange(r.name, r.value, MinScale, MaxScale); err != nil {
			return err
		}
	}
	if l.Hydration < 0 {
		return fmt.Errorf("hydration must not be negative: %w", ErrOutOfRange)
	}
	return nil
}

// Timestamp returns the moment the log refers to in loc
func (l *DailyLog) Timestamp(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, l.Date+" "+l.Time, loc)
}

func checkRange(name string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("%s must be between %d and %d: %w", name, lo, hi, ErrOutOfRange)
	}
	return nil
}

var (
	sleepLabels    = [...]string{"Poor", "Fair", "Good", "Very Good", "Excellent"}
	appetiteLabels = [...]string{"Very Low", "Low", "Normal", "Good", "Very High"}
	moodLabels     = [...]string{"Very Low", "Low", "Neutral", "Good", "Great"}
)

// SleepLabel returns the human label of a 1-5 sleep rating
func SleepLabel(v int) string { return scaleLabel(sleepLabels, v) }

// AppetiteLabel returns the human label of a 1-5 appetite rating
func AppetiteLabel(v int) string { return scaleLabel(appetiteLabels, v) }

// MoodLabel returns the human label of a 1-5 mood rating
func MoodLabel(v int) string { return scaleLabel(moodLabels, v) }

func scaleLabel(labels [5]string, v int) string {
	if v < MinScale || v > MaxScale {
		return "?"
	}
	return labels[v-1]
}
