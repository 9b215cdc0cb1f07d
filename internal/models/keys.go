package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed keys of the flat storage namespace
const (
	KeyAuthenticated = "carenest_authenticated"
	KeyAccessCode    = "carenest_access_code"
	KeyProfiles      = "profiles"
)

// Prefixes of per-profile keys
const (
	PrefixAppointments = "appointments-"
	PrefixMedications  = "meds-"
	PrefixEmergency    = "emergency-"
	PrefixLog          = "log-"
)

// AppointmentsKey returns the key of the profile's appointment list
func AppointmentsKey(profileID string) string {
	return PrefixAppointments + profileID
}

// MedicationsKey returns the key of the profile's medication list
func MedicationsKey(profileID string) string {
	return PrefixMedications + profileID
}

// EmergencyKey returns the key of the profile's emergency record
func EmergencyKey(profileID string) string {
	return PrefixEmergency + profileID
}

// LogKey returns the key of a single daily log saved at epochMillis
func LogKey(profileID string, epochMillis int64) string {
	return fmt.Sprintf("%s%s-%d", PrefixLog, profileID, epochMillis)
}

// LogPrefix returns the common prefix of all daily logs of the profile
func LogPrefix(profileID string) string {
	return PrefixLog + profileID + "-"
}

// ParseLogKey splits a daily log key into profile ID and timestamp.
// The timestamp is the part after the last dash, so profile IDs may contain dashes
func ParseLogKey(key string) (profileID string, epochMillis int64, ok bool) {
	rest, found := strings.CutPrefix(key, PrefixLog)
	if !found {
		return "", 0, false
	}

	i := strings.LastIndexByte(rest, '-')
	if i <= 0 || i == len(rest)-1 {
		return "", 0, false
	}

	ts, err := strconv.ParseInt(rest[i+1:], 10, 64)
	if err != nil || ts < 0 {
		return "", 0, false
	}

	return rest[:i], ts, true
}

// OwnerOf returns the profile ID a per-profile key belongs to
func OwnerOf(key string) (string, bool) {
	for _, prefix := range []string{PrefixAppointments, PrefixMedications, PrefixEmergency} {
		if id, found := strings.CutPrefix(key, prefix); found && id != "" {
			return id, true
		}
	}

	if id, _, ok := ParseLogKey(key); ok {
		return id, true
	}

	return "", false
}
