package data

import (
	"context"

	"github.com/iudanet/carenest/internal/models"
)

// Service определяет интерфейс работы с записями профилей
type Service interface {
	ListProfiles(ctx context.Context) []models.Profile
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	AddProfile(ctx context.Context, in models.ProfileInput) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id string, in models.ProfileInput) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id string) error

	ListAppointments(ctx context.Context, profileID string) []models.Appointment
	AddAppointment(ctx context.Context, profileID string, appt models.Appointment) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, profileID, id string) error

	ListMedications(ctx context.Context, profileID string) []models.Medication
	AddMedication(ctx context.Context, profileID string, med models.Medication) (*models.Medication, error)
	ToggleTaken(ctx context.Context, profileID, id string) (*models.Medication, error)
	DeleteMedication(ctx context.Context, profileID, id string) error

	GetEmergency(ctx context.Context, profileID string) *models.EmergencyRecord
	AddAllergy(ctx context.Context, profileID, allergy string) error
	RemoveAllergy(ctx context.Context, profileID string, index int) error
	AddContact(ctx context.Context, profileID string, contact models.Contact) (*models.Contact, error)
	RemoveContact(ctx context.Context, profileID, id string) error
	SetHospital(ctx context.Context, profileID, hospital string) error
	SetInsurance(ctx context.Context, profileID, insurance string) error

	NewDailyLog(profileID string) models.DailyLog
	SaveLog(ctx context.Context, log models.DailyLog) (string, error)
	ListLogs(ctx context.Context, profileID string) []LogEntry
	DeleteLog(ctx context.Context, key string) error

	FindOrphans(ctx context.Context) ([]string, error)
	PurgeOrphans(ctx context.Context) ([]string, error)
}
