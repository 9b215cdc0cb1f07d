package summary

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/carenest/internal/client/data"
	"github.com/iudanet/carenest/internal/client/kv"
	"github.com/iudanet/carenest/internal/client/storage/memory"
	"github.com/iudanet/carenest/internal/models"
)

var testNow = time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*data.Manager, *Builder, string) {
	t.Helper()
	ctx := context.Background()
	clock := func() time.Time { return testNow }

	mgr := data.NewManager(kv.New(memory.New(), nil), data.WithClock(clock))
	age := 9
	p, err := mgr.AddProfile(ctx, models.ProfileInput{Name: "Sam", Nickname: "Sammy", Age: &age})
	require.NoError(t, err)

	return mgr, NewBuilder(mgr, clock), p.ID
}

func saveLog(t *testing.T, mgr *data.Manager, profileID, date string, intensity, sleep int, symptoms string) {
	t.Helper()
	log := mgr.NewDailyLog(profileID)
	log.Date = date
	log.Intensity = intensity
	log.Sleep = sleep
	log.Hydration = 4
	log.Symptoms = symptoms
	_, err := mgr.SaveLog(context.Background(), log)
	require.NoError(t, err)
}

func TestBuilder_Build(t *testing.T) {
	ctx := context.Background()
	mgr, b, id := newFixture(t)

	saveLog(t, mgr, id, "2024-03-31", 8, 2, "headache")
	saveLog(t, mgr, id, "2024-03-02", 4, 4, "")
	// Вне 30-дневного окна
	saveLog(t, mgr, id, "2024-03-01", 10, 1, "old")

	_, err := mgr.AddAppointment(ctx, id, models.Appointment{Date: "2024-03-20", Provider: "Dr. Lee", FollowUp: "2024-04-20"})
	require.NoError(t, err)
	_, err = mgr.AddAppointment(ctx, id, models.Appointment{Date: "2024-01-10", Provider: "Clinic", FollowUp: "2024-02-01"})
	require.NoError(t, err)
	_, err = mgr.AddMedication(ctx, id, models.Medication{Name: "Ibuprofen"})
	require.NoError(t, err)
	require.NoError(t, mgr.AddAllergy(ctx, id, "Peanuts"))

	s, err := b.Build(ctx, id, 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultDays, s.Days)
	assert.Equal(t, "2024-03-02", s.From.Format(models.DateLayout))
	assert.Equal(t, "2024-03-31", s.To.Format(models.DateLayout))
	assert.Equal(t, "Sam", s.Profile.Name)

	assert.Equal(t, 2, s.LogCount)
	assert.InDelta(t, 6.0, s.Averages.Intensity, 0.001)
	assert.InDelta(t, 3.0, s.Averages.Sleep, 0.001)
	assert.InDelta(t, 4.0, s.Averages.Hydration, 0.001)
	require.Len(t, s.Symptoms, 1)
	assert.Equal(t, "headache", s.Symptoms[0].Symptoms)

	require.Len(t, s.Appointments, 1)
	assert.Equal(t, "Dr. Lee", s.Appointments[0].Provider)
	require.Len(t, s.FollowUps, 1)
	assert.Equal(t, "2024-04-20", s.FollowUps[0].FollowUp)

	assert.Len(t, s.Medications, 1)
	assert.Equal(t, []string{"Peanuts"}, s.Emergency.Allergies)
}

func TestBuilder_BuildShortWindow(t *testing.T) {
	ctx := context.Background()
	mgr, b, id := newFixture(t)

	saveLog(t, mgr, id, "2024-03-31", 2, 3, "")
	saveLog(t, mgr, id, "2024-03-30", 2, 3, "")

	s, err := b.Build(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.LogCount)
	assert.True(t, s.From.Equal(s.To))
}

func TestBuilder_BuildUnknownProfile(t *testing.T) {
	_, b, _ := newFixture(t)

	_, err := b.Build(context.Background(), "missing", 30)
	assert.ErrorIs(t, err, data.ErrProfileNotFound)
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	mgr, b, id := newFixture(t)

	saveLog(t, mgr, id, "2024-03-31", 7, 5, "cough")
	_, err := mgr.AddMedication(ctx, id, models.Medication{Name: "Syrup", Time: "20:00"})
	require.NoError(t, err)
	_, err = mgr.AddContact(ctx, id, models.Contact{Name: "Mom", Relationship: "Mother", Phone: "555-0100"})
	require.NoError(t, err)
	require.NoError(t, mgr.SetHospital(ctx, id, "City General"))

	s, err := b.Build(ctx, id, 7)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "Health Summary: Sam (Sammy)")
	assert.Contains(t, out, "2024-03-25 .. 2024-03-31 (7 days)")
	assert.Contains(t, out, "Age:       9")
	assert.Contains(t, out, "Avg sleep:     5.0 (Excellent)")
	assert.Contains(t, out, "2024-03-31 18:00 [7/10] cough")
	assert.Contains(t, out, "[ ] Syrup at 20:00")
	assert.Contains(t, out, "None in this period")
	assert.Contains(t, out, "Allergies: none recorded")
	assert.Contains(t, out, "Contact:   Mom (Mother) 555-0100")
	assert.Contains(t, out, "Hospital:  City General")
	assert.Contains(t, out, Disclaimer)
}

func TestRender_NoLogs(t *testing.T) {
	_, b, id := newFixture(t)

	s, err := b.Build(context.Background(), id, 30)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s))
	assert.Contains(t, buf.String(), "No logs in this period.")
	assert.Contains(t, buf.String(), "Medications ---\n  None")
}
