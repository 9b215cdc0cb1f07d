package data

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iudanet/carenest/internal/client/kv"
	"github.com/iudanet/carenest/internal/client/storage/memory"
	"github.com/iudanet/carenest/internal/models"
)

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

// sequentialIDs возвращает предсказуемые идентификаторы id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestManager(t *testing.T) (*Manager, *kv.JSONStore) {
	t.Helper()
	store := kv.New(memory.New(), nil)
	m := NewManager(store,
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(sequentialIDs()),
	)
	return m, store
}

func addProfile(t *testing.T, m *Manager, name string) *models.Profile {
	t.Helper()
	p, err := m.AddProfile(context.Background(), models.ProfileInput{Name: name})
	require.NoError(t, err)
	return p
}

func TestNewManager_Defaults(t *testing.T) {
	m := NewManager(kv.New(memory.New(), nil), WithLogger(nil))

	require.NotNil(t, m.log)
	assert.NotEqual(t, m.newID(), m.newID())
	assert.WithinDuration(t, time.Now(), m.now(), time.Minute)
}

func TestLoadList_SkipsMalformedElements(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	store := kv.New(memory.New(), nil)
	m := NewManager(store, WithLogger(zap.New(core)))

	raw := []any{
		map[string]any{"id": "1", "name": "Sam", "createdAt": testNow},
		"not an object",
		map[string]any{"id": "2", "name": "   "},
		map[string]any{"id": "3", "name": "Alex", "age": "7"},
	}
	require.True(t, store.Set(ctx, models.KeyProfiles, raw))

	profiles := m.ListProfiles(ctx)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Sam", profiles[0].Name)
	assert.Equal(t, "Alex", profiles[1].Name)
	require.NotNil(t, profiles[1].Age)
	assert.Equal(t, 7, *profiles[1].Age)

	assert.Equal(t, 1, logs.FilterMessage("skipping malformed record").Len())
	assert.Equal(t, 1, logs.FilterMessage("skipping invalid record").Len())
}

func TestLoadList_WrongShapeIsEmpty(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)
	require.True(t, store.Set(ctx, models.KeyProfiles, map[string]string{"a": "b"}))

	profiles := m.ListProfiles(ctx)
	assert.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

// Нечитаемые элементы списка переживают запись соседних элементов
func TestWriteBack_KeepsUnreadableElements(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)

	legacy := `{"id":"1700000000000","name":"Baby","age":"abc","notes":""}`
	require.True(t, store.Set(ctx, models.KeyProfiles, []json.RawMessage{
		json.RawMessage(legacy),
		json.RawMessage(`"not an object"`),
	}))

	sam := addProfile(t, m, "Sam")
	_, err := m.UpdateProfile(ctx, sam.ID, models.ProfileInput{Name: "Samuel"})
	require.NoError(t, err)
	other := addProfile(t, m, "Alex")
	require.NoError(t, m.DeleteProfile(ctx, other.ID))

	var raw []json.RawMessage
	require.True(t, store.Get(ctx, models.KeyProfiles, &raw))
	require.Len(t, raw, 3)
	assert.Equal(t, "Samuel", gjson.GetBytes(raw[0], "name").String())
	assert.JSONEq(t, legacy, string(raw[1]))
	assert.JSONEq(t, `"not an object"`, string(raw[2]))

	profiles := m.ListProfiles(ctx)
	require.Len(t, profiles, 1)
	assert.Equal(t, "Samuel", profiles[0].Name)
}

func TestWriteBack_KeepsUnreadableRecords(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)
	sam := addProfile(t, m, "Sam")

	broken := `{"id":"old","name":""}`
	require.True(t, store.Set(ctx, models.MedicationsKey(sam.ID), []json.RawMessage{json.RawMessage(broken)}))
	require.True(t, store.Set(ctx, models.AppointmentsKey(sam.ID), []json.RawMessage{json.RawMessage(broken)}))

	med, err := m.AddMedication(ctx, sam.ID, models.Medication{Name: "Vitamin D"})
	require.NoError(t, err)
	_, err = m.ToggleTaken(ctx, sam.ID, med.ID)
	require.NoError(t, err)
	appt, err := m.AddAppointment(ctx, sam.ID, models.Appointment{Date: "2024-03-01", Provider: "Dr. Lee"})
	require.NoError(t, err)
	require.NoError(t, m.DeleteAppointment(ctx, sam.ID, appt.ID))

	for _, key := range []string{models.MedicationsKey(sam.ID), models.AppointmentsKey(sam.ID)} {
		var raw []json.RawMessage
		require.True(t, store.Get(ctx, key, &raw))
		require.NotEmpty(t, raw, key)
		assert.JSONEq(t, broken, string(raw[len(raw)-1]), key)
	}
}

// Значение, которое есть в хранилище, но не читается, не перезаписывается
func TestWriteBack_RefusesUnreadableValue(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	store := kv.New(backend, nil)
	m := NewManager(store, WithClock(func() time.Time { return testNow }), WithIDGenerator(sequentialIDs()))
	sam := addProfile(t, m, "Sam")

	require.NoError(t, backend.Put(ctx, models.KeyProfiles, []byte(`[{"id":`)))
	require.NoError(t, backend.Put(ctx, models.MedicationsKey(sam.ID), []byte(`{"not":"a list"}`)))
	require.NoError(t, backend.Put(ctx, models.EmergencyKey(sam.ID), []byte(`{broken`)))

	_, err := m.AddProfile(ctx, models.ProfileInput{Name: "Alex"})
	assert.ErrorIs(t, err, ErrUnreadable)
	_, err = m.UpdateProfile(ctx, sam.ID, models.ProfileInput{Name: "Alex"})
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.ErrorIs(t, m.DeleteProfile(ctx, sam.ID), ErrUnreadable)
	_, err = m.GetProfile(ctx, sam.ID)
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.Empty(t, m.ListProfiles(ctx))

	raw, err := backend.Get(ctx, models.KeyProfiles)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":`, string(raw))

	// Профиль снова читается, а список лекарств и экстренная запись нет
	require.True(t, store.Set(ctx, models.KeyProfiles, []models.Profile{*sam}))
	_, err = m.AddMedication(ctx, sam.ID, models.Medication{Name: "Vitamin D"})
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.ErrorIs(t, m.AddAllergy(ctx, sam.ID, "Dust"), ErrUnreadable)

	raw, err = backend.Get(ctx, models.MedicationsKey(sam.ID))
	require.NoError(t, err)
	assert.Equal(t, `{"not":"a list"}`, string(raw))
	raw, err = backend.Get(ctx, models.EmergencyKey(sam.ID))
	require.NoError(t, err)
	assert.Equal(t, `{broken`, string(raw))

	// Запись в отсутствующий ключ разрешена
	_, err = m.AddAppointment(ctx, sam.ID, models.Appointment{Date: "2024-03-01", Provider: "Dr. Lee"})
	require.NoError(t, err)
}

func TestSave_NotPersisted(t *testing.T) {
	ctx := context.Background()
	store := &kv.StoreMock{
		GetFunc:  func(ctx context.Context, key string, v any) bool { return false },
		SetFunc:  func(ctx context.Context, key string, v any) bool { return false },
		KeysFunc: func(ctx context.Context, prefix string) []string { return nil },
	}
	m := NewManager(store)

	_, err := m.AddProfile(ctx, models.ProfileInput{Name: "Sam"})
	assert.ErrorIs(t, err, ErrNotPersisted)
	require.Len(t, store.SetCalls(), 1)
	assert.Equal(t, models.KeyProfiles, store.SetCalls()[0].Key)
}
