package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/carenest/internal/client/kv"
	"github.com/iudanet/carenest/internal/client/storage/memory"
	"github.com/iudanet/carenest/internal/models"
)

func TestManager_NewDailyLog(t *testing.T) {
	m, _ := newTestManager(t)

	log := m.NewDailyLog("p1")
	assert.Equal(t, "2024-03-15", log.Date)
	assert.Equal(t, "09:30", log.Time)
	assert.Equal(t, "p1", log.ProfileID)
	assert.Equal(t, 5, log.Intensity)
	assert.Equal(t, 3, log.Sleep)
	assert.Equal(t, 3, log.Appetite)
	assert.Equal(t, 3, log.Mood)
	assert.Equal(t, 0, log.Hydration)
}

func TestManager_SaveLog(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)
	sam := addProfile(t, m, "Sam")

	log := m.NewDailyLog(sam.ID)
	log.Symptoms = " headache "
	key, err := m.SaveLog(ctx, log)
	require.NoError(t, err)
	assert.Equal(t, models.LogKey(sam.ID, testNow.UnixMilli()), key)

	var stored models.DailyLog
	require.True(t, store.Get(ctx, key, &stored))
	assert.Equal(t, "headache", stored.Symptoms)

	// Та же миллисекунда: ключ сдвигается, запись не перезаписывается
	second, err := m.SaveLog(ctx, log)
	require.NoError(t, err)
	assert.Equal(t, models.LogKey(sam.ID, testNow.UnixMilli()+1), second)

	third, err := m.SaveLog(ctx, log)
	require.NoError(t, err)
	assert.Equal(t, models.LogKey(sam.ID, testNow.UnixMilli()+2), third)

	assert.Len(t, m.ListLogs(ctx, sam.ID), 3)
}

func TestManager_SaveLogValidation(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	sam := addProfile(t, m, "Sam")

	tests := []struct {
		name    string
		mutate  func(*models.DailyLog)
		wantErr error
	}{
		{name: "intensity high", mutate: func(l *models.DailyLog) { l.Intensity = 11 }, wantErr: models.ErrOutOfRange},
		{name: "intensity low", mutate: func(l *models.DailyLog) { l.Intensity = 0 }, wantErr: models.ErrOutOfRange},
		{name: "sleep", mutate: func(l *models.DailyLog) { l.Sleep = 6 }, wantErr: models.ErrOutOfRange},
		{name: "hydration", mutate: func(l *models.DailyLog) { l.Hydration = -1 }, wantErr: models.ErrOutOfRange},
		{name: "date", mutate: func(l *models.DailyLog) { l.Date = "yesterday" }, wantErr: models.ErrInvalidDate},
		{name: "profile", mutate: func(l *models.DailyLog) { l.ProfileID = "missing" }, wantErr: ErrProfileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := m.NewDailyLog(sam.ID)
			tt.mutate(&log)
			_, err := m.SaveLog(ctx, log)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, m.ListLogs(ctx, sam.ID))
}

func TestManager_ListLogsOrderAndOwnership(t *testing.T) {
	ctx := context.Background()
	store := kv.New(memory.New(), nil)

	now := time.UnixMilli(9_000)
	m := NewManager(store,
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string { return "a" }),
	)
	_, err := m.AddProfile(ctx, models.ProfileInput{Name: "A"})
	require.NoError(t, err)

	m.newID = func() string { return "a-b" }
	_, err = m.AddProfile(ctx, models.ProfileInput{Name: "AB"})
	require.NoError(t, err)

	// 9000 идет раньше 10000, хотя лексикографически больше
	key1, err := m.SaveLog(ctx, m.NewDailyLog("a"))
	require.NoError(t, err)
	now = time.UnixMilli(10_000)
	key2, err := m.SaveLog(ctx, m.NewDailyLog("a"))
	require.NoError(t, err)
	_, err = m.SaveLog(ctx, m.NewDailyLog("a-b"))
	require.NoError(t, err)

	logs := m.ListLogs(ctx, "a")
	require.Len(t, logs, 2)
	assert.Equal(t, key1, logs[0].Key)
	assert.Equal(t, key2, logs[1].Key)
	assert.Equal(t, int64(9_000), logs[0].SavedAt.UnixMilli())

	assert.Len(t, m.ListLogs(ctx, "a-b"), 1)
}

func TestManager_ListLogsSkipsInvalid(t *testing.T) {
	ctx := context.Background()
	m, store := newTestManager(t)
	sam := addProfile(t, m, "Sam")

	valid := m.NewDailyLog(sam.ID)
	require.True(t, store.Set(ctx, models.LogKey(sam.ID, 1), valid))
	invalid := valid
	invalid.Mood = 42
	require.True(t, store.Set(ctx, models.LogKey(sam.ID, 2), invalid))
	require.True(t, store.Set(ctx, models.LogKey(sam.ID, 3), "garbage"))

	logs := m.ListLogs(ctx, sam.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, models.LogKey(sam.ID, 1), logs[0].Key)
}

func TestManager_DeleteLog(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)
	sam := addProfile(t, m, "Sam")

	key, err := m.SaveLog(ctx, m.NewDailyLog(sam.ID))
	require.NoError(t, err)

	// Префикс существующего ключа не считается ключом
	assert.ErrorIs(t, m.DeleteLog(ctx, key[:len(key)-1]), ErrLogNotFound)
	assert.ErrorIs(t, m.DeleteLog(ctx, models.KeyProfiles), ErrLogNotFound)

	require.NoError(t, m.DeleteLog(ctx, key))
	assert.Empty(t, m.ListLogs(ctx, sam.ID))
	assert.ErrorIs(t, m.DeleteLog(ctx, key), ErrLogNotFound)
}
