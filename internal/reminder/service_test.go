// File: internal/reminder/service_test.go
package reminder

import (
	"context"
	"testing"
	"time"

	"seva_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAppID = "seva-app"

func newTestService(t *testing.T, now time.Time) (*ServiceImplementation, *store.MemoryStore) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	mem := store.NewMemoryStore()
	svc := NewService(NewStoreRepository(mem, testAppID), logger)
	svc.now = func() time.Time { return now }
	return svc, mem
}

func TestLoadForUser_SeedsEmptyCollection(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	reminders, err := svc.LoadForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, reminders, 3)

	for _, r := range reminders {
		assert.NotEmpty(t, r.ID, "seeded reminders must carry generated ids")
	}

	assert.Equal(t, "Quarterly Pest Control", reminders[0].ServiceName)
	assert.Equal(t, StatusPending, reminders[0].Status)
	assert.Equal(t, "GreenShield Pest Co.", reminders[0].VendorName)
	assert.True(t, reminders[0].DueDate.Equal(now.AddDate(0, 0, 3)))

	assert.Equal(t, "Lawn Mowing", reminders[1].ServiceName)
	assert.Equal(t, StatusPending, reminders[1].Status)
	assert.True(t, reminders[1].DueDate.Equal(now.AddDate(0, 0, 7)))

	assert.Equal(t, "AC Unit Inspection", reminders[2].ServiceName)
	assert.Equal(t, StatusCompleted, reminders[2].Status)
	assert.True(t, reminders[2].DueDate.Equal(now.AddDate(0, 0, -10)))
}

func TestLoadForUser_SecondLoadDoesNotReseed(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, mem := newTestService(t, now)
	ctx := context.Background()

	first, err := svc.LoadForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := svc.LoadForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, mem.Len(store.UserCollection(testAppID, "user-1", store.CollectionReminders)))
}

func TestLoadForUser_EmptiedCollectionStaysEmpty(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	seeded, err := svc.LoadForUser(ctx, "user-1")
	require.NoError(t, err)

	// Deleting everything must not trigger a second seed: the marker outlives
	// the reminders themselves.
	for _, r := range seeded {
		require.NoError(t, svc.Delete(ctx, "user-1", r.ID))
	}

	reloaded, err := svc.LoadForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, reloaded)
}

func TestLoadForUser_SeedingIsPerUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	one, err := svc.LoadForUser(ctx, "user-1")
	require.NoError(t, err)
	two, err := svc.LoadForUser(ctx, "user-2")
	require.NoError(t, err)

	require.Len(t, one, 3)
	require.Len(t, two, 3)
	assert.NotEqual(t, one[0].ID, two[0].ID)
}

func TestDelete_AbsentIDIsNoOp(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	assert.NoError(t, svc.Delete(context.Background(), "user-1", "no-such-id"))
}
