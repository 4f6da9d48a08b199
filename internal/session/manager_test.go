// File: internal/session/manager_test.go
package session

import (
	"context"
	"testing"

	"seva_backend/internal/common"
	"seva_backend/internal/profile"
	"seva_backend/internal/reminder"
	"seva_backend/internal/shared"
	"seva_backend/internal/store"
	"seva_backend/internal/vendor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAppID = "seva-app"

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	mem := store.NewMemoryStore()

	profiles := profile.NewService(profile.NewStoreRepository(mem, testAppID), logger)
	vendors := vendor.NewService(vendor.NewStoreRepository(mem, testAppID), nil, logger)
	reminders := reminder.NewService(reminder.NewStoreRepository(mem, testAppID), logger)

	return NewManager(profiles, vendors, reminders, logger)
}

func identity(uid string) *shared.Identity {
	return &shared.Identity{
		UID:         uid,
		DisplayName: "Asha Rao",
		Email:       uid + "@example.com",
	}
}

func TestBegin_WithoutProfileNeedsRole(t *testing.T) {
	m := newTestManager(t)

	snap, err := m.Begin(context.Background(), identity("u1"))
	require.NoError(t, err)
	assert.Equal(t, StateNeedsRole, snap.State)
	assert.Nil(t, snap.Profile)
	assert.Equal(t, "u1", snap.Identity.UID)

	assert.Equal(t, StateNeedsRole, m.Current("u1").State)
}

func TestBegin_RequiresIdentity(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Begin(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = m.Begin(context.Background(), &shared.Identity{})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSelectRole_ClientLoadsVendorsAndReminders(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)

	snap, err := m.SelectRole(ctx, "u1", common.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, StateClientReady, snap.State)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, common.RoleClient, snap.Profile.Role)
	assert.True(t, snap.Profile.Settings.Notifications.Push)

	// A brand-new client gets the demo reminder set and no vendors.
	assert.Empty(t, snap.Vendors)
	require.Len(t, snap.Reminders, 3)
	assert.Equal(t, "Quarterly Pest Control", snap.Reminders[0].ServiceName)
}

func TestSelectRole_Provider(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)

	snap, err := m.SelectRole(ctx, "u1", common.RoleProvider)
	require.NoError(t, err)
	assert.Equal(t, StateProviderReady, snap.State)
	// Providers have no data load defined.
	assert.Empty(t, snap.Vendors)
	assert.Empty(t, snap.Reminders)
}

func TestSelectRole_OnlyValidFromNeedsRole(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	// No session at all.
	_, err := m.SelectRole(ctx, "u1", common.RoleClient)
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	_, err = m.SelectRole(ctx, "u1", common.RoleClient)
	require.NoError(t, err)

	// Already client-ready.
	_, err = m.SelectRole(ctx, "u1", common.RoleProvider)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestSelectRole_RejectsUnknownRole(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)

	_, err = m.SelectRole(ctx, "u1", "admin")
	assert.ErrorIs(t, err, common.ErrBadRequest)
	assert.Equal(t, StateNeedsRole, m.Current("u1").State)
}

func TestBegin_SecondSignInSkipsRoleSelection(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	_, err = m.SelectRole(ctx, "u1", common.RoleClient)
	require.NoError(t, err)
	m.SignOut("u1")

	snap, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	assert.Equal(t, StateClientReady, snap.State)
	// The demo set was seeded on the first session and must not grow.
	assert.Len(t, snap.Reminders, 3)
}

func TestSignOut_ClearsSessionAndIsIdempotent(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	_, err = m.SelectRole(ctx, "u1", common.RoleClient)
	require.NoError(t, err)

	snap := m.SignOut("u1")
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Nil(t, snap.Identity)
	assert.Equal(t, StateUnauthenticated, m.Current("u1").State)

	// Signing out again is a no-op.
	snap = m.SignOut("u1")
	assert.Equal(t, StateUnauthenticated, snap.State)
}

func TestStaleTransitionIsDiscarded(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	first, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	staleEpoch := first.Epoch

	// The user signs out while a load for the old epoch is still in flight.
	m.SignOut("u1")

	_, err = m.transition("u1", staleEpoch, func(s *session) {
		s.state = StateClientReady
	})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, StateUnauthenticated, m.Current("u1").State)

	// Same for a sign-in that replaced the session with a fresh epoch.
	second, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	require.NotEqual(t, staleEpoch, second.Epoch)

	_, err = m.transition("u1", staleEpoch, func(s *session) {
		s.state = StateProviderReady
	})
	assert.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, StateNeedsRole, m.Current("u1").State)
}

func TestSubscribe_TeardownStopsNotifications(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	var seen []State
	cancel := m.Subscribe(func(userID string, snap Snapshot) {
		seen = append(seen, snap.State)
	})

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	require.NotEmpty(t, seen)
	assert.Equal(t, StateLoading, seen[0])
	assert.Equal(t, StateNeedsRole, seen[len(seen)-1])

	cancel()
	before := len(seen)
	m.SignOut("u1")
	assert.Len(t, seen, before, "a cancelled observer must not fire")
}

func TestVendorOpsRequireClientSession(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.ListVendors(ctx, "nobody", "")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	_, err = m.SelectRole(ctx, "u1", common.RoleProvider)
	require.NoError(t, err)

	_, err = m.ListVendors(ctx, "u1", "")
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = m.ListReminders(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestCreateAndDeleteVendorUpdateSessionState(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	_, err = m.SelectRole(ctx, "u1", common.RoleClient)
	require.NoError(t, err)

	v, err := m.CreateVendor(ctx, "u1", vendor.CreateVendorRequest{
		Name:     "Evergreen Lawn Care",
		Category: "Landscaping",
	})
	require.NoError(t, err)

	vendors, err := m.ListVendors(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, v.ID, vendors[0].ID)
	assert.Len(t, m.Current("u1").Vendors, 1)

	// Search terms bypass the cache and hit the vendor service.
	hits, err := m.ListVendors(ctx, "u1", "lawn")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	hits, err = m.ListVendors(ctx, "u1", "plumbing")
	require.NoError(t, err)
	assert.Empty(t, hits)

	require.NoError(t, m.DeleteVendor(ctx, "u1", v.ID))
	vendors, err = m.ListVendors(ctx, "u1", "")
	require.NoError(t, err)
	assert.Empty(t, vendors)

	// Deleting an absent id stays a no-op end to end.
	assert.NoError(t, m.DeleteVendor(ctx, "u1", v.ID))
}

func TestDeleteReminderUpdatesSessionState(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	snap, err := m.SelectRole(ctx, "u1", common.RoleClient)
	require.NoError(t, err)
	require.Len(t, snap.Reminders, 3)

	require.NoError(t, m.DeleteReminder(ctx, "u1", snap.Reminders[0].ID))

	reminders, err := m.ListReminders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, reminders, 2)
	assert.Equal(t, "Lawn Mowing", reminders[0].ServiceName)
}

func TestUpdateSettingsRefreshesCachedProfile(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	_, err = m.SelectRole(ctx, "u1", common.RoleClient)
	require.NoError(t, err)

	dark := true
	p, err := m.UpdateSettings(ctx, "u1", shared.SettingsPatch{DarkMode: &dark})
	require.NoError(t, err)
	assert.True(t, p.Settings.DarkMode)
	assert.True(t, p.Settings.Notifications.Push)

	// Both the cached copy and the session snapshot reflect the change.
	cached, err := m.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, cached.Settings.DarkMode)
	assert.True(t, m.Current("u1").Profile.Settings.DarkMode)
}

func TestGetProfileFallsBackToServiceWithoutSession(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("u1"))
	require.NoError(t, err)
	_, err = m.SelectRole(ctx, "u1", common.RoleClient)
	require.NoError(t, err)
	m.SignOut("u1")

	p, err := m.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, common.RoleClient, p.Role)
}

func TestActiveClientSessions(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Begin(ctx, identity("client-1"))
	require.NoError(t, err)
	_, err = m.SelectRole(ctx, "client-1", common.RoleClient)
	require.NoError(t, err)

	_, err = m.Begin(ctx, identity("provider-1"))
	require.NoError(t, err)
	_, err = m.SelectRole(ctx, "provider-1", common.RoleProvider)
	require.NoError(t, err)

	active := m.ActiveClientSessions()
	require.Len(t, active, 1)
	assert.Equal(t, "client-1", active[0].UserID)
	assert.Len(t, active[0].Reminders, 3)
	assert.True(t, active[0].Settings.Notifications.Push)
}
