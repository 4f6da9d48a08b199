// File: internal/profile/service_test.go
package profile

import (
	"context"
	"testing"

	"seva_backend/internal/common"
	"seva_backend/internal/shared"
	"seva_backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAppID = "seva-app"

func newTestService(t *testing.T) *ServiceImplementation {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	return NewService(NewStoreRepository(store.NewMemoryStore(), testAppID), logger)
}

func testIdentity() *shared.Identity {
	return &shared.Identity{
		UID:         "user-1",
		DisplayName: "Asha Rao",
		Email:       "asha@example.com",
		PhotoURL:    "https://example.com/asha.png",
	}
}

func TestCreateWithRole_DefaultSettings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateWithRole(ctx, testIdentity(), common.RoleClient)
	require.NoError(t, err)

	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, common.RoleClient, p.Role)
	assert.False(t, p.Settings.DarkMode)
	assert.True(t, p.Settings.Notifications.Push)
	assert.True(t, p.Settings.Notifications.Email)
	assert.False(t, p.CreatedAt.IsZero())

	// The profile must round-trip through the store.
	loaded, err := svc.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, p.Role, loaded.Role)
	assert.Equal(t, p.Settings, loaded.Settings)
	assert.Equal(t, p.DisplayName, loaded.DisplayName)
}

func TestCreateWithRole_RejectsUnknownRole(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateWithRole(context.Background(), testIdentity(), "admin")
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestCreateWithRole_SecondCreateConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateWithRole(ctx, testIdentity(), common.RoleClient)
	require.NoError(t, err)

	_, err = svc.CreateWithRole(ctx, testIdentity(), common.RoleProvider)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestGetByUserID_NotFoundBeforeRoleSelection(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByUserID(context.Background(), "never-selected")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateSettings_MergePreservesUntouchedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateWithRole(ctx, testIdentity(), common.RoleClient)
	require.NoError(t, err)

	push := false
	p, err := svc.UpdateSettings(ctx, "user-1", shared.SettingsPatch{Push: &push})
	require.NoError(t, err)

	assert.False(t, p.Settings.Notifications.Push)
	// Untouched fields keep their previous values.
	assert.True(t, p.Settings.Notifications.Email)
	assert.False(t, p.Settings.DarkMode)

	dark := true
	p, err = svc.UpdateSettings(ctx, "user-1", shared.SettingsPatch{DarkMode: &dark})
	require.NoError(t, err)
	assert.True(t, p.Settings.DarkMode)
	assert.False(t, p.Settings.Notifications.Push)
	assert.True(t, p.Settings.Notifications.Email)

	// The persisted document reflects the latest full replace.
	loaded, err := svc.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, p.Settings, loaded.Settings)
}

func TestUpdateSettings_RequiresExistingProfile(t *testing.T) {
	svc := newTestService(t)

	dark := true
	_, err := svc.UpdateSettings(context.Background(), "nobody", shared.SettingsPatch{DarkMode: &dark})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateSettingsRequest_ToPatch(t *testing.T) {
	dark := true
	push := false
	req := UpdateSettingsRequest{
		DarkMode: &dark,
		Notifications: &NotificationSettingsRequest{
			Push: &push,
		},
	}
	patch := req.ToPatch()

	require.NotNil(t, patch.DarkMode)
	assert.True(t, *patch.DarkMode)
	require.NotNil(t, patch.Push)
	assert.False(t, *patch.Push)
	assert.Nil(t, patch.Email)

	empty := UpdateSettingsRequest{}
	assert.Equal(t, shared.SettingsPatch{}, empty.ToPatch())
}
