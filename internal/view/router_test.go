// File: internal/view/router_test.go
package view

import (
	"testing"

	"seva_backend/internal/common"
	"seva_backend/internal/session"
	"seva_backend/internal/shared"

	"github.com/stretchr/testify/assert"
)

func snapshotFor(state session.State, role string) session.Snapshot {
	snap := session.Snapshot{State: state}
	if role != "" {
		snap.Profile = &shared.Profile{UserID: "u1", Role: role}
	}
	return snap
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		snap       session.Snapshot
		view       string
		wantScreen string
	}{
		{"loading wins over any view", snapshotFor(session.StateLoading, ""), ViewDashboard, ScreenLoading},
		{"unauthenticated resolves to sign-in", snapshotFor(session.StateUnauthenticated, ""), ViewVendors, ScreenSignIn},
		{"needs-role resolves to role selection", snapshotFor(session.StateNeedsRole, ""), ViewSettings, ScreenRoleSelection},
		{"client dashboard", snapshotFor(session.StateClientReady, common.RoleClient), ViewDashboard, ScreenClientDashboard},
		{"provider dashboard", snapshotFor(session.StateProviderReady, common.RoleProvider), ViewDashboard, ScreenProviderDashboard},
		{"vendor list", snapshotFor(session.StateClientReady, common.RoleClient), ViewVendors, ScreenVendorList},
		{"add vendor form", snapshotFor(session.StateClientReady, common.RoleClient), ViewAddVendor, ScreenAddVendorForm},
		{"settings", snapshotFor(session.StateClientReady, common.RoleClient), ViewSettings, ScreenSettings},
		{"unknown view", snapshotFor(session.StateClientReady, common.RoleClient), "bogus", ScreenNotFound},
		{"empty view name", snapshotFor(session.StateClientReady, common.RoleClient), "", ScreenNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.snap, tt.view)
			assert.Equal(t, tt.wantScreen, got.Name)
			assert.NotEmpty(t, got.Title)
		})
	}
}

func TestResolve_IsPure(t *testing.T) {
	snap := snapshotFor(session.StateClientReady, common.RoleClient)
	first := Resolve(snap, ViewDashboard)
	second := Resolve(snap, ViewDashboard)
	assert.Equal(t, first, second)
}

func TestStateAuthenticated(t *testing.T) {
	assert.False(t, session.StateLoading.Authenticated())
	assert.False(t, session.StateUnauthenticated.Authenticated())
	assert.True(t, session.StateNeedsRole.Authenticated())
	assert.True(t, session.StateClientReady.Authenticated())
	assert.True(t, session.StateProviderReady.Authenticated())
}
