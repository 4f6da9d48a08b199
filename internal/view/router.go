// File: internal/view/router.go
package view

import (
	"seva_backend/internal/common"
	"seva_backend/internal/session"
)

// View names accepted by the router.
const (
	ViewDashboard = "dashboard"
	ViewVendors   = "vendors"
	ViewAddVendor = "add-vendor"
	ViewSettings  = "settings"
)

// Screen identifiers resolved by the router.
const (
	ScreenSignIn            = "sign-in"
	ScreenLoading           = "loading"
	ScreenRoleSelection     = "role-selection"
	ScreenClientDashboard   = "client-dashboard"
	ScreenProviderDashboard = "provider-dashboard"
	ScreenVendorList        = "vendor-list"
	ScreenAddVendorForm     = "add-vendor-form"
	ScreenSettings          = "settings"
	ScreenNotFound          = "Not Found"
)

// Screen describes what the client should render.
type Screen struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// resolver picks a screen for an authenticated, data-ready session.
type resolver func(role string) Screen

// views is the dispatch table. Only dashboard branches on role; the rest
// resolve to a single screen.
var views = map[string]resolver{
	ViewDashboard: func(role string) Screen {
		if role == common.RoleProvider {
			return Screen{Name: ScreenProviderDashboard, Title: "Provider Dashboard"}
		}
		return Screen{Name: ScreenClientDashboard, Title: "Dashboard"}
	},
	ViewVendors: func(string) Screen {
		return Screen{Name: ScreenVendorList, Title: "My Vendors"}
	},
	ViewAddVendor: func(string) Screen {
		return Screen{Name: ScreenAddVendorForm, Title: "Add Vendor"}
	},
	ViewSettings: func(string) Screen {
		return Screen{Name: ScreenSettings, Title: "Settings"}
	},
}

// Resolve maps a session snapshot and a requested view name to a screen.
// The session state wins over the requested view: an unauthenticated or
// still-loading session never reaches the dispatch table. Unknown view
// names resolve to the "Not Found" placeholder.
func Resolve(snap session.Snapshot, name string) Screen {
	switch snap.State {
	case session.StateLoading:
		return Screen{Name: ScreenLoading, Title: "Loading"}
	case session.StateUnauthenticated:
		return Screen{Name: ScreenSignIn, Title: "Sign In"}
	case session.StateNeedsRole:
		return Screen{Name: ScreenRoleSelection, Title: "Choose Your Role"}
	}

	resolve, ok := views[name]
	if !ok {
		return Screen{Name: ScreenNotFound, Title: "Not Found"}
	}

	role := ""
	if snap.Profile != nil {
		role = snap.Profile.Role
	}
	return resolve(role)
}
