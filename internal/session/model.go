// File: internal/session/model.go
package session

import (
	"seva_backend/internal/reminder"
	"seva_backend/internal/shared"
	"seva_backend/internal/vendor"
)

// State is the session lifecycle state. The lifecycle is strictly linear:
// loading resolves to exactly one of the other states, and no state is
// revisited except through a full sign-out/sign-in cycle.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateNeedsRole       State = "needs-role"
	StateClientReady     State = "client-ready"
	StateProviderReady   State = "provider-ready"
)

// Authenticated reports whether the state holds a signed-in identity.
func (s State) Authenticated() bool {
	return s == StateNeedsRole || s == StateClientReady || s == StateProviderReady
}

// session is the per-user lifecycle record. All fields are guarded by the
// Manager's mutex.
type session struct {
	state     State
	epoch     uint64
	identity  *shared.Identity
	profile   *shared.Profile
	vendors   []vendor.Vendor
	reminders []reminder.Reminder
}

// Snapshot is an immutable copy of a session handed to callers and
// subscribers.
type Snapshot struct {
	State     State               `json:"state"`
	Epoch     uint64              `json:"epoch"`
	Identity  *shared.Identity    `json:"identity,omitempty"`
	Profile   *shared.Profile     `json:"profile,omitempty"`
	Vendors   []vendor.Vendor     `json:"vendors,omitempty"`
	Reminders []reminder.Reminder `json:"reminders,omitempty"`
}

func (s *session) snapshot() Snapshot {
	snap := Snapshot{
		State: s.state,
		Epoch: s.epoch,
	}
	if s.identity != nil {
		identity := *s.identity
		snap.Identity = &identity
	}
	if s.profile != nil {
		profile := *s.profile
		snap.Profile = &profile
	}
	if s.vendors != nil {
		snap.Vendors = append([]vendor.Vendor(nil), s.vendors...)
	}
	if s.reminders != nil {
		snap.Reminders = append([]reminder.Reminder(nil), s.reminders...)
	}
	return snap
}

// unauthenticatedSnapshot is what Current returns when no session exists.
func unauthenticatedSnapshot() Snapshot {
	return Snapshot{State: StateUnauthenticated}
}
