// File: internal/shared/core.go
package shared

import (
	"context"
	"time"
)

// Identity mirrors the identity provider's account record. It is read-only
// to the application and replaced wholesale on every auth-state change.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photo_url"`
}

// NotificationSettings are the per-channel notification flags.
type NotificationSettings struct {
	Push  bool `json:"push"`
	Email bool `json:"email"`
}

// Settings is the settings sub-object of a profile. It is always fully
// populated on a created profile; there are no partial sub-objects.
type Settings struct {
	DarkMode      bool                 `json:"darkMode"`
	Notifications NotificationSettings `json:"notifications"`
}

// DefaultSettings are applied when a profile is first created on role
// selection.
func DefaultSettings() Settings {
	return Settings{
		DarkMode: false,
		Notifications: NotificationSettings{
			Push:  true,
			Email: true,
		},
	}
}

// Profile is the per-user persisted record of role and settings, distinct
// from the identity provider's account record. Its existence is the sole
// signal that the user has completed role selection.
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	PhotoURL    string    `json:"photo_url"`
	Role        string    `json:"role"`
	Settings    Settings  `json:"settings"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SettingsPatch is a partial settings change. Nil fields are left untouched
// by the merge.
type SettingsPatch struct {
	DarkMode *bool `json:"darkMode,omitempty"`
	Push     *bool `json:"push,omitempty"`
	Email    *bool `json:"email,omitempty"`
}

// Apply merges the patch into s, preserving untouched fields.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	if p.Push != nil {
		s.Notifications.Push = *p.Push
	}
	if p.Email != nil {
		s.Notifications.Email = *p.Email
	}
	return s
}

// ProfileService defines the profile operations consumed by the session
// state machine and the HTTP layer.
type ProfileService interface {
	// GetByUserID returns common.ErrNotFound when the user has not completed
	// role selection yet.
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	// CreateWithRole creates the profile exactly once, with default settings.
	CreateWithRole(ctx context.Context, identity *Identity, role string) (*Profile, error)
	// UpdateSettings merges the patch, replaces the full document and returns
	// the updated profile only after the write succeeded.
	UpdateSettings(ctx context.Context, userID string, patch SettingsPatch) (*Profile, error)
}
