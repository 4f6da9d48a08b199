// File: internal/profile/model.go
package profile

import (
	"time"

	"seva_backend/internal/shared"
	"seva_backend/internal/store"
)

// UpdateSettingsRequest is the PATCH body for settings changes. All fields
// are optional; absent fields are left untouched by the merge.
type UpdateSettingsRequest struct {
	DarkMode      *bool                        `json:"darkMode"`
	Notifications *NotificationSettingsRequest `json:"notifications"`
}

// NotificationSettingsRequest is the optional notifications sub-object of a
// settings patch.
type NotificationSettingsRequest struct {
	Push  *bool `json:"push"`
	Email *bool `json:"email"`
}

// ToPatch flattens the request into a shared.SettingsPatch.
func (r UpdateSettingsRequest) ToPatch() shared.SettingsPatch {
	patch := shared.SettingsPatch{DarkMode: r.DarkMode}
	if r.Notifications != nil {
		patch.Push = r.Notifications.Push
		patch.Email = r.Notifications.Email
	}
	return patch
}

// SelectRoleRequest is the body of the role-selection call.
type SelectRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=client provider"`
}

// ToDocument converts a profile to its persisted document form. The settings
// sub-object is always written in full; there are no partial sub-objects.
func ToDocument(p *shared.Profile) store.Document {
	return store.Document{
		"user_id":      p.UserID,
		"display_name": p.DisplayName,
		"email":        p.Email,
		"photo_url":    p.PhotoURL,
		"role":         p.Role,
		"settings": store.Document{
			"darkMode": p.Settings.DarkMode,
			"notifications": store.Document{
				"push":  p.Settings.Notifications.Push,
				"email": p.Settings.Notifications.Email,
			},
		},
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// FromDocument converts a persisted document back to a profile.
func FromDocument(doc store.Document) *shared.Profile {
	p := &shared.Profile{
		UserID:      store.String(doc, "user_id"),
		DisplayName: store.String(doc, "display_name"),
		Email:       store.String(doc, "email"),
		PhotoURL:    store.String(doc, "photo_url"),
		Role:        store.String(doc, "role"),
		CreatedAt:   store.Time(doc, "created_at"),
		UpdatedAt:   store.Time(doc, "updated_at"),
	}
	if settings := store.Map(doc, "settings"); settings != nil {
		p.Settings.DarkMode = store.Bool(settings, "darkMode")
		if notifications := store.Map(settings, "notifications"); notifications != nil {
			p.Settings.Notifications.Push = store.Bool(notifications, "push")
			p.Settings.Notifications.Email = store.Bool(notifications, "email")
		}
	}
	return p
}
