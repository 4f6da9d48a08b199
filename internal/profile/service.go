// File: internal/profile/service.go
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seva_backend/internal/common"
	"seva_backend/internal/shared"

	"go.uber.org/zap"
)

// ServiceImplementation implements shared.ProfileService over the repository.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

var _ shared.ProfileService = (*ServiceImplementation)(nil)

// NewService creates a new profile service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

func (s *ServiceImplementation) GetByUserID(ctx context.Context, userID string) (*shared.Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug("No profile for user", zap.String("userID", userID))
		} else {
			s.logger.Error("Error loading profile", zap.Error(err), zap.String("userID", userID))
		}
		return nil, err
	}
	return p, nil
}

func (s *ServiceImplementation) CreateWithRole(ctx context.Context, identity *shared.Identity, role string) (*shared.Profile, error) {
	if !common.IsValidRole(role) {
		return nil, common.ErrBadRequest.WithDetails(fmt.Sprintf("Unknown role %q.", role))
	}

	now := time.Now().UTC()
	p := &shared.Profile{
		UserID:      identity.UID,
		DisplayName: identity.DisplayName,
		Email:       identity.Email,
		PhotoURL:    identity.PhotoURL,
		Role:        role,
		Settings:    shared.DefaultSettings(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create profile", zap.Error(err), zap.String("userID", identity.UID))
		return nil, err
	}

	s.logger.Info("Profile created",
		zap.String("userID", p.UserID),
		zap.String("role", p.Role),
	)
	return p, nil
}

func (s *ServiceImplementation) UpdateSettings(ctx context.Context, userID string, patch shared.SettingsPatch) (*shared.Profile, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.Settings = patch.Apply(p.Settings)
	p.UpdatedAt = time.Now().UTC()

	// Full-document replace; callers update their in-memory copy only after
	// this returns without error.
	if err := s.repo.Replace(ctx, p); err != nil {
		s.logger.Error("Failed to persist settings update", zap.Error(err), zap.String("userID", userID))
		return nil, common.ErrInternalServer.WithDetails("Could not save settings.")
	}

	s.logger.Debug("Settings updated",
		zap.String("userID", userID),
		zap.Bool("darkMode", p.Settings.DarkMode),
		zap.Bool("push", p.Settings.Notifications.Push),
		zap.Bool("email", p.Settings.Notifications.Email),
	)
	return p, nil
}
