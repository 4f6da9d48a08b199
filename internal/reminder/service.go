// File: internal/reminder/service.go
package reminder

import (
	"context"
	"errors"
	"time"

	"seva_backend/internal/store"

	"go.uber.org/zap"
)

// Service defines reminder business logic.
type Service interface {
	// LoadForUser lists the user's reminders, seeding the demo set first when
	// the collection is empty. Seeding happens at most once per user.
	LoadForUser(ctx context.Context, userID string) ([]Reminder, error)
	// Delete is idempotent; deleting an absent id is not an error.
	Delete(ctx context.Context, userID, reminderID string) error
}

// ServiceImplementation implements Service over the repository.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new reminder service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ServiceImplementation) LoadForUser(ctx context.Context, userID string) ([]Reminder, error) {
	reminders, err := s.repo.List(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list reminders", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	if len(reminders) > 0 {
		return reminders, nil
	}

	// Claim the seed marker before writing anything; a concurrent load that
	// loses the race skips seeding entirely.
	if err := s.repo.MarkSeeded(ctx, userID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			s.logger.Debug("Reminder collection already seeded, re-reading", zap.String("userID", userID))
			return s.repo.List(ctx, userID)
		}
		s.logger.Error("Failed to claim seed marker", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}

	now := s.now().UTC()
	for _, demo := range DemoReminders(now) {
		rem := demo
		if _, err := s.repo.Add(ctx, userID, &rem); err != nil {
			s.logger.Error("Failed to write demo reminder", zap.Error(err),
				zap.String("userID", userID), zap.String("service", rem.ServiceName))
			return nil, err
		}
	}
	s.logger.Info("Seeded demo reminders", zap.String("userID", userID))

	// Re-read so generated ids are known to the caller.
	return s.repo.List(ctx, userID)
}

func (s *ServiceImplementation) Delete(ctx context.Context, userID, reminderID string) error {
	if err := s.repo.Delete(ctx, userID, reminderID); err != nil {
		s.logger.Error("Failed to delete reminder", zap.Error(err),
			zap.String("userID", userID), zap.String("reminderID", reminderID))
		return err
	}
	s.logger.Info("Reminder deleted", zap.String("userID", userID), zap.String("reminderID", reminderID))
	return nil
}
