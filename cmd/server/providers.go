// File: cmd/server/providers.go
package main

import (
	"context"
	"fmt"

	"seva_backend/internal/config"
	"seva_backend/internal/firebase"
	"seva_backend/internal/platform/database"
	"seva_backend/internal/profile"
	"seva_backend/internal/reminder"
	"seva_backend/internal/store"
	"seva_backend/internal/vendor"

	"go.uber.org/zap"
)

// provideStore selects the document store backend from configuration and
// returns it with its teardown.
func provideStore(cfg *config.Config, fbService *firebase.Service, logger *zap.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreBackendFirestore:
		client, err := fbService.Firestore(context.Background())
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close Firestore client", zap.Error(err))
			}
		}
		return store.NewFirestoreStore(client, logger), cleanup, nil

	case config.StoreBackendSQL:
		db, err := database.NewGORM(cfg)
		if err != nil {
			return nil, nil, err
		}
		s, err := store.NewGORMStore(db)
		if err != nil {
			database.CloseGORMDB(db)
			return nil, nil, err
		}
		return s, func() { database.CloseGORMDB(db) }, nil

	case config.StoreBackendMemory:
		logger.Warn("Using the in-memory document store; all data is lost on restart.")
		return store.NewMemoryStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend: %q", cfg.StoreBackend)
	}
}

func provideProfileRepository(s store.Store, cfg *config.Config) profile.Repository {
	return profile.NewStoreRepository(s, cfg.AppID)
}

func provideVendorRepository(s store.Store, cfg *config.Config) vendor.Repository {
	return vendor.NewStoreRepository(s, cfg.AppID)
}

func provideReminderRepository(s store.Store, cfg *config.Config) reminder.Repository {
	return reminder.NewStoreRepository(s, cfg.AppID)
}
