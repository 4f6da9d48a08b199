// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"seva_backend/internal/app"
	"seva_backend/internal/config"
	"seva_backend/internal/firebase"
	"seva_backend/internal/jobs"
	"seva_backend/internal/platform/elasticsearch"
	"seva_backend/internal/platform/logger"
	"seva_backend/internal/profile"
	"seva_backend/internal/reminder"
	"seva_backend/internal/session"
	"seva_backend/internal/shared"
	"seva_backend/internal/vendor"
	"seva_backend/internal/view"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		elasticsearch.NewClient,

		// Identity provider and document store
		firebase.NewService,
		provideStore,

		// Profile module
		provideProfileRepository,
		profile.NewService,
		wire.Bind(new(shared.ProfileService), new(*profile.ServiceImplementation)),

		// Vendor module
		provideVendorRepository,
		vendor.NewService,
		wire.Bind(new(vendor.Service), new(*vendor.ServiceImplementation)),

		// Reminder module
		provideReminderRepository,
		reminder.NewService,
		wire.Bind(new(reminder.Service), new(*reminder.ServiceImplementation)),

		// Session manager backs every handler's session operations
		session.NewManager,
		wire.Bind(new(profile.SessionOps), new(*session.Manager)),
		wire.Bind(new(vendor.SessionOps), new(*session.Manager)),
		wire.Bind(new(reminder.SessionOps), new(*session.Manager)),

		// Handlers
		session.NewHandler,
		profile.NewHandler,
		vendor.NewHandler,
		reminder.NewHandler,
		view.NewHandler,

		// Jobs
		jobs.NewReminderDueJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
