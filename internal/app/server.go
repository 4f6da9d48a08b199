// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"seva_backend/internal/config"
	"seva_backend/internal/firebase"
	"seva_backend/internal/jobs"
	"seva_backend/internal/middleware"
	platformES "seva_backend/internal/platform/elasticsearch"
	"seva_backend/internal/profile"
	"seva_backend/internal/reminder"
	"seva_backend/internal/session"
	"seva_backend/internal/vendor"
	"seva_backend/internal/view"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	sessionHandler  *session.Handler
	profileHandler  *profile.Handler
	vendorHandler   *vendor.Handler
	reminderHandler *reminder.Handler
	viewHandler     *view.Handler

	// Jobs
	reminderDueJob *jobs.ReminderDueJob

	authMW gin.HandlerFunc

	sessionUnsub func()

	// Exposed for startup tasks such as search index creation.
	ESClient  *platformES.ESClientWrapper
	AppLogger *zap.Logger
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessionHandler *session.Handler,
	profileHandler *profile.Handler,
	vendorHandler *vendor.Handler,
	reminderHandler *reminder.Handler,
	viewHandler *view.Handler,
	reminderDueJob *jobs.ReminderDueJob,
	firebaseService *firebase.Service,
	sessionManager *session.Manager,
	esClient *platformES.ESClientWrapper,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	transitionLogger := logger.Named("SessionTransitions")
	sessionUnsub := sessionManager.Subscribe(func(userID string, snap session.Snapshot) {
		transitionLogger.Debug("Session transition",
			zap.String("userID", userID),
			zap.String("state", string(snap.State)),
			zap.Uint64("epoch", snap.Epoch),
		)
	})

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(firebaseService, logger.Named("AuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Seva API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	sessionHandler.RegisterRoutes(v1, authMW)
	profileHandler.RegisterRoutes(v1, authMW)
	vendorHandler.RegisterRoutes(v1, authMW)
	reminderHandler.RegisterRoutes(v1, authMW)
	viewHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:      httpServer,
		router:          router,
		cfg:             cfg,
		logger:          logger,
		sessionHandler:  sessionHandler,
		profileHandler:  profileHandler,
		vendorHandler:   vendorHandler,
		reminderHandler: reminderHandler,
		viewHandler:     viewHandler,
		reminderDueJob:  reminderDueJob,
		authMW:          authMW,
		sessionUnsub:    sessionUnsub,
		ESClient:        esClient,
		AppLogger:       logger,
	}, nil
}

func (s *Server) Start() error {
	if s.reminderDueJob != nil {
		if err := s.reminderDueJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start reminder due job", zap.Error(err))
		}
	} else {
		s.logger.Info("Reminder due job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.reminderDueJob != nil {
		s.reminderDueJob.Stop()
	}
	if s.sessionUnsub != nil {
		s.sessionUnsub()
	}
	return s.httpServer.Shutdown(ctx)
}
