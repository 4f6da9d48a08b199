// File: internal/profile/handler.go
package profile

import (
	"context"
	"errors"

	"seva_backend/internal/common"
	"seva_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SessionOps are the profile operations the session manager exposes to this
// handler. Reads come from the session cache when one is active; settings
// writes go through the merge-then-replace contract and refresh the cache.
type SessionOps interface {
	GetProfile(ctx context.Context, userID string) (*shared.Profile, error)
	UpdateSettings(ctx context.Context, userID string, patch shared.SettingsPatch) (*shared.Profile, error)
}

// Handler holds dependencies for profile handlers.
type Handler struct {
	sessions SessionOps
	logger   *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(sessions SessionOps, logger *zap.Logger) *Handler {
	return &Handler{sessions: sessions, logger: logger}
}

// RegisterRoutes sets up the routes for profile operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	profileGroup := router.Group("/profile", authMW)
	{
		profileGroup.GET("/me", h.getMe)
		profileGroup.PATCH("/settings", h.updateSettings)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}
	p, err := h.sessions.GetProfile(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile retrieved successfully.", p)
}

func (h *Handler) updateSettings(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Settings update: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	p, err := h.sessions.UpdateSettings(c.Request.Context(), userID, req.ToPatch())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Settings updated successfully.", p)
}
