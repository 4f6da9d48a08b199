// File: internal/session/handler.go
package session

import (
	"errors"

	"seva_backend/internal/common"
	"seva_backend/internal/firebase"
	"seva_backend/internal/profile"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler holds dependencies for session lifecycle handlers.
type Handler struct {
	manager  *Manager
	firebase *firebase.Service
	logger   *zap.Logger
}

// NewHandler creates a new session handler.
func NewHandler(manager *Manager, fbService *firebase.Service, logger *zap.Logger) *Handler {
	return &Handler{manager: manager, firebase: fbService, logger: logger}
}

// RegisterRoutes sets up the routes for session lifecycle operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	sessionGroup := router.Group("/session", authMW)
	{
		sessionGroup.POST("", h.begin)
		sessionGroup.GET("", h.current)
		sessionGroup.POST("/role", h.selectRole)
		sessionGroup.DELETE("", h.signOut)
	}
}

// begin resolves the caller's identity from their verified token and runs the
// sign-in transition. Repeating the call replaces any existing session.
func (h *Handler) begin(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	identity, err := h.firebase.GetIdentity(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to resolve identity for session", zap.Error(err), zap.String("userID", userID))
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("The authenticated identity could not be resolved."))
		return
	}

	snap, err := h.manager.Begin(c.Request.Context(), identity)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Session established.", snap)
}

func (h *Handler) current(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	common.RespondOK(c, "Session retrieved.", h.manager.Current(userID))
}

func (h *Handler) selectRole(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	var req profile.SelectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	snap, err := h.manager.SelectRole(c.Request.Context(), userID, req.Role)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Role selected.", snap)
}

// signOut revokes the user's refresh tokens and tears the session down. The
// teardown half is idempotent, so a failed revocation after a prior sign-out
// still resolves to an unauthenticated snapshot.
func (h *Handler) signOut(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == "" {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	if err := h.firebase.RevokeRefreshTokens(c.Request.Context(), userID); err != nil {
		h.logger.Warn("Failed to revoke refresh tokens during sign-out", zap.Error(err), zap.String("userID", userID))
	}

	snap := h.manager.SignOut(userID)
	common.RespondOK(c, "Signed out.", snap)
}
