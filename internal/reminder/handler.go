// File: internal/reminder/handler.go
package reminder

import (
	"context"

	"seva_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionOps are the reminder operations the session manager exposes to this
// handler.
type SessionOps interface {
	ListReminders(ctx context.Context, userID string) ([]Reminder, error)
	DeleteReminder(ctx context.Context, userID, reminderID string) error
}

// Handler holds dependencies for reminder handlers.
type Handler struct {
	sessions SessionOps
	logger   *zap.Logger
}

// NewHandler creates a new reminder handler.
func NewHandler(sessions SessionOps, logger *zap.Logger) *Handler {
	return &Handler{sessions: sessions, logger: logger}
}

// RegisterRoutes sets up the routes for reminder operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	reminderGroup := router.Group("/reminders", authMW)
	{
		reminderGroup.GET("", h.list)
		reminderGroup.DELETE("/:id", h.delete)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	reminders, err := h.sessions.ListReminders(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Reminders retrieved successfully.", reminders)
}

func (h *Handler) delete(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	reminderID := c.Param("id")
	if reminderID == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Reminder id is required."))
		return
	}
	if err := h.sessions.DeleteReminder(c.Request.Context(), userID, reminderID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
