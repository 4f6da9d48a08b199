// File: internal/view/handler.go
package view

import (
	"seva_backend/internal/common"
	"seva_backend/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler resolves view names against the caller's session.
type Handler struct {
	manager *session.Manager
}

// NewHandler creates a new view handler.
func NewHandler(manager *session.Manager) *Handler {
	return &Handler{manager: manager}
}

// RegisterRoutes sets up the view resolution route.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("/views/:name", authMW, h.resolve)
}

func (h *Handler) resolve(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	snap := h.manager.Current(userID)
	screen := Resolve(snap, c.Param("name"))
	common.RespondOK(c, "View resolved.", screen)
}
