// File: internal/middleware/auth.go
package middleware

import (
	"seva_backend/internal/common"
	"seva_backend/internal/firebase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware creates a Gin middleware that verifies Firebase ID tokens
// and stores the caller's UID and email in the context.
func AuthMiddleware(fbService *firebase.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := fbService.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("ID token verification failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("The provided ID token is invalid or expired."))
			return
		}

		c.Set(common.UserIDKey, token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			c.Set(common.UserEmailKey, email)
		}

		logger.Debug("User authenticated successfully", zap.String("userID", token.UID))
		c.Next()
	}
}
