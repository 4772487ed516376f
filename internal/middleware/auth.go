package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
)

// AuthMiddleware creates a Gin middleware handler that authenticates requests.
//
// It extracts the bearer access token and resolves it to a full user through the
// token service (identity cache first, credential store on miss). The resolved user
// is stored in the request context for handlers.
func AuthMiddleware(tokenSvc portssvc.TokenSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		// Any resolution failure, wrong scope included, gets the same generic
		// rejection: protected endpoints never hint at why a token was refused.
		user, err := tokenSvc.ResolveCurrentUser(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Failed to resolve current user", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}

		ctxWithUser := context.WithValue(c.Request.Context(), currentUserKey, user)

		// Enrich the request logger so downstream log lines carry the identity.
		enrichedLogger := logger.With(slog.String("user_id", user.UserID), slog.String("username", user.Username))
		ctxWithLoggerAndUser := context.WithValue(ctxWithUser, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndUser)

		c.Next()
	}
}
