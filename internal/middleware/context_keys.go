package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/vkravets/contacts_api/internal/core/domain"
)

// currentUserKey is the key used to store the resolved authenticated user.
const currentUserKey = contextKey("currentUser")

// GetCurrentUserFromContext retrieves the authenticated user resolved by
// AuthMiddleware. It returns the user and a boolean indicating if it was found.
func GetCurrentUserFromContext(c *gin.Context) (*domain.User, bool) {
	val := c.Request.Context().Value(currentUserKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	if !ok {
		return nil, false
	}
	return user, true
}
