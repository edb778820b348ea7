package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
)

// RequireAdmin gates management routes to the Admin role. It must run after
// RequireSession. The check happens before any upstream fetch, so a denied
// user never triggers a list request.
func RequireAdmin(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := GetAccount(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !account.User.IsAdmin() {
			apierrors.Forbidden(c, message)
			c.Abort()
			return
		}

		c.Next()
	}
}
