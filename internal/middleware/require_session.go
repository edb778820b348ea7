package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/session"
)

const ContextKeyAccount = "account"

// RequireSession ensures the request carries an authenticated gateway
// session. Unauthenticated requests are told to navigate to the login screen.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := session.Current(c)
		if !ok {
			apierrors.RespondWithError(c, 401, &apierrors.APIError{
				Code:    apierrors.ErrCodeUnauthorized,
				Message: "Authentication required",
				Details: gin.H{"redirect": "/login"},
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyAccount, account)
		c.Next()
	}
}

// GetAccount retrieves the session account placed by RequireSession.
func GetAccount(c *gin.Context) (*session.Account, bool) {
	v, exists := c.Get(ContextKeyAccount)
	if !exists {
		return nil, false
	}
	account, ok := v.(*session.Account)
	return account, ok
}
