package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/equiptrack/gateway/internal/middleware"
	"github.com/equiptrack/gateway/internal/upstream"
)

// authedClient binds the base upstream client to the request's session
// token. RequireSession guarantees an account is present on protected
// routes; on the off chance it is not, the unauthenticated client lets the
// upstream reject the call.
func authedClient(c *gin.Context, base *upstream.Client) *upstream.Client {
	if account, ok := middleware.GetAccount(c); ok {
		return base.WithToken(account.Token)
	}
	return base
}
