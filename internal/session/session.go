// Package session keeps the upstream bearer token and user profile in the
// gateway session. It is the single place that reads or writes them; handlers
// and middleware go through Establish/Current/Clear rather than touching the
// cookie store directly.
package session

import (
	"encoding/json"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/equiptrack/gateway/internal/constants"
	"github.com/equiptrack/gateway/internal/models"
)

// Account is the authenticated state attached to a gateway session.
type Account struct {
	Token string
	User  models.User
}

// Establish stores the bearer token and user profile after a successful login
// or registration.
func Establish(c *gin.Context, token string, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s := sessions.Default(c)
	s.Set(constants.SessionKeyToken, token)
	s.Set(constants.SessionKeyUser, string(payload))
	return s.Save()
}

// Current returns the session account. A token whose JWT expiry has already
// passed is treated as absent, so a dead session never issues an upstream
// call that is guaranteed to 401.
func Current(c *gin.Context) (*Account, bool) {
	s := sessions.Default(c)

	token, ok := s.Get(constants.SessionKeyToken).(string)
	if !ok || token == "" {
		return nil, false
	}
	raw, ok := s.Get(constants.SessionKeyUser).(string)
	if !ok || raw == "" {
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}

	if tokenExpired(token) {
		return nil, false
	}

	return &Account{Token: token, User: user}, true
}

// Clear removes the stored token and user. Called on logout and on any 401.
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

// tokenExpired inspects the token's registered claims without verifying the
// signature; verification is the upstream's job, the gateway only wants the
// expiry. Tokens that cannot be parsed are passed through and left for the
// upstream to reject.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(nowFunc())
}

// nowFunc is replaceable in tests.
var nowFunc = defaultNow
