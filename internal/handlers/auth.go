package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/middleware"
	"github.com/equiptrack/gateway/internal/models"
	"github.com/equiptrack/gateway/internal/session"
	"github.com/equiptrack/gateway/internal/upstream"
)

// AuthHandler bridges the login screen and the upstream auth endpoints,
// establishing the gateway session on success.
type AuthHandler struct {
	client *upstream.Client
}

func NewAuthHandler(client *upstream.Client) *AuthHandler {
	return &AuthHandler{client: client}
}

// Login authenticates upstream and stores token + user in the session.
// Invalid credentials come back as 401 with the upstream detail so the login
// form can surface it inline.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.client.Login(c.Request.Context(), upstream.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		// A 401 on login means wrong credentials, not a dead session.
		if errors.Is(err, upstream.ErrSessionExpired) {
			apierrors.RespondWithError(c, http.StatusUnauthorized, &apierrors.APIError{
				Code:    apierrors.ErrCodeInvalidCredentials,
				Message: "Incorrect username or password",
			})
			return
		}
		respondServiceError(c, err)
		return
	}

	if err := session.Establish(c, token.AccessToken, token.User); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, token.User)
}

// Register creates an account upstream and logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string          `json:"username" binding:"required,min=3,max=50"`
		Email    string          `json:"email" binding:"required,email"`
		Password string          `json:"password" binding:"required,min=6"`
		Role     models.UserRole `json:"role" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.client.Register(c.Request.Context(), upstream.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := session.Establish(c, token.AccessToken, token.User); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, token.User)
}

// Logout clears the gateway session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := session.Clear(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the session's user profile.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, account.User)
}
