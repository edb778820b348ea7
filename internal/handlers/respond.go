package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/services"
	"github.com/equiptrack/gateway/internal/session"
	"github.com/equiptrack/gateway/internal/store"
	"github.com/equiptrack/gateway/internal/upstream"
)

// respondServiceError is the single translation point from service and
// upstream errors to responses. Session policy lives here: a 401 from any
// call site clears the session and sends the user to login, an entitlement
// 403 sends them to pricing. Both are global, not scoped to the endpoint
// that tripped them.
func respondServiceError(c *gin.Context, err error) {
	var apiErr *upstream.APIError

	switch {
	case errors.Is(err, upstream.ErrSessionExpired):
		_ = session.Clear(c)
		apierrors.RespondWithError(c, http.StatusUnauthorized, &apierrors.APIError{
			Code:    apierrors.ErrCodeSessionExpired,
			Message: "Your session has expired. Please log in again.",
			Details: gin.H{"redirect": "/login"},
		})

	case errors.Is(err, upstream.ErrTrialExpired):
		apierrors.RespondWithError(c, http.StatusForbidden, &apierrors.APIError{
			Code:    apierrors.ErrCodeTrialExpired,
			Message: "Your trial has expired. Please subscribe to continue.",
			Details: gin.H{"redirect": "/pricing"},
		})

	case errors.Is(err, services.ErrSaveInFlight):
		apierrors.RespondWithError(c, http.StatusConflict, &apierrors.APIError{
			Code:    apierrors.ErrCodeSaveInFlight,
			Message: "Checklist save in progress, please wait",
		})

	case errors.Is(err, services.ErrUnsavedChanges):
		apierrors.RespondWithError(c, http.StatusConflict, &apierrors.APIError{
			Code:    apierrors.ErrCodeUnsavedChanges,
			Message: "You have unsaved checklist changes",
		})

	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidFrequency),
		errors.Is(err, services.ErrInvalidTime),
		errors.Is(err, services.ErrEmptyItem):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrEditorNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrWorkOrderNotFound),
		errors.Is(err, store.ErrMaintenanceTaskNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.As(err, &apiErr):
		// Backend validation/business errors pass through with their detail
		// for the notification at the call site.
		status := apiErr.StatusCode
		if status < http.StatusBadRequest || status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		apierrors.RespondWithError(c, status, &apierrors.APIError{
			Code:    apierrors.ErrCodeUpstreamError,
			Message: apiErr.Error(),
		})

	default:
		apierrors.InternalError(c, err.Error())
	}
}
