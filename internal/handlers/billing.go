package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/equiptrack/gateway/internal/errors"
	"github.com/equiptrack/gateway/internal/upstream"
)

// BillingHandler proxies the subscription surface: trial status, package
// listing, checkout creation, and checkout polling.
type BillingHandler struct {
	client *upstream.Client
}

func NewBillingHandler(client *upstream.Client) *BillingHandler {
	return &BillingHandler{client: client}
}

func (h *BillingHandler) GetSubscriptionStatus(c *gin.Context) {
	client := authedClient(c, h.client)
	status, err := client.SubscriptionStatus(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *BillingHandler) ListPackages(c *gin.Context) {
	client := authedClient(c, h.client)
	packages, err := client.ListPackages(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, packages)
}

type createCheckoutRequest struct {
	PackageID string `json:"package_id" binding:"required"`
	OriginURL string `json:"origin_url" binding:"required"`
}

// CreateCheckout opens a payment session for a package. The origin URL is
// where the payment provider sends the user back afterwards.
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client := authedClient(c, h.client)
	session, err := client.CreateCheckout(c.Request.Context(), req.PackageID, req.OriginURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *BillingHandler) GetPaymentStatus(c *gin.Context) {
	client := authedClient(c, h.client)
	status, err := client.PaymentStatus(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
