package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/equiptrack/gateway/internal/models"
)

func (c *Client) SubscriptionStatus(ctx context.Context) (*models.SubscriptionStatus, error) {
	var out models.SubscriptionStatus
	if err := c.do(ctx, http.MethodGet, "/subscription/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPackages(ctx context.Context) ([]models.Package, error) {
	var out []models.Package
	if err := c.do(ctx, http.MethodGet, "/payments/packages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCheckout starts a checkout session with the payment provider. The
// origin URL is where the provider sends the user back after payment.
func (c *Client) CreateCheckout(ctx context.Context, packageID, originURL string) (*models.CheckoutSession, error) {
	var out models.CheckoutSession
	payload := map[string]string{
		"package_id": packageID,
		"origin_url": originURL,
	}
	if err := c.do(ctx, http.MethodPost, "/payments/create-checkout", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PaymentStatus(ctx context.Context, sessionID string) (*models.PaymentStatus, error) {
	var out models.PaymentStatus
	if err := c.do(ctx, http.MethodGet, "/payments/status/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
