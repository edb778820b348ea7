package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/equiptrack/gateway/internal/models"
)

func (c *Client) ListWorkOrders(ctx context.Context) ([]models.WorkOrder, error) {
	var out []models.WorkOrder
	if err := c.do(ctx, http.MethodGet, "/work-orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetWorkOrder(ctx context.Context, id string) (*models.WorkOrder, error) {
	var out models.WorkOrder
	if err := c.do(ctx, http.MethodGet, "/work-orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateWorkOrder(ctx context.Context, create models.WorkOrderCreate) (*models.WorkOrder, error) {
	var out models.WorkOrder
	if err := c.do(ctx, http.MethodPost, "/work-orders", create, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWorkOrder issues a partial update. Only the keys present in fields are
// sent, so callers control exactly which columns change (a kanban drop sends
// just {"status": ...}, a checklist save just {"checklist": ...}).
func (c *Client) UpdateWorkOrder(ctx context.Context, id string, fields map[string]interface{}) (*models.WorkOrder, error) {
	var out models.WorkOrder
	if err := c.do(ctx, http.MethodPut, "/work-orders/"+url.PathEscape(id), fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteWorkOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/work-orders/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
