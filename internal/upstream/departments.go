package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/equiptrack/gateway/internal/models"
)

func (c *Client) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var out []models.Department
	if err := c.do(ctx, http.MethodGet, "/departments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDepartment(ctx context.Context, name string) (*models.Department, error) {
	var out models.Department
	payload := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/departments", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/departments/"+url.PathEscape(id), nil, nil)
}

// ListMachines lists machines, optionally filtered by department. This is the
// only list endpoint with a server-side filter; everything else filters in
// memory.
func (c *Client) ListMachines(ctx context.Context, departmentID string) ([]models.Machine, error) {
	path := "/machines"
	if departmentID != "" {
		path += "?department_id=" + url.QueryEscape(departmentID)
	}
	var out []models.Machine
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMachine(ctx context.Context, name, departmentID string) (*models.Machine, error) {
	var out models.Machine
	payload := map[string]string{"name": name, "department_id": departmentID}
	if err := c.do(ctx, http.MethodPost, "/machines", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMachine(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/machines/"+url.PathEscape(id), nil, nil)
}
