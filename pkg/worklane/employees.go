package worklane

import (
	"context"
	"fmt"
	"net/http"
)

// CreateEmployee adds an employee.
func (c *Client) CreateEmployee(ctx context.Context, in EmployeeInput) error {
	return c.DoJSON(ctx, http.MethodPost, "/api/employees/add/", in, nil)
}

// ListEmployees returns every employee.
func (c *Client) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	if err := c.DoJSON(ctx, http.MethodGet, "/api/employees/all/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	var out Employee
	if err := c.DoJSON(ctx, http.MethodGet, employeePath(id), nil, &out); err != nil {
		return Employee{}, err
	}
	return out, nil
}

// UpdateEmployee replaces every writable field of the employee.
func (c *Client) UpdateEmployee(ctx context.Context, id int64, in EmployeeInput) error {
	return c.DoJSON(ctx, http.MethodPut, employeePath(id), in, nil)
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.DoJSON(ctx, http.MethodDelete, employeePath(id), nil, nil)
}

func employeePath(id int64) string {
	return fmt.Sprintf("/api/employees/%d/", id)
}
