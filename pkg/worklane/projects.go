package worklane

import (
	"context"
	"fmt"
	"net/http"
)

func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (Project, error) {
	var out Project
	if err := c.DoJSON(ctx, http.MethodPost, "/api/projects/add/", in, &out); err != nil {
		return Project{}, err
	}
	return out, nil
}

// ListProjects returns the signed-in user's projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	if err := c.DoJSON(ctx, http.MethodGet, "/api/projects/all/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id int64) (Project, error) {
	var out Project
	if err := c.DoJSON(ctx, http.MethodGet, projectPath(id), nil, &out); err != nil {
		return Project{}, err
	}
	return out, nil
}

// UpdateProject applies a partial update and returns the stored project.
func (c *Client) UpdateProject(ctx context.Context, id int64, in ProjectInput) (Project, error) {
	var out Project
	if err := c.DoJSON(ctx, http.MethodPut, projectPath(id), in, &out); err != nil {
		return Project{}, err
	}
	return out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.DoJSON(ctx, http.MethodDelete, projectPath(id), nil, nil)
}

// AddTask creates a task under the project.
func (c *Client) AddTask(ctx context.Context, projectID int64, task Task) (Task, error) {
	var out Task
	path := fmt.Sprintf("/api/projects/%d/tasks/add/", projectID)
	if err := c.DoJSON(ctx, http.MethodPost, path, task, &out); err != nil {
		return Task{}, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, projectID, taskID int64, patch TaskPatch) (Task, error) {
	var out Task
	if err := c.DoJSON(ctx, http.MethodPut, taskPath(projectID, taskID), patch, &out); err != nil {
		return Task{}, err
	}
	return out, nil
}

func (c *Client) DeleteTask(ctx context.Context, projectID, taskID int64) error {
	return c.DoJSON(ctx, http.MethodDelete, taskPath(projectID, taskID), nil, nil)
}

func projectPath(id int64) string {
	return fmt.Sprintf("/api/projects/%d/", id)
}

func taskPath(projectID, taskID int64) string {
	return fmt.Sprintf("/api/projects/%d/tasks/%d/", projectID, taskID)
}
