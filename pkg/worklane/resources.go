package worklane

import "time"

// Employee is a team member record.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Bio        string `json:"bio"`

	// CreatedAt is a calendar date (YYYY-MM-DD).
	CreatedAt string `json:"created_at,omitempty"`
}

// EmployeeInput is the writable subset of Employee.
type EmployeeInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Bio        string `json:"bio,omitempty"`
}

// Task belongs to exactly one project.
type Task struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	IsCompleted bool   `json:"is_completed"`
}

// TaskPatch is a partial task update; nil fields are left unchanged.
type TaskPatch struct {
	Name        *string `json:"name,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// Project groups tasks and assigned employees. Progress is the percentage of
// completed tasks, computed by the backend.
type Project struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Deadline      string     `json:"deadline"`
	Employees     []Employee `json:"employees"`
	Tasks         []Task     `json:"tasks"`
	Progress      int        `json:"progress"`
	GitHubRepoURL string     `json:"github_repo_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ProjectInput creates or updates a project. On update, nil EmployeeIDs or
// Tasks leave the current assignment untouched; a non-nil Tasks replaces
// every task.
type ProjectInput struct {
	Name          string  `json:"name,omitempty"`
	Deadline      string  `json:"deadline,omitempty"`
	EmployeeIDs   []int64 `json:"employee_ids,omitempty"`
	Tasks         []Task  `json:"tasks,omitempty"`
	GitHubRepoURL string  `json:"github_repo_url,omitempty"`
}

// Poster is a generated marketing image. Image is the URL of the stored file.
type Poster struct {
	ID        int64     `json:"id"`
	Prompt    string    `json:"prompt"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardData is the summary shown on the home page.
type DashboardData struct {
	Counts      DashboardCounts     `json:"counts"`
	Projects    []DashboardProject  `json:"projects"`
	Deadlines   []DashboardDeadline `json:"deadlines"`
	Team        []DashboardMember   `json:"team"`
	StatusStats []StatusStat        `json:"statusStats"`
}

type DashboardCounts struct {
	Employees int `json:"employees"`
	Projects  int `json:"projects"`
	Tasks     int `json:"tasks"`
	Posters   int `json:"posters"`
}

type DashboardProject struct {
	Title    string `json:"title"`
	Deadline string `json:"deadline,omitempty"`
	Progress int    `json:"progress"`
}

// DashboardDeadline Status is "overdue" or "upcoming".
type DashboardDeadline struct {
	Project string `json:"project"`
	Due     string `json:"due"`
	Status  string `json:"status"`
}

type DashboardMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// StatusStat Label is one of "Ongoing", "Completed", "Pending".
type StatusStat struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
