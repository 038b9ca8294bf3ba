package models

import "time"

type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ClientID    int       `json:"client_id"`
	UserID      int       `json:"user_id"`
	HourlyRate  *float64  `json:"hourly_rate,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ClientID    int      `json:"client_id"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

// UpdateProjectRequest represents the request body for updating a project.
// Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	HourlyRate  *float64 `json:"hourly_rate"`
}
