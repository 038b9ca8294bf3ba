package models

import "time"

// WorkHour is one recorded instance of time worked, attributable to a
// client, an optional project, a calendar date and a duration in hours.
type WorkHour struct {
	ID          int       `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Hours       float64   `json:"hours"`
	ClientID    int       `json:"client_id"`
	ProjectID   *int      `json:"project_id,omitempty"`
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkHourFilter narrows a work-hour listing. UserID is mandatory, the
// rest is optional.
type WorkHourFilter struct {
	UserID   int
	ClientID *int
	From     *time.Time
	To       *time.Time
}

// CreateWorkHourRequest represents the request body for logging work hours
type CreateWorkHourRequest struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Hours       float64   `json:"hours"`
	ClientID    int       `json:"client_id"`
	ProjectID   *int      `json:"project_id"`
}

// UpdateWorkHourRequest represents the request body for updating a work-hour
// entry. Nil fields are left unchanged.
type UpdateWorkHourRequest struct {
	Date        *time.Time `json:"date"`
	Description *string    `json:"description"`
	Hours       *float64   `json:"hours"`
	ClientID    *int       `json:"client_id"`
	ProjectID   *int       `json:"project_id"`
}
