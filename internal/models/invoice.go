package models

import "time"

// Invoice statuses. Transitions are user-driven: PENDING -> PAID or CANCELED.
const (
	InvoiceStatusPending  = "PENDING"
	InvoiceStatusPaid     = "PAID"
	InvoiceStatusCanceled = "CANCELED"
)

// ValidInvoiceStatus reports whether s is one of the known statuses.
func ValidInvoiceStatus(s string) bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPaid || s == InvoiceStatusCanceled
}

// Invoice is a billing document aggregating one or more work-hour entries
// into a payable amount with a status.
type Invoice struct {
	ID          int               `json:"id"`
	Number      string            `json:"number"`
	ClientID    int               `json:"client_id"`
	UserID      int               `json:"user_id"`
	Amount      float64           `json:"amount"`
	Status      string            `json:"status"`
	Description string            `json:"description,omitempty"`
	FileURL     string            `json:"file_url,omitempty"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	WorkHours   []InvoiceWorkHour `json:"work_hours"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// InvoiceWorkHour is the join record establishing which work-hour entries
// a given invoice bills. WorkHour is populated when the invoice is loaded.
type InvoiceWorkHour struct {
	ID         int       `json:"id"`
	InvoiceID  int       `json:"invoice_id"`
	WorkHourID int       `json:"work_hour_id"`
	WorkHour   *WorkHour `json:"work_hour,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// InvoiceFilter narrows an invoice listing. UserID is mandatory.
type InvoiceFilter struct {
	UserID   int
	ClientID *int
	From     *time.Time
	To       *time.Time
	Status   *string
}

// CreateInvoiceRequest represents the request body for composing an invoice
// from a selection of work-hour entries. When Amount is nil the amount is
// derived from the selected entries' hours and rates.
type CreateInvoiceRequest struct {
	ClientID    int        `json:"client_id"`
	WorkHourIDs []int      `json:"work_hour_ids"`
	Amount      *float64   `json:"amount"`
	Number      string     `json:"number"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateInvoiceRequest represents the request body for updating an invoice.
// Nil fields are left unchanged; a non-nil WorkHourIDs replaces the link set.
type UpdateInvoiceRequest struct {
	WorkHourIDs []int      `json:"work_hour_ids"`
	Amount      *float64   `json:"amount"`
	Number      *string    `json:"number"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateInvoiceStatusRequest represents the request body for a status change
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}
