package models

import "time"

type Client struct {
	ID        int       `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company"`
	UserID    int       `json:"user_id"`
	Addresses []Address `json:"addresses,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the contact name when set, otherwise the company name.
func (c *Client) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Company
}

// CreateClientRequest represents the request body for creating a client
type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// UpdateClientRequest represents the request body for updating a client.
// Nil fields are left unchanged.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}
