package services

import (
	"context"

	"timetrack-backend/internal/models"
)

// The services consume the data-access layer through these interfaces. The
// pgx repositories satisfy them in production; tests substitute in-memory
// fakes. Lifecycle of the underlying pool belongs to the composition root.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	Get(ctx context.Context, id int) (*models.Client, error)
	List(ctx context.Context, userID int) ([]models.Client, error)
	ListRecent(ctx context.Context, userID, limit int) ([]models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id int) error
}

type AddressStore interface {
	Create(ctx context.Context, a *models.Address) error
	Get(ctx context.Context, id int) (*models.Address, error)
	ListByClient(ctx context.Context, clientID int) ([]models.Address, error)
	SetPrimary(ctx context.Context, clientID, addressID int) error
	Delete(ctx context.Context, id int) error
}

type ProjectStore interface {
	Create(ctx context.Context, p *models.Project) error
	Get(ctx context.Context, id int) (*models.Project, error)
	List(ctx context.Context, userID int) ([]models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	Delete(ctx context.Context, id int) error
}

type WorkHourStore interface {
	Create(ctx context.Context, wh *models.WorkHour) error
	Get(ctx context.Context, id int) (*models.WorkHour, error)
	ListByIDs(ctx context.Context, ids []int) ([]models.WorkHour, error)
	List(ctx context.Context, f models.WorkHourFilter) ([]models.WorkHour, error)
	ListRecent(ctx context.Context, userID, limit int) ([]models.WorkHour, error)
	Update(ctx context.Context, wh *models.WorkHour) error
	DeleteWithLinks(ctx context.Context, id int) error
}

type InvoiceStore interface {
	CreateWithLinks(ctx context.Context, inv *models.Invoice, workHourIDs []int) error
	ReplaceLinks(ctx context.Context, invoiceID int, workHourIDs []int, amount float64) error
	Get(ctx context.Context, id int) (*models.Invoice, error)
	List(ctx context.Context, f models.InvoiceFilter) ([]models.Invoice, error)
	ListRecent(ctx context.Context, userID, limit int) ([]models.Invoice, error)
	ActiveLinkedInvoices(ctx context.Context, workHourIDs []int, excludeInvoiceID int) (map[int]int, error)
	Update(ctx context.Context, inv *models.Invoice) error
	UpdateStatus(ctx context.Context, id int, status string) error
	SetFileURL(ctx context.Context, id int, fileURL string) error
	DeleteWithLinks(ctx context.Context, id int) error
}
