package repositories

import (
	"context"
	"errors"
	"fmt"

	"timetrack-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// NextNumber draws the next invoice number from the database sequence.
func (r *InvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	var next int
	if err := r.DB.QueryRow(ctx, "SELECT nextval('invoice_number_sequence')").Scan(&next); err != nil {
		return "", fmt.Errorf("failed to get next invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", next), nil
}

// CreateWithLinks inserts the invoice row and one link row per selected
// work-hour entry inside a single transaction. Either the invoice and all of
// its links exist afterwards, or none of them do.
func (r *InvoiceRepository) CreateWithLinks(ctx context.Context, inv *models.Invoice, workHourIDs []int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if inv.Number == "" {
		number, err := r.NextNumber(ctx)
		if err != nil {
			return err
		}
		inv.Number = number
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(number, client_id, user_id, amount, status, description, due_date)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		inv.Number, inv.ClientID, inv.UserID, inv.Amount, inv.Status, inv.Description, inv.DueDate,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return err
	}

	for _, workHourID := range workHourIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO invoice_work_hours(invoice_id, work_hour_id) VALUES($1, $2)`,
			inv.ID, workHourID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ReplaceLinks swaps the invoice's link set for workHourIDs and stores the
// recomputed amount, atomically.
func (r *InvoiceRepository) ReplaceLinks(ctx context.Context, invoiceID int, workHourIDs []int, amount float64) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_work_hours WHERE invoice_id = $1`, invoiceID); err != nil {
		return err
	}
	for _, workHourID := range workHourIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO invoice_work_hours(invoice_id, work_hour_id) VALUES($1, $2)`,
			invoiceID, workHourID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx,
		`UPDATE invoices SET amount = $1, updated_at = NOW() WHERE id = $2`,
		amount, invoiceID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, number, client_id, user_id, amount, status, description, file_url, due_date, created_at, updated_at
		 FROM invoices WHERE id = $1`, id,
	).Scan(&inv.ID, &inv.Number, &inv.ClientID, &inv.UserID, &inv.Amount, &inv.Status,
		&inv.Description, &inv.FileURL, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	links, err := r.loadLinks(ctx, []int{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.WorkHours = links[inv.ID]
	return inv, nil
}

// List returns the user's invoices narrowed by the optional filter fields,
// each pre-joined with its linked work-hour entries.
func (r *InvoiceRepository) List(ctx context.Context, f models.InvoiceFilter) ([]models.Invoice, error) {
	query := `SELECT id, number, client_id, user_id, amount, status, description, file_url, due_date, created_at, updated_at
		 FROM invoices WHERE user_id = $1`
	args := []interface{}{f.UserID}

	if f.ClientID != nil {
		args = append(args, *f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices, err := collectInvoices(rows)
	if err != nil {
		return nil, err
	}
	return r.attachLinks(ctx, invoices)
}

// ListRecent returns the most recently created invoices, newest first,
// pre-joined with their work hours.
func (r *InvoiceRepository) ListRecent(ctx context.Context, userID, limit int) ([]models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, number, client_id, user_id, amount, status, description, file_url, due_date, created_at, updated_at
		 FROM invoices WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices, err := collectInvoices(rows)
	if err != nil {
		return nil, err
	}
	return r.attachLinks(ctx, invoices)
}

func collectInvoices(rows pgx.Rows) ([]models.Invoice, error) {
	invoices := make([]models.Invoice, 0)
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.ClientID, &inv.UserID, &inv.Amount, &inv.Status,
			&inv.Description, &inv.FileURL, &inv.DueDate, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) attachLinks(ctx context.Context, invoices []models.Invoice) ([]models.Invoice, error) {
	if len(invoices) == 0 {
		return invoices, nil
	}
	ids := make([]int, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].ID
	}
	links, err := r.loadLinks(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].WorkHours = links[invoices[i].ID]
	}
	return invoices, nil
}

func (r *InvoiceRepository) loadLinks(ctx context.Context, invoiceIDs []int) (map[int][]models.InvoiceWorkHour, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT l.id, l.invoice_id, l.work_hour_id, l.created_at,
		        w.id, w.date, w.description, w.hours, w.client_id, w.project_id, w.user_id, w.created_at, w.updated_at
		 FROM invoice_work_hours l
		 JOIN work_hours w ON w.id = l.work_hour_id
		 WHERE l.invoice_id = ANY($1)
		 ORDER BY w.date`, invoiceIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make(map[int][]models.InvoiceWorkHour)
	for rows.Next() {
		var link models.InvoiceWorkHour
		wh := &models.WorkHour{}
		if err := rows.Scan(&link.ID, &link.InvoiceID, &link.WorkHourID, &link.CreatedAt,
			&wh.ID, &wh.Date, &wh.Description, &wh.Hours, &wh.ClientID, &wh.ProjectID, &wh.UserID, &wh.CreatedAt, &wh.UpdatedAt); err != nil {
			return nil, err
		}
		link.WorkHour = wh
		links[link.InvoiceID] = append(links[link.InvoiceID], link)
	}
	return links, rows.Err()
}

// ActiveLinkedInvoices reports which of the given work-hour entries are
// already billed by an invoice whose status is not CANCELED. The result maps
// work-hour ID to the billing invoice's ID. Links owned by excludeInvoiceID
// are ignored so an invoice update does not collide with itself; pass 0 when
// creating.
func (r *InvoiceRepository) ActiveLinkedInvoices(ctx context.Context, workHourIDs []int, excludeInvoiceID int) (map[int]int, error) {
	if len(workHourIDs) == 0 {
		return map[int]int{}, nil
	}
	rows, err := r.DB.Query(ctx,
		`SELECT l.work_hour_id, l.invoice_id
		 FROM invoice_work_hours l
		 JOIN invoices i ON i.id = l.invoice_id
		 WHERE l.work_hour_id = ANY($1) AND i.status <> $2 AND l.invoice_id <> $3`,
		workHourIDs, models.InvoiceStatusCanceled, excludeInvoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	linked := make(map[int]int)
	for rows.Next() {
		var workHourID, invoiceID int
		if err := rows.Scan(&workHourID, &invoiceID); err != nil {
			return nil, err
		}
		linked[workHourID] = invoiceID
	}
	return linked, rows.Err()
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE invoices
		 SET number = $1, amount = $2, status = $3, description = $4, due_date = $5, updated_at = NOW()
		 WHERE id = $6`,
		inv.Number, inv.Amount, inv.Status, inv.Description, inv.DueDate, inv.ID)
	return err
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) SetFileURL(ctx context.Context, id int, fileURL string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET file_url = $1, updated_at = NOW() WHERE id = $2`, fileURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWithLinks removes the invoice and its link rows in one transaction.
func (r *InvoiceRepository) DeleteWithLinks(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_work_hours WHERE invoice_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
