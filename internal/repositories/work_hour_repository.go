package repositories

import (
	"context"
	"errors"
	"fmt"

	"timetrack-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkHourRepository struct {
	DB *pgxpool.Pool
}

func NewWorkHourRepository(db *pgxpool.Pool) *WorkHourRepository {
	return &WorkHourRepository{DB: db}
}

const workHourColumns = `id, date, description, hours, client_id, project_id, user_id, created_at, updated_at`

func scanWorkHour(row pgx.Row, wh *models.WorkHour) error {
	return row.Scan(&wh.ID, &wh.Date, &wh.Description, &wh.Hours, &wh.ClientID, &wh.ProjectID, &wh.UserID, &wh.CreatedAt, &wh.UpdatedAt)
}

func (r *WorkHourRepository) Create(ctx context.Context, wh *models.WorkHour) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO work_hours(date, description, hours, client_id, project_id, user_id)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		wh.Date, wh.Description, wh.Hours, wh.ClientID, wh.ProjectID, wh.UserID,
	).Scan(&wh.ID, &wh.CreatedAt, &wh.UpdatedAt)
}

func (r *WorkHourRepository) Get(ctx context.Context, id int) (*models.WorkHour, error) {
	wh := &models.WorkHour{}
	err := scanWorkHour(r.DB.QueryRow(ctx,
		`SELECT `+workHourColumns+` FROM work_hours WHERE id = $1`, id), wh)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wh, nil
}

// ListByIDs fetches the given entries in one query. Missing IDs are simply
// absent from the result; callers decide whether that is an error.
func (r *WorkHourRepository) ListByIDs(ctx context.Context, ids []int) ([]models.WorkHour, error) {
	if len(ids) == 0 {
		return []models.WorkHour{}, nil
	}
	rows, err := r.DB.Query(ctx,
		`SELECT `+workHourColumns+` FROM work_hours WHERE id = ANY($1) ORDER BY date`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWorkHours(rows)
}

// List returns the user's entries narrowed by the optional filter fields,
// ordered by work date.
func (r *WorkHourRepository) List(ctx context.Context, f models.WorkHourFilter) ([]models.WorkHour, error) {
	query := `SELECT ` + workHourColumns + ` FROM work_hours WHERE user_id = $1`
	args := []interface{}{f.UserID}

	if f.ClientID != nil {
		args = append(args, *f.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWorkHours(rows)
}

// ListRecent returns the most recently logged entries, newest first.
func (r *WorkHourRepository) ListRecent(ctx context.Context, userID, limit int) ([]models.WorkHour, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+workHourColumns+` FROM work_hours
		 WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWorkHours(rows)
}

func collectWorkHours(rows pgx.Rows) ([]models.WorkHour, error) {
	entries := make([]models.WorkHour, 0)
	for rows.Next() {
		var wh models.WorkHour
		if err := scanWorkHour(rows, &wh); err != nil {
			return nil, err
		}
		entries = append(entries, wh)
	}
	return entries, rows.Err()
}

func (r *WorkHourRepository) Update(ctx context.Context, wh *models.WorkHour) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE work_hours
		 SET date = $1, description = $2, hours = $3, client_id = $4, project_id = $5, updated_at = NOW()
		 WHERE id = $6`,
		wh.Date, wh.Description, wh.Hours, wh.ClientID, wh.ProjectID, wh.ID)
	return err
}

// DeleteWithLinks removes the entry and any invoice links pointing at it in
// one transaction, so a link row can never outlive its work hour. The caller
// is responsible for rejecting deletion while an active invoice bills the
// entry.
func (r *WorkHourRepository) DeleteWithLinks(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_work_hours WHERE work_hour_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM work_hours WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}
