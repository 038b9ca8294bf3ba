package repositories

import (
	"context"
	"errors"

	"timetrack-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AddressRepository struct {
	DB *pgxpool.Pool
}

func NewAddressRepository(db *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{DB: db}
}

// Create inserts an address. When the new address is primary, any existing
// primary of the same client is demoted in the same transaction so at most
// one primary exists per client at any time.
func (r *AddressRepository) Create(ctx context.Context, a *models.Address) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if a.IsPrimary {
		if _, err := tx.Exec(ctx,
			`UPDATE addresses SET is_primary = FALSE, updated_at = NOW()
			 WHERE client_id = $1 AND is_primary`, a.ClientID); err != nil {
			return err
		}
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO addresses(client_id, street, city, postal_code, country, is_primary)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		a.ClientID, a.Street, a.City, a.PostalCode, a.Country, a.IsPrimary,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *AddressRepository) ListByClient(ctx context.Context, clientID int) ([]models.Address, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, client_id, street, city, postal_code, country, is_primary, created_at, updated_at
		 FROM addresses WHERE client_id = $1 ORDER BY created_at`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := make([]models.Address, 0)
	for rows.Next() {
		var a models.Address
		if err := rows.Scan(&a.ID, &a.ClientID, &a.Street, &a.City, &a.PostalCode, &a.Country, &a.IsPrimary, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

// SetPrimary makes the given address the client's single primary address.
func (r *AddressRepository) SetPrimary(ctx context.Context, clientID, addressID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE addresses SET is_primary = FALSE, updated_at = NOW()
		 WHERE client_id = $1 AND is_primary`, clientID); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE addresses SET is_primary = TRUE, updated_at = NOW()
		 WHERE id = $1 AND client_id = $2`, addressID, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *AddressRepository) Get(ctx context.Context, id int) (*models.Address, error) {
	a := &models.Address{}
	err := r.DB.QueryRow(ctx,
		`SELECT id, client_id, street, city, postal_code, country, is_primary, created_at, updated_at
		 FROM addresses WHERE id = $1`, id,
	).Scan(&a.ID, &a.ClientID, &a.Street, &a.City, &a.PostalCode, &a.Country, &a.IsPrimary, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AddressRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
