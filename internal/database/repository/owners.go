package repository

import (
	"context"
	"database/sql"
)

// OwnerRepo handles the sales_people table.
type OwnerRepo struct {
	db *sql.DB
}

func NewOwnerRepo(db *sql.DB) *OwnerRepo {
	return &OwnerRepo{db: db}
}

func (r *OwnerRepo) List(ctx context.Context) ([]SalesPerson, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, first_name, last_name, email, phone, position FROM sales_people ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SalesPerson
	for rows.Next() {
		var sp SalesPerson
		if err := rows.Scan(&sp.ID, &sp.FirstName, &sp.LastName, &sp.Email, &sp.Phone, &sp.Position); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the stored collection inside the caller's transaction.
func (r *OwnerRepo) ReplaceAll(ctx context.Context, tx *sql.Tx, people []SalesPerson) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM sales_people`); err != nil {
		return err
	}
	for _, sp := range people {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO sales_people(id, first_name, last_name, email, phone, position)
		VALUES (?, ?, ?, ?, ?, ?);
		`, sp.ID, sp.FirstName, sp.LastName, sp.Email, sp.Phone, sp.Position)
		if err != nil {
			return err
		}
	}
	return nil
}
