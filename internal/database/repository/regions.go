package repository

import (
	"context"
	"database/sql"
)

// RegionRepo handles the regions and region_territories tables.
type RegionRepo struct {
	db *sql.DB
}

func NewRegionRepo(db *sql.DB) *RegionRepo {
	return &RegionRepo{db: db}
}

func (r *RegionRepo) List(ctx context.Context) ([]Region, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, color, sales_person_id, position FROM regions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Region
	for rows.Next() {
		var reg Region
		if err := rows.Scan(&reg.Name, &reg.Color, &reg.SalesPersonID, &reg.Position); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		territories, err := r.territoriesFor(ctx, out[i].Name)
		if err != nil {
			return nil, err
		}
		out[i].Territories = territories
	}
	return out, nil
}

func (r *RegionRepo) territoriesFor(ctx context.Context, name string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT territory FROM region_territories WHERE region_name = ? ORDER BY territory`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the stored collection inside the caller's transaction.
func (r *RegionRepo) ReplaceAll(ctx context.Context, tx *sql.Tx, regions []Region) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM region_territories`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM regions`); err != nil {
		return err
	}
	for _, reg := range regions {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO regions(name, color, sales_person_id, position)
		VALUES (?, ?, ?, ?);
		`, reg.Name, reg.Color, reg.SalesPersonID, reg.Position)
		if err != nil {
			return err
		}
		for _, t := range reg.Territories {
			_, err := tx.ExecContext(ctx, `
			INSERT INTO region_territories(region_name, territory)
			VALUES (?, ?);
			`, reg.Name, t)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
