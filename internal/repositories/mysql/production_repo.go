// internal/repositories/mysql/production_repo.go
// Repo produksi bulanan per sumur. Query hanya memakai placeholder "?" sehingga
// bisa jalan di MySQL maupun SQLite.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"well-dashboard/internal/datasource"
)

// Schema minimal; EnsureSchema dipakai untuk SQLite lokal dan test.
const Schema = `
CREATE TABLE IF NOT EXISTS wells (
	position  INTEGER NOT NULL,
	well_name VARCHAR(128) NOT NULL PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS monthly_production (
	well_name VARCHAR(128) NOT NULL,
	prod_date VARCHAR(32) NOT NULL,
	oil_rate  DOUBLE,
	wat_rate  DOUBLE,
	oil_cum   DOUBLE,
	wat_cum   DOUBLE
);
CREATE INDEX IF NOT EXISTS idx_monthly_production_well ON monthly_production(well_name, prod_date);
`

// ProductionRepo implementasi datasource.Client di atas database/sql.
type ProductionRepo struct{ DB *sql.DB }

var _ datasource.Client = (*ProductionRepo)(nil)

type prodRow struct {
	WellName string
	ProdDate sql.NullString
	OilRate  sql.NullFloat64
	WatRate  sql.NullFloat64
	OilCum   sql.NullFloat64
	WatCum   sql.NullFloat64
}

// EnsureSchema membuat tabel jika belum ada.
func (r *ProductionRepo) EnsureSchema(ctx context.Context) error {
	if r == nil || r.DB == nil {
		return fmt.Errorf("production repo: DB is nil")
	}
	if _, err := r.DB.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// ListWells urut sesuai kolom position (urutan input).
func (r *ProductionRepo) ListWells(ctx context.Context) ([]datasource.Well, error) {
	if r == nil || r.DB == nil {
		return nil, fmt.Errorf("%w: production repo: DB is nil", datasource.ErrUnavailable)
	}
	const q = `SELECT well_name FROM wells ORDER BY position ASC, well_name ASC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: query wells: %v", datasource.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []datasource.Well
	for rows.Next() {
		var w datasource.Well
		if err := rows.Scan(&w.Name); err != nil {
			return nil, fmt.Errorf("scan well: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// GetMonthlyProduction mengambil baris untuk sumur-sumur yang diminta, urut tanggal.
func (r *ProductionRepo) GetMonthlyProduction(ctx context.Context, wellNames []string) (datasource.ProductionTable, error) {
	if r == nil || r.DB == nil {
		return nil, fmt.Errorf("%w: production repo: DB is nil", datasource.ErrUnavailable)
	}
	out := datasource.ProductionTable{}
	if len(wellNames) == 0 {
		return out, nil
	}

	q := `
		SELECT well_name, prod_date, oil_rate, wat_rate, oil_cum, wat_cum
		FROM monthly_production
		WHERE well_name IN (` + placeholders(len(wellNames)) + `)
		ORDER BY well_name ASC, prod_date ASC`

	rows, err := r.DB.QueryContext(ctx, q, stringArgs(wellNames)...)
	if err != nil {
		return nil, fmt.Errorf("%w: query monthly production: %v", datasource.ErrUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var pr prodRow
		if err := rows.Scan(&pr.WellName, &pr.ProdDate, &pr.OilRate, &pr.WatRate, &pr.OilCum, &pr.WatCum); err != nil {
			return nil, fmt.Errorf("scan monthly production: %w", err)
		}
		out = append(out, datasource.ProductionRecord{
			WellName: pr.WellName,
			Date:     pr.ProdDate.String,
			OilRate:  nullable(pr.OilRate),
			WatRate:  nullable(pr.WatRate),
			OilCum:   nullable(pr.OilCum),
			WatCum:   nullable(pr.WatCum),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read monthly production: %v", datasource.ErrUnavailable, err)
	}
	return out, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
