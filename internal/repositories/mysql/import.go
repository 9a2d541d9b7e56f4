// internal/repositories/mysql/import.go
// Loader CSV -> wells + monthly_production (batch insert, portable MySQL/SQLite)

package mysql

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"well-dashboard/internal/datasource"
)

// CSVColumns header wajib; urutan kolom bebas.
var CSVColumns = []string{"well_name", "date", "oil_rate", "wat_rate", "oil_cum", "wat_cum"}

const defaultBatch = 500

func headerIndex(h []string) map[string]int {
	m := map[string]int{}
	for i, c := range h {
		c = strings.TrimSpace(strings.ToLower(c))
		c = strings.TrimPrefix(c, "\ufeff")
		m[c] = i
	}
	return m
}

func ensureColumns(idx map[string]int, need []string) error {
	for _, c := range need {
		if _, ok := idx[c]; !ok {
			return fmt.Errorf("missing column %q in CSV header", c)
		}
	}
	return nil
}

// ReadProductionCSV membaca CSV produksi bulanan. Sel kosong = NULL.
// wells berisi nama sumur sesuai urutan kemunculan pertama.
func ReadProductionCSV(r io.Reader) (wells []string, tbl datasource.ProductionTable, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := headerIndex(head)
	if err := ensureColumns(idx, CSVColumns); err != nil {
		return nil, nil, err
	}

	seen := map[string]struct{}{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		if len(rec) < len(head) {
			return nil, nil, fmt.Errorf("csv line %d: expected %d fields, got %d", line, len(head), len(rec))
		}

		well := strings.TrimSpace(rec[idx["well_name"]])
		if well == "" {
			return nil, nil, fmt.Errorf("csv line %d: empty well_name", line)
		}
		pr := datasource.ProductionRecord{WellName: well, Date: strings.TrimSpace(rec[idx["date"]])}
		for _, f := range []struct {
			col string
			dst **float64
		}{
			{"oil_rate", &pr.OilRate},
			{"wat_rate", &pr.WatRate},
			{"oil_cum", &pr.OilCum},
			{"wat_cum", &pr.WatCum},
		} {
			v, err := parseCell(rec[idx[f.col]])
			if err != nil {
				return nil, nil, fmt.Errorf("csv line %d column %s: %w", line, f.col, err)
			}
			*f.dst = v
		}

		if _, ok := seen[well]; !ok {
			seen[well] = struct{}{}
			wells = append(wells, well)
		}
		tbl = append(tbl, pr)
	}
	return wells, tbl, nil
}

func parseCell(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("non-finite value %q", s)
	}
	return &v, nil
}

// Import mengganti data sumur-sumur yang ada di wells dalam satu transaksi.
// Posisi sumur baru melanjutkan posisi terbesar yang sudah ada.
func (r *ProductionRepo) Import(ctx context.Context, wells []string, tbl datasource.ProductionTable, batch int) error {
	if r == nil || r.DB == nil {
		return fmt.Errorf("production repo: DB is nil")
	}
	if len(wells) == 0 {
		return nil
	}
	if batch <= 0 {
		batch = defaultBatch
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	var maxPos int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) FROM wells`).Scan(&maxPos); err != nil {
		return fmt.Errorf("read well positions: %w", err)
	}

	in := placeholders(len(wells))
	args := stringArgs(wells)
	if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_production WHERE well_name IN (`+in+`)`, args...); err != nil {
		return fmt.Errorf("clear monthly production: %w", err)
	}

	existing := map[string]struct{}{}
	rows, err := tx.QueryContext(ctx, `SELECT well_name FROM wells WHERE well_name IN (`+in+`)`, args...)
	if err != nil {
		return fmt.Errorf("query existing wells: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	rows.Close()

	vals := make([]any, 0, batch*2)
	for _, w := range wells {
		if _, ok := existing[w]; ok {
			continue
		}
		maxPos++
		vals = append(vals, maxPos, w)
		if len(vals) == batch*2 {
			if err := flushRows(ctx, tx, "wells(position, well_name)", 2, &vals); err != nil {
				return err
			}
		}
	}
	if err := flushRows(ctx, tx, "wells(position, well_name)", 2, &vals); err != nil {
		return err
	}

	vals = make([]any, 0, batch*6)
	for _, pr := range tbl {
		vals = append(vals, pr.WellName, pr.Date, nullArg(pr.OilRate), nullArg(pr.WatRate), nullArg(pr.OilCum), nullArg(pr.WatCum))
		if len(vals) == batch*6 {
			if err := flushRows(ctx, tx, "monthly_production(well_name, prod_date, oil_rate, wat_rate, oil_cum, wat_cum)", 6, &vals); err != nil {
				return err
			}
		}
	}
	if err := flushRows(ctx, tx, "monthly_production(well_name, prod_date, oil_rate, wat_rate, oil_cum, wat_cum)", 6, &vals); err != nil {
		return err
	}

	return tx.Commit()
}

// flushRows satu INSERT multi-row untuk isi vals (kelipatan width), lalu reset vals.
func flushRows(ctx context.Context, tx *sql.Tx, target string, width int, vals *[]any) error {
	if len(*vals) == 0 {
		return nil
	}
	row := "(" + placeholders(width) + ")"
	q := "INSERT INTO " + target + " VALUES " + strings.TrimSuffix(strings.Repeat(row+",", len(*vals)/width), ",")
	if _, err := tx.ExecContext(ctx, q, *vals...); err != nil {
		return fmt.Errorf("insert %s: %w", target, err)
	}
	*vals = (*vals)[:0]
	return nil
}

func nullArg(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
