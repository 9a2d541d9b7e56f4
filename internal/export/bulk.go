// internal/export/bulk.go
// Ambil produksi banyak sumur secara paralel (dibatasi) untuk export workbook

package export

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"well-dashboard/internal/datasource"
)

// DefaultParallel batas fetch paralel ke sumber data.
const DefaultParallel = 4

type Fetcher interface {
	GetMonthlyProduction(ctx context.Context, wellNames []string) (datasource.ProductionTable, error)
}

type WellTable struct {
	Well  string
	Table datasource.ProductionTable
}

// Collect mengambil tabel per sumur (satu panggilan per sumur, sama seperti
// dashboard). Urutan hasil sama dengan wells. Error pertama membatalkan sisanya.
func Collect(ctx context.Context, src Fetcher, wells []string, parallel int) ([]WellTable, error) {
	if parallel <= 0 {
		parallel = DefaultParallel
	}
	out := make([]WellTable, len(wells))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for i, well := range wells {
		i, well := i, well
		eg.Go(func() error {
			tbl, err := src.GetMonthlyProduction(egCtx, []string{well})
			if err != nil {
				return fmt.Errorf("fetch %q: %w", well, err)
			}
			out[i] = WellTable{Well: well, Table: tbl}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteAll menulis satu sheet per sumur sesuai urutan tables.
func WriteAll(w io.Writer, tables []WellTable) error {
	wb := NewWorkbook()
	defer wb.Close()
	for _, t := range tables {
		if err := wb.AddWell(t.Well, t.Table); err != nil {
			return err
		}
	}
	return wb.Write(w)
}
