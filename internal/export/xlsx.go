// internal/export/xlsx.go
// Ekspor produksi bulanan ke workbook Excel, satu sheet per sumur

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"well-dashboard/internal/datasource"
)

const maxSheetName = 31

var header = []string{"date", "oil_rate", "wat_rate", "oil_cum", "wat_cum"}

// Workbook pembungkus excelize.File; panggil Close setelah selesai.
type Workbook struct {
	f      *excelize.File
	sheets map[string]struct{}
}

func NewWorkbook() *Workbook {
	return &Workbook{f: excelize.NewFile(), sheets: map[string]struct{}{}}
}

// AddWell menulis tabel ke sheet baru. Sheet pertama memakai "Sheet1" bawaan.
// Sel nil dibiarkan kosong.
func (wb *Workbook) AddWell(well string, tbl datasource.ProductionTable) error {
	name := wb.uniqueName(SheetName(well))

	if len(wb.sheets) == 0 {
		if err := wb.f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	} else if _, err := wb.f.NewSheet(name); err != nil {
		return fmt.Errorf("new sheet %q: %w", name, err)
	}
	wb.sheets[name] = struct{}{}

	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	if style, err := wb.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = wb.f.SetCellStyle(name, "A1", "E1", style)
	}

	for r, rec := range tbl {
		row := r + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := wb.f.SetCellValue(name, cell, rec.Date); err != nil {
			return err
		}
		for c, v := range []*float64{rec.OilRate, rec.WatRate, rec.OilCum, rec.WatCum} {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+2, row)
			if err := wb.f.SetCellValue(name, cell, *v); err != nil {
				return err
			}
		}
	}
	_ = wb.f.SetColWidth(name, "A", "A", 12)
	return nil
}

// Write menulis workbook xlsx ke w.
func (wb *Workbook) Write(w io.Writer) error {
	if len(wb.sheets) == 0 {
		return fmt.Errorf("export: workbook has no wells")
	}
	return wb.f.Write(w)
}

func (wb *Workbook) Close() error { return wb.f.Close() }

// WriteProduction helper satu sumur langsung ke w.
func WriteProduction(w io.Writer, well string, tbl datasource.ProductionTable) error {
	wb := NewWorkbook()
	defer wb.Close()
	if err := wb.AddWell(well, tbl); err != nil {
		return err
	}
	return wb.Write(w)
}

// SheetName nama sheet valid untuk Excel: tanpa : \ / ? * [ ], maksimal 31 rune.
func SheetName(well string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(well))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "well"
	}
	if rs := []rune(name); len(rs) > maxSheetName {
		name = string(rs[:maxSheetName])
	}
	return name
}

func (wb *Workbook) uniqueName(base string) string {
	name := base
	for i := 2; ; i++ {
		if !wb.hasFold(name) {
			return name
		}
		suffix := fmt.Sprintf("~%d", i)
		rs := []rune(base)
		if len(rs)+len(suffix) > maxSheetName {
			rs = rs[:maxSheetName-len(suffix)]
		}
		name = string(rs) + suffix
	}
}

// hasFold nama sheet Excel tidak case-sensitive.
func (wb *Workbook) hasFold(name string) bool {
	for s := range wb.sheets {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}
