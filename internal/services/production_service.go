// internal/services/production_service.go
// Data shaper: tabel produksi bulanan satu sumur -> empat deret waktu

package services

import (
	"fmt"
	"strings"
	"time"

	"well-dashboard/internal/datasource"
	"well-dashboard/internal/util"
)

// Point satu titik (tanggal, nilai).
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series urutan mengikuti tabel sumber; tidak di-sort ulang.
type Series []Point

// ProductionSeries empat deret untuk panel dashboard.
type ProductionSeries struct {
	OilRate   Series
	WaterRate Series
	OilCum    Series
	WaterCum  Series
}

// Empty true jika keempat deret kosong.
func (p ProductionSeries) Empty() bool {
	return len(p.OilRate) == 0 && len(p.WaterRate) == 0 && len(p.OilCum) == 0 && len(p.WaterCum) == 0
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006-01",
}

// ParseDate menormalkan tanggal dari sumber data ke time.Time (UTC).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, util.BadData(fmt.Sprintf("unparseable date %q", s))
}

// ShapeProduction memilih kolom oil_rate, wat_rate, oil_cum, wat_cum.
// Baris dengan nilai nil dilewati untuk deret tersebut saja (tanpa isi nol/interpolasi).
// Semua tanggal dinormalkan dulu; satu tanggal rusak menggagalkan seluruh tabel.
// Tabel kosong menghasilkan empat deret kosong.
func ShapeProduction(tbl datasource.ProductionTable) (ProductionSeries, error) {
	out := ProductionSeries{
		OilRate:   Series{},
		WaterRate: Series{},
		OilCum:    Series{},
		WaterCum:  Series{},
	}
	for i, rec := range tbl {
		d, err := ParseDate(rec.Date)
		if err != nil {
			return ProductionSeries{}, fmt.Errorf("row %d: %w", i, err)
		}
		out.OilRate = appendPresent(out.OilRate, d, rec.OilRate)
		out.WaterRate = appendPresent(out.WaterRate, d, rec.WatRate)
		out.OilCum = appendPresent(out.OilCum, d, rec.OilCum)
		out.WaterCum = appendPresent(out.WaterCum, d, rec.WatCum)
	}
	return out, nil
}

func appendPresent(s Series, d time.Time, v *float64) Series {
	if v == nil {
		return s
	}
	return append(s, Point{Date: d, Value: *v})
}
