// internal/datasource/client.go
// Kontrak sumber data produksi sumur (vendor API atau database)
package datasource

import (
	"context"
	"errors"
	"fmt"
)

// Well satu sumur produksi; Name unik dalam daftar.
type Well struct {
	Name string `json:"well_name"`
}

// ProductionRecord satu baris produksi bulanan. Field nil = tidak ada nilai (bukan nol).
type ProductionRecord struct {
	WellName string   `json:"well_name,omitempty"`
	Date     string   `json:"date"`
	OilRate  *float64 `json:"oil_rate"`
	WatRate  *float64 `json:"wat_rate"`
	OilCum   *float64 `json:"oil_cum"`
	WatCum   *float64 `json:"wat_cum"`
}

// ProductionTable urutan baris sesuai yang dikirim sumber data.
type ProductionTable []ProductionRecord

// Client dipakai oleh dashboard dan CLI.
type Client interface {
	ListWells(ctx context.Context) ([]Well, error)
	GetMonthlyProduction(ctx context.Context, wellNames []string) (ProductionTable, error)
}

var (
	// ErrUnavailable sumber data tidak bisa dihubungi (jaringan, DB down, timeout).
	ErrUnavailable = errors.New("data source unavailable")
	// ErrBadPayload respons tidak bisa di-decode.
	ErrBadPayload = errors.New("data source returned malformed payload")
)

// StatusError respons HTTP non-2xx dari vendor API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("data source responded %d", e.StatusCode)
	}
	return fmt.Sprintf("data source responded %d: %s", e.StatusCode, e.Message)
}

// Float membuat pointer nilai; helper untuk fixture dan test.
func Float(v float64) *float64 { return &v }
