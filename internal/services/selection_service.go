// internal/services/selection_service.go
// Selection handler: nama sumur -> empat panel chart, atau empat placeholder error.

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"

	"well-dashboard/internal/callback"
	"well-dashboard/internal/datasource"
	"well-dashboard/internal/util"
)

// ID komponen layout (input dropdown, output panel).
const (
	IDWellDropdown    = "well-dropdown"
	IDOilRate         = "oil-rate"
	IDWaterRate       = "water-rate"
	IDOilCum          = "oil-cum"
	IDWaterCum        = "water-cum"
	IDSelectionStatus = "selection-status"
)

// ErrorPlaceholder teks pengganti keempat chart saat seleksi gagal.
const ErrorPlaceholder = "Error in well data"

const (
	StatusOK    = "ok"
	StatusEmpty = "empty"
	StatusError = "error"
)

var errorMessages = map[string]string{
	util.CodeBadInput:     "data source rejected the well identifier",
	util.CodeNotFound:     "no production data found for well",
	util.CodeUnauthorized: "data source rejected the credentials",
	util.CodeUnavailable:  "data source unreachable",
	util.CodeBadData:      "data source returned malformed well data",
	util.CodeInternal:     "internal error while building charts",
}

// ProductionFetcher bagian dari datasource.Client yang dibutuhkan per seleksi.
type ProductionFetcher interface {
	GetMonthlyProduction(ctx context.Context, wellNames []string) (datasource.ProductionTable, error)
}

// Panel berisi Figure (sukses) atau Placeholder (gagal), tidak keduanya.
type Panel struct {
	ID          string            `json:"id"`
	Figure      *ChartDescription `json:"figure,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
}

// Value nilai output untuk UI: ChartDescription atau string placeholder.
func (p Panel) Value() any {
	if p.Figure != nil {
		return *p.Figure
	}
	return p.Placeholder
}

type SelectionStatus struct {
	Well      string `json:"well"`
	Status    string `json:"status"`
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
}

// SelectionResult hasil bertipe: sukses (ok/empty) atau error berkategori.
type SelectionResult struct {
	SelectionStatus
	Panels [4]Panel `json:"panels"`
}

func (r SelectionResult) Failed() bool { return r.Status == StatusError }

// Outputs empat nilai panel sesuai urutan PanelStyles.
func (r SelectionResult) Outputs() [4]any {
	var out [4]any
	for i, p := range r.Panels {
		out[i] = p.Value()
	}
	return out
}

// Dashboard menjalankan pipeline fetch -> shape -> build untuk satu seleksi.
// Tidak ada cache antar seleksi.
type Dashboard struct {
	source ProductionFetcher
	logger *zap.Logger

	selections atomic.Int64
	failures   atomic.Int64
}

func NewDashboard(source ProductionFetcher, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{source: source, logger: logger}
}

// Stats jumlah seleksi dan seleksi gagal sejak start.
func (d *Dashboard) Stats() (selections, failures int64) {
	return d.selections.Load(), d.failures.Load()
}

// Select tidak memvalidasi well terhadap daftar; identifier diteruskan apa adanya
// ke sumber data. Kegagalan apa pun (termasuk panic) mengganti keempat panel.
func (d *Dashboard) Select(ctx context.Context, well string) (res SelectionResult) {
	d.selections.Add(1)

	defer func() {
		if rec := recover(); rec != nil {
			res = d.fail(well, util.Internal(fmt.Sprintf("panic: %v", rec)))
		}
	}()

	if d.source == nil {
		return d.fail(well, util.Unavailable("no data source configured"))
	}

	tbl, err := d.source.GetMonthlyProduction(ctx, []string{well})
	if err != nil {
		return d.fail(well, err)
	}

	series, err := ShapeProduction(tbl)
	if err != nil {
		return d.fail(well, err)
	}

	charts := BuildCharts(series)
	res.Well = well
	res.Status = StatusOK
	if series.Empty() {
		res.Status = StatusEmpty
	}
	for i := range charts {
		c := charts[i]
		res.Panels[i] = Panel{ID: c.ID, Figure: &c}
	}
	return res
}

func (d *Dashboard) fail(well string, err error) SelectionResult {
	d.failures.Add(1)
	code := Classify(err)
	d.logger.Warn("well selection failed",
		zap.String("well", well),
		zap.String("code", code),
		zap.Error(err))

	res := SelectionResult{SelectionStatus: SelectionStatus{
		Well:      well,
		Status:    StatusError,
		ErrorCode: code,
		Message:   errorMessages[code],
	}}
	for i, st := range PanelStyles {
		res.Panels[i] = Panel{ID: st.ID, Placeholder: ErrorPlaceholder}
	}
	return res
}

// Classify memetakan error sumber data/shaper ke kode util.Code*.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := util.CodeOf(err); code != "" {
		return code
	}

	var se *datasource.StatusError
	if errors.As(err, &se) {
		switch {
		case se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden:
			return util.CodeUnauthorized
		case se.StatusCode == http.StatusNotFound:
			return util.CodeNotFound
		case se.StatusCode == http.StatusBadRequest || se.StatusCode == http.StatusUnprocessableEntity:
			return util.CodeBadInput
		case se.StatusCode == http.StatusTooManyRequests || se.StatusCode >= 500:
			return util.CodeUnavailable
		}
		return util.CodeInternal
	}

	switch {
	case errors.Is(err, datasource.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return util.CodeUnavailable
	case errors.Is(err, datasource.ErrBadPayload):
		return util.CodeBadData
	}
	return util.CodeInternal
}

// CallbackUpdateGraphs nama binding dropdown -> empat chart + status.
const CallbackUpdateGraphs = "update_graphs"

// Binding kontrak reaktif dashboard: input well-dropdown,
// output empat panel chart ditambah selection-status.
func (d *Dashboard) Binding() callback.Binding {
	return callback.Binding{
		Name:    CallbackUpdateGraphs,
		Inputs:  []string{IDWellDropdown},
		Outputs: []string{IDOilRate, IDWaterRate, IDOilCum, IDWaterCum, IDSelectionStatus},
		Func: func(ctx context.Context, in []string) ([]any, error) {
			res := d.Select(ctx, in[0])
			outs := res.Outputs()
			return []any{outs[0], outs[1], outs[2], outs[3], res.SelectionStatus}, nil
		},
	}
}
