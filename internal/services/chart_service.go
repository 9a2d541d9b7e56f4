// internal/services/chart_service.go
// Chart builder: deret waktu + gaya tetap -> deskripsi chart garis 2D

package services

import (
	"encoding/json"
	"time"
)

const (
	ModeLines        = "lines"
	ModeLinesMarkers = "lines+markers"

	DashSolid = "solid"
	DashDot   = "dot"
)

// ChartStyle gaya tetap per panel.
type ChartStyle struct {
	ID      string
	Title   string
	Color   string
	Dash    string
	Markers bool
}

var (
	OilRateStyle   = ChartStyle{ID: IDOilRate, Title: "Oil Rate", Color: "green", Dash: DashSolid}
	WaterRateStyle = ChartStyle{ID: IDWaterRate, Title: "Water Rate", Color: "blue", Dash: DashSolid}
	OilCumStyle    = ChartStyle{ID: IDOilCum, Title: "Oil Cumulative", Color: "green", Dash: DashDot, Markers: true}
	WaterCumStyle  = ChartStyle{ID: IDWaterCum, Title: "Water Cumulative", Color: "blue", Dash: DashDot, Markers: true}
)

// PanelStyles urutan panel di layout: oil rate, water rate, oil cum, water cum.
var PanelStyles = [4]ChartStyle{OilRateStyle, WaterRateStyle, OilCumStyle, WaterCumStyle}

type LineStyle struct {
	Color string `json:"color"`
	Dash  string `json:"dash,omitempty"`
}

// Trace satu garis: x = tanggal, y = nilai.
type Trace struct {
	X    []time.Time `json:"x"`
	Y    []float64   `json:"y"`
	Mode string      `json:"mode"`
	Line LineStyle   `json:"line"`
}

// ChartDescription deskripsi chart yang netral terhadap renderer.
type ChartDescription struct {
	ID    string
	Title string
	Trace Trace
}

// Len jumlah titik.
func (c ChartDescription) Len() int { return len(c.Trace.X) }

// MarshalJSON bentuk "figure": {"data":[trace],"layout":{"title":{"text":..}}}.
func (c ChartDescription) MarshalJSON() ([]byte, error) {
	type layoutTitle struct {
		Text string `json:"text"`
	}
	type layout struct {
		Title layoutTitle `json:"title"`
	}
	return json.Marshal(struct {
		ID     string  `json:"id"`
		Data   []Trace `json:"data"`
		Layout layout  `json:"layout"`
	}{
		ID:     c.ID,
		Data:   []Trace{c.Trace},
		Layout: layout{Title: layoutTitle{Text: c.Title}},
	})
}

// BuildChart fungsi murni, tanpa efek samping. Slice X/Y selalu non-nil.
func BuildChart(s Series, style ChartStyle) ChartDescription {
	xs := make([]time.Time, 0, len(s))
	ys := make([]float64, 0, len(s))
	for _, p := range s {
		xs = append(xs, p.Date)
		ys = append(ys, p.Value)
	}

	mode := ModeLines
	if style.Markers {
		mode = ModeLinesMarkers
	}
	dash := style.Dash
	if dash == DashSolid {
		dash = ""
	}

	return ChartDescription{
		ID:    style.ID,
		Title: style.Title,
		Trace: Trace{
			X:    xs,
			Y:    ys,
			Mode: mode,
			Line: LineStyle{Color: style.Color, Dash: dash},
		},
	}
}

// BuildCharts empat chart sesuai PanelStyles.
func BuildCharts(p ProductionSeries) [4]ChartDescription {
	return [4]ChartDescription{
		BuildChart(p.OilRate, OilRateStyle),
		BuildChart(p.WaterRate, WaterRateStyle),
		BuildChart(p.OilCum, OilCumStyle),
		BuildChart(p.WaterCum, WaterCumStyle),
	}
}
