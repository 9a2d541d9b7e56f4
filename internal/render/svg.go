// internal/render/svg.go
// Render ChartDescription ke SVG memakai go-chart

package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"well-dashboard/internal/services"
)

const (
	DefaultWidth  = 560
	DefaultHeight = 320
)

// ErrNoData deret kosong tidak bisa dirender oleh go-chart; UI menampilkan teks.
var ErrNoData = errors.New("render: chart has no points")

var namedColors = map[string]drawing.Color{
	"green": drawing.ColorFromHex("008000"),
	"blue":  drawing.ColorFromHex("0000FF"),
	"red":   drawing.ColorFromHex("FF0000"),
	"black": drawing.ColorFromHex("000000"),
}

// lineStyle gaya garis sesuai Trace (warna, dash, marker).
func lineStyle(tr services.Trace) chart.Style {
	col := parseColor(tr.Line.Color)
	st := chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
	if tr.Line.Dash == services.DashDot {
		st.StrokeDashArray = []float64{2, 4}
	}
	if tr.Mode == services.ModeLinesMarkers {
		st.DotColor = col
		st.DotWidth = 3
	}
	return st
}

func parseColor(s string) drawing.Color {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
	}
	return chart.ColorBlack
}

// SVG menulis chart ke w. width/height <= 0 memakai ukuran default.
func SVG(w io.Writer, c services.ChartDescription, width, height int) error {
	if c.Len() == 0 {
		return ErrNoData
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	xs := append([]time.Time(nil), c.Trace.X...)
	ys := append([]float64(nil), c.Trace.Y...)
	// go-chart butuh minimal dua nilai X yang berbeda (satu titik, atau
	// beberapa baris dengan tanggal sama)
	if singleDate(xs) {
		xs = append(xs, xs[len(xs)-1].Add(24*time.Hour))
		ys = append(ys, ys[len(ys)-1])
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		YAxis: chart.YAxis{Range: yRange(ys)},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    c.Title,
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(c.Trace),
			},
		},
	}

	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render %s: %w", c.ID, err)
	}
	return nil
}

func singleDate(xs []time.Time) bool {
	for _, x := range xs[1:] {
		if !x.Equal(xs[0]) {
			return false
		}
	}
	return true
}

// SVGString seperti SVG tapi mengembalikan string.
func SVGString(c services.ChartDescription, width, height int) (string, error) {
	var buf bytes.Buffer
	if err := SVG(&buf, c, width, height); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// yRange baseline 0 (atau minimum negatif) dengan sedikit ruang di atas;
// tidak pernah nol lebarnya.
func yRange(ys []float64) *chart.ContinuousRange {
	lo, hi := 0.0, -math.MaxFloat64
	for _, v := range ys {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi <= lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + (hi-lo)*0.05}
}
