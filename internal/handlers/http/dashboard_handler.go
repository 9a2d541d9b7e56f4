// internal/handlers/http/dashboard_handler.go
// Halaman dashboard: dropdown sumur + empat panel chart (dua per baris)

package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"well-dashboard/internal/callback"
	"well-dashboard/internal/config"
	"well-dashboard/internal/render"
	"well-dashboard/internal/services"
	"well-dashboard/internal/util"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type DashboardDeps struct {
	AppName  string
	Wells    services.WellSnapshot
	Registry *callback.Registry
	Logger   *zap.Logger
}

type panelView struct {
	ID          string
	Title       string
	SVG         template.HTML
	Caption     string
	Placeholder string
}

type dashboardView struct {
	AppName  string
	Build    string
	Wells    []string
	Selected string
	Unlisted bool // Selected tidak ada di snapshot (diteruskan apa adanya)
	Status   *services.SelectionStatus
	Panels   []panelView
}

// NewDashboardHandler GET /?well=..; tanpa parameter memakai sumur pertama.
// Nama sumur di query diteruskan apa adanya ke callback.
func NewDashboardHandler(d DashboardDeps) http.HandlerFunc {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		view := dashboardView{
			AppName: d.AppName,
			Build:   config.BuildVersion,
			Wells:   d.Wells.Names(),
		}
		view.Selected = r.URL.Query().Get("well")
		if view.Selected == "" {
			view.Selected = d.Wells.Default()
		}
		view.Unlisted = view.Selected != "" && !d.Wells.Contains(view.Selected)

		if view.Selected != "" {
			outs, err := d.Registry.Dispatch(r.Context(), services.CallbackUpdateGraphs,
				map[string]string{services.IDWellDropdown: view.Selected})
			if err != nil {
				d.Logger.Error("dispatch update_graphs", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if st, ok := outs[services.IDSelectionStatus].(services.SelectionStatus); ok {
				view.Status = &st
			}
			var failed bool
			view.Panels, failed = d.panels(view.Selected, outs)
			if failed && (view.Status == nil || view.Status.Status != services.StatusError) {
				view.Status = &services.SelectionStatus{
					Well:      view.Selected,
					Status:    services.StatusError,
					ErrorCode: util.CodeInternal,
					Message:   "internal error while drawing charts",
				}
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboardTmpl.Execute(w, view); err != nil {
			d.Logger.Error("render dashboard", zap.Error(err))
		}
	}
}

// panels merender keempat output. Satu panel gagal render = keempat panel
// diganti placeholder; halaman tidak pernah menampilkan hasil parsial.
func (d DashboardDeps) panels(well string, outs map[string]any) ([]panelView, bool) {
	views := make([]panelView, 0, len(services.PanelStyles))
	failed := false
	for _, style := range services.PanelStyles {
		p := panelView{ID: style.ID, Title: style.Title}
		switch v := outs[style.ID].(type) {
		case string:
			p.Placeholder = v
			failed = true
		case services.ChartDescription:
			svg, err := render.SVGString(v, render.DefaultWidth, render.DefaultHeight)
			switch {
			case errors.Is(err, render.ErrNoData):
				// template menampilkan "No data"
			case err != nil:
				d.Logger.Warn("render chart", zap.String("well", well), zap.String("panel", style.ID), zap.Error(err))
				failed = true
			default:
				p.SVG = template.HTML(svg)
				p.Caption = latestCaption(v)
			}
		default:
			failed = true
		}
		views = append(views, p)
	}

	if failed {
		for i := range views {
			views[i] = panelView{ID: views[i].ID, Title: views[i].Title, Placeholder: services.ErrorPlaceholder}
		}
	}
	return views, failed
}

// latestCaption nilai terakhir deret, mis. "Latest 12,345.6 (2021-03), 14 points".
func latestCaption(c services.ChartDescription) string {
	n := c.Len()
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("Latest %s (%s), %d points",
		humanize.CommafWithDigits(c.Trace.Y[n-1], 1),
		c.Trace.X[n-1].Format("2006-01"),
		n)
}
