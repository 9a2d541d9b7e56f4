// internal/handlers/http/metrics_handler.go
// Handler untuk metrics Prometheus format sederhana

package http

import (
	"fmt"
	"net/http"
	"time"

	"well-dashboard/internal/util"
)

type MetricsDeps struct {
	Stats   func() (selections, failures int64)
	Wells   func() int
	Started time.Time
	Clock   util.Clock
}

func NewMetricsHandler(d MetricsDeps) http.HandlerFunc {
	if d.Clock == nil {
		d.Clock = util.RealClock{}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		sel, failed := d.Stats()
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprintf(w, "# HELP app_up 1 if the app is up\n# TYPE app_up gauge\napp_up 1\n")
		fmt.Fprintf(w, "# HELP app_uptime_seconds seconds since start\n# TYPE app_uptime_seconds gauge\napp_uptime_seconds %.0f\n",
			d.Clock.Now().Sub(d.Started).Seconds())
		fmt.Fprintf(w, "# HELP wells_loaded wells in the startup snapshot\n# TYPE wells_loaded gauge\nwells_loaded %d\n", d.Wells())
		fmt.Fprintf(w, "# HELP well_selections_total well selections handled\n# TYPE well_selections_total counter\nwell_selections_total %d\n", sel)
		fmt.Fprintf(w, "# HELP well_selection_failures_total well selections that returned the error placeholder\n# TYPE well_selection_failures_total counter\nwell_selection_failures_total %d\n", failed)
	}
}
