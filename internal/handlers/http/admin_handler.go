// internal/handlers/http/admin_handler.go
package http

import (
	"net/http"
	"net/url"
	"time"

	"well-dashboard/internal/util"
)

// SourceStatusDeps info sumber data untuk admin (tanpa token/password).
type SourceStatusDeps struct {
	Kind     string
	Endpoint string
	Wells    func() []string
	Bindings func() []string
	Stats    func() (selections, failures int64)
	Started  time.Time
	Clock    util.Clock
}

type sourceStatus struct {
	Kind       string   `json:"kind"`
	Endpoint   string   `json:"endpoint,omitempty"`
	WellCount  int      `json:"well_count"`
	Wells      []string `json:"wells"`
	Callbacks  []string `json:"callbacks"`
	Selections int64    `json:"selections"`
	Failures   int64    `json:"failures"`
	StartedAt  string   `json:"started_at"`
	UptimeSec  int64    `json:"uptime_sec"`
}

func NewSourceStatusHandler(d SourceStatusDeps) http.HandlerFunc {
	if d.Clock == nil {
		d.Clock = util.RealClock{}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		wells := d.Wells()
		var callbacks []string
		if d.Bindings != nil {
			callbacks = d.Bindings()
		}
		sel, failed := d.Stats()
		writeJSON(w, http.StatusOK, sourceStatus{
			Kind:       d.Kind,
			Endpoint:   redactEndpoint(d.Endpoint),
			WellCount:  len(wells),
			Wells:      wells,
			Callbacks:  callbacks,
			Selections: sel,
			Failures:   failed,
			StartedAt:  d.Started.UTC().Format(time.RFC3339),
			UptimeSec:  int64(d.Clock.Now().Sub(d.Started).Seconds()),
		})
	}
}

// redactEndpoint membuang userinfo dan query dari URL/DSN yang ditampilkan.
func redactEndpoint(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}
