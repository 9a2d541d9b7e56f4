// internal/handlers/http/charts_handler.go
// Endpoint JSON: daftar sumur dan hasil seleksi per sumur

package http

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"well-dashboard/internal/services"
)

// Selector bagian dari services.Dashboard yang dipakai handler.
type Selector interface {
	Select(ctx context.Context, well string) services.SelectionResult
}

func NewWellsHandler(wells services.WellSnapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"wells":   wells.Names(),
			"default": wells.Default(),
		})
	}
}

// NewChartsHandler GET /api/wells/{well}/charts.
// Status HTTP tetap 200 untuk hasil error; kategori ada di body (status/error_code).
func NewChartsHandler(sel Selector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		well, ok := wellVar(r)
		if !ok {
			http.Error(w, "invalid well", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, sel.Select(r.Context(), well))
	}
}

// wellVar membaca {well} dari path; router memakai UseEncodedPath sehingga
// nama sumur yang mengandung "/" tetap utuh.
func wellVar(r *http.Request) (string, bool) {
	raw := mux.Vars(r)["well"]
	well, err := url.PathUnescape(raw)
	if err != nil || well == "" {
		return "", false
	}
	return well, true
}
