// internal/handlers/http/export_handler.go
// Download produksi bulanan satu sumur sebagai XLSX

package http

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"well-dashboard/internal/export"
	"well-dashboard/internal/services"
	"well-dashboard/internal/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportDeps struct {
	Source services.ProductionFetcher
	Logger *zap.Logger
}

func NewExportHandler(d ExportDeps) http.HandlerFunc {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		well, ok := wellVar(r)
		if !ok {
			http.Error(w, "invalid well", http.StatusBadRequest)
			return
		}

		tbl, err := d.Source.GetMonthlyProduction(r.Context(), []string{well})
		if err != nil {
			code := services.Classify(err)
			d.Logger.Warn("export fetch failed", zap.String("well", well), zap.String("code", code), zap.Error(err))
			http.Error(w, services.ErrorPlaceholder, exportStatus(code))
			return
		}

		// buffer dulu supaya error tulis tidak menghasilkan file setengah jadi
		var buf bytes.Buffer
		if err := export.WriteProduction(&buf, well, tbl); err != nil {
			d.Logger.Error("export write failed", zap.String("well", well), zap.Error(err))
			http.Error(w, "export failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(export.SheetName(well)+".xlsx")))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = buf.WriteTo(w)
	}
}

func exportStatus(code string) int {
	switch code {
	case util.CodeNotFound:
		return http.StatusNotFound
	case util.CodeUnauthorized, util.CodeUnavailable, util.CodeBadData:
		return http.StatusBadGateway
	case util.CodeBadInput:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
