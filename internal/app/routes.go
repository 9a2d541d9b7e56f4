// internal/app/routes.go
package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"well-dashboard/internal/callback"
	"well-dashboard/internal/config"
	"well-dashboard/internal/datasource"
	hh "well-dashboard/internal/handlers/http"
	"well-dashboard/internal/middleware"
	"well-dashboard/internal/services"
)

type RegisterDeps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Source    datasource.Client
	Wells     services.WellSnapshot
	Dashboard *services.Dashboard
	Registry  *callback.Registry
	Started   time.Time
}

// RegisterRoutesWithDeps menambahkan semua route HTTP.
// Router sebaiknya dibuat dengan UseEncodedPath agar {well} yang berisi "/" utuh.
func RegisterRoutesWithDeps(r *mux.Router, deps RegisterDeps) {
	r.Use(middleware.RequestID, middleware.AccessLog(deps.Logger), middleware.CORS)

	wellNames := deps.Wells.Names
	wellCount := deps.Wells.Len

	// --- no prefix ---
	r.HandleFunc("/", hh.NewDashboardHandler(hh.DashboardDeps{
		AppName:  deps.Config.AppName,
		Wells:    deps.Wells,
		Registry: deps.Registry,
		Logger:   deps.Logger,
	})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", hh.NewReadyHandler(wellCount)).Methods(http.MethodGet)
	r.HandleFunc("/metrics", hh.NewMetricsHandler(hh.MetricsDeps{
		Stats:   deps.Dashboard.Stats,
		Wells:   wellCount,
		Started: deps.Started,
	})).Methods(http.MethodGet)
	r.HandleFunc("/login", hh.NewLoginHandler(hh.LoginDeps{
		User:     deps.Config.Auth.AdminUser,
		PassHash: deps.Config.Auth.AdminPassHash,
		Secret:   deps.Config.Auth.JWTSecret,
	})).Methods(http.MethodPost, http.MethodOptions)

	// --- /api prefix ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.APIKey(deps.Config.Auth.APIKey))
	api.HandleFunc("/wells", hh.NewWellsHandler(deps.Wells)).Methods(http.MethodGet)
	api.HandleFunc("/wells/{well}/charts", hh.NewChartsHandler(deps.Dashboard)).Methods(http.MethodGet)
	api.HandleFunc("/wells/{well}/export.xlsx", hh.NewExportHandler(hh.ExportDeps{
		Source: deps.Source,
		Logger: deps.Logger,
	})).Methods(http.MethodGet)
	api.HandleFunc("/callback", hh.NewCallbackHandler(deps.Registry, deps.Logger)).
		Methods(http.MethodPost, http.MethodOptions)

	// Admin (JWT protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminJWTAuth(deps.Config.Auth.JWTSecret))
	admin.HandleFunc("/source", hh.NewSourceStatusHandler(hh.SourceStatusDeps{
		Kind:     deps.Config.Source.Kind,
		Endpoint: sourceEndpoint(deps.Config, deps.Source),
		Wells:    wellNames,
		Bindings: deps.Registry.List,
		Stats:    deps.Dashboard.Stats,
		Started:  deps.Started,
	})).Methods(http.MethodGet)
}
