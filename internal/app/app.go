// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"well-dashboard/internal/callback"
	"well-dashboard/internal/config"
	"well-dashboard/internal/datasource"
	mysqlrepo "well-dashboard/internal/repositories/mysql"
	"well-dashboard/internal/services"
	"well-dashboard/internal/util"
	"well-dashboard/pkg/db"
)

// App menampung router utama beserta state yang dibuat saat boot.
type App struct {
	Router    *mux.Router
	Dashboard *services.Dashboard
	Wells     services.WellSnapshot
	Registry  *callback.Registry

	closer io.Closer
}

// New membuka sumber data sesuai cfg, memuat daftar sumur, lalu registrasi routes.
// Gagal memuat daftar sumur (auth/koneksi) dikembalikan sebagai error; pemanggil
// memperlakukannya sebagai fatal.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	src, closer, err := OpenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a, err := NewWithSource(ctx, cfg, src, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	a.closer = closer
	return a, nil
}

// NewWithSource seperti New tetapi sumber data disediakan pemanggil (test, CLI).
func NewWithSource(ctx context.Context, cfg *config.Config, src datasource.Client, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.SourceTimeout())
	defer cancel()
	wells, err := services.LoadWellSnapshot(loadCtx, src)
	if err != nil {
		return nil, err
	}
	logger.Info("well list loaded",
		zap.String("source", cfg.Source.Kind),
		zap.Int("wells", wells.Len()))

	dash := services.NewDashboard(src, logger)
	reg := callback.NewRegistry()
	if err := reg.Register(dash.Binding()); err != nil {
		return nil, err
	}

	// nama sumur bisa mengandung "/" atau spasi; path var dibaca dalam bentuk encoded
	r := mux.NewRouter().UseEncodedPath()
	RegisterRoutesWithDeps(r, RegisterDeps{
		Config:    cfg,
		Logger:    logger,
		Source:    src,
		Wells:     wells,
		Dashboard: dash,
		Registry:  reg,
		Started:   util.RealClock{}.Now(),
	})

	return &App{
		Router:    r,
		Dashboard: dash,
		Wells:     wells,
		Registry:  reg,
		closer:    nopCloser{},
	}, nil
}

// Close menutup koneksi sumber data (pool DB); no-op untuk API.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// OpenSource memilih implementasi datasource.Client dari cfg.Source.Kind.
func OpenSource(ctx context.Context, cfg *config.Config) (datasource.Client, io.Closer, error) {
	switch cfg.Source.Kind {
	case config.SourceAPI:
		c, err := datasource.NewAPIClient(cfg.Source.RootURL, cfg.Source.Token, cfg.SourceTimeout())
		if err != nil {
			return nil, nil, err
		}
		return c, nopCloser{}, nil

	case config.SourceMySQL:
		conn, err := db.NewMySQL(ctx, db.MySQLOptions{
			Host:     cfg.MySQL.Host,
			Port:     cfg.MySQL.Port,
			DB:       cfg.MySQL.DB,
			User:     cfg.MySQL.User,
			Password: cfg.MySQL.Password,
			MaxOpen:  cfg.MySQL.MaxOpen,
			MaxIdle:  cfg.MySQL.MaxIdle,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", datasource.ErrUnavailable, err)
		}
		return &mysqlrepo.ProductionRepo{DB: conn}, conn, nil

	case config.SourceSQLite:
		conn, err := db.NewSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", datasource.ErrUnavailable, err)
		}
		repo := &mysqlrepo.ProductionRepo{DB: conn}
		if err := repo.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return repo, conn, nil
	}
	return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
}

// SourceEndpoint deskripsi sumber data untuk status admin (tanpa kredensial).
func SourceEndpoint(cfg *config.Config) string {
	switch cfg.Source.Kind {
	case config.SourceAPI:
		return cfg.Source.RootURL
	case config.SourceMySQL:
		return "mysql://" + net.JoinHostPort(cfg.MySQL.Host, cfg.MySQL.Port) + "/" + cfg.MySQL.DB
	case config.SourceSQLite:
		return cfg.SQLite.Path
	}
	return ""
}

// sourceEndpoint memakai URL yang benar-benar dipakai client API bila tersedia.
func sourceEndpoint(cfg *config.Config, src datasource.Client) string {
	if b, ok := src.(interface{ BaseURL() string }); ok {
		return b.BaseURL()
	}
	return SourceEndpoint(cfg)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

