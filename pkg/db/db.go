// pkg/db/db.go
// Helper koneksi database/sql untuk MySQL dan SQLite

package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

type MySQLOptions struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	MaxOpen  int
	MaxIdle  int
}

// MySQLDSN menyusun DSN dengan parseTime=true.
func MySQLDSN(o MySQLOptions) string {
	cfg := mysql.NewConfig()
	cfg.User = o.User
	cfg.Passwd = o.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(o.Host, o.Port)
	cfg.DBName = o.DB
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// NewMySQL membuka pool MySQL dan menunggu sampai ping berhasil.
func NewMySQL(ctx context.Context, o MySQLOptions) (*sql.DB, error) {
	db, err := sql.Open("mysql", MySQLDSN(o))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if o.MaxOpen > 0 {
		db.SetMaxOpenConns(o.MaxOpen)
	}
	if o.MaxIdle > 0 {
		db.SetMaxIdleConns(o.MaxIdle)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	// retry ping agar tahan saat container DB baru up
	if err := Ping(ctx, db, 20, 3*time.Second); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewSQLite membuka file SQLite lokal. Satu koneksi cukup untuk dashboard.
func NewSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := Ping(ctx, db, 1, 0); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Ping mencoba sampai attempts kali dengan jeda wait.
func Ping(ctx context.Context, db *sql.DB, attempts int, wait time.Duration) error {
	if attempts <= 0 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping database: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("database not ready after %d attempts: %w", attempts, err)
}
