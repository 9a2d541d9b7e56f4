package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(MySQLOptions{Host: "db", Port: "3306", DB: "production", User: "app", Password: "s3cret"})
	assert.Equal(t, "app:s3cret@tcp(db:3306)/production?parseTime=true", dsn)
}

func TestNewSQLite(t *testing.T) {
	db, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "wells.db"))
	require.NoError(t, err)
	defer db.Close()

	var one int
	require.NoError(t, db.QueryRow(`SELECT 1`).Scan(&one))
	assert.Equal(t, 1, one)
}
