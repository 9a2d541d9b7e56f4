package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"well-dashboard/internal/config"
	"well-dashboard/internal/datasource"
	mysqlrepo "well-dashboard/internal/repositories/mysql"
)

func TestSourceEndpointPrefersClientBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Source.Kind = config.SourceAPI
	cfg.Source.RootURL = "https://vendor.example/open/"

	c, err := datasource.NewAPIClient(cfg.Source.RootURL, "tok", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "https://vendor.example/open", sourceEndpoint(cfg, c))

	cfg.Source.Kind = config.SourceSQLite
	cfg.SQLite.Path = "/data/wells.db"
	assert.Equal(t, "/data/wells.db", sourceEndpoint(cfg, &mysqlrepo.ProductionRepo{}))
}
