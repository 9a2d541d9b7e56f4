package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("SOURCE_KIND", "")
	t.Setenv("MQTT_TOPIC_PREFIX", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, ":9000", c.Addr())
	assert.Equal(t, SourceAPI, c.Source.Kind)
	assert.Equal(t, 30*time.Second, c.SourceTimeout())
	assert.Equal(t, "well_production", c.MQTT.TopicPrefix)
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
app_port: "9100"
source:
  kind: sqlite
  timeout_sec: 5
sqlite:
  path: /tmp/wells.db
mqtt:
  broker: broker.local:1883
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0600))
	t.Setenv("APP_PORT", "9200")
	t.Setenv("SOURCE_KIND", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("SOURCE_TIMEOUT_SEC", "")
	t.Setenv("MQTT_BROKER", "")

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "9200", c.AppPort)
	assert.Equal(t, SourceSQLite, c.Source.Kind)
	assert.Equal(t, "/tmp/wells.db", c.SQLite.Path)
	assert.Equal(t, 5*time.Second, c.SourceTimeout())
	assert.Equal(t, "broker.local:1883", c.MQTT.Broker)
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	t.Setenv("SOURCE_KIND", "ftp")
	_, err := LoadFile("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source kind")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
