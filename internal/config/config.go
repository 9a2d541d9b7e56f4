// internal/config/config.go
// Loader konfigurasi: default -> file YAML (opsional, CONFIG_FILE) -> environment variables
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BuildVersion diisi saat build lewat ldflags.
var BuildVersion = "dev"

const (
	SourceAPI    = "api"
	SourceMySQL  = "mysql"
	SourceSQLite = "sqlite"
)

type Config struct {
	AppName   string `yaml:"app_name"`
	AppEnv    string `yaml:"app_env"`
	AppPort   string `yaml:"app_port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Source struct {
		Kind       string `yaml:"kind"` // api | mysql | sqlite
		RootURL    string `yaml:"root_url"`
		Token      string `yaml:"token"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"source"`

	MySQL struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		DB       string `yaml:"db"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		MaxOpen  int    `yaml:"max_open"`
		MaxIdle  int    `yaml:"max_idle"`
	} `yaml:"mysql"`

	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`

	MQTT struct {
		Broker      string `yaml:"broker"` // host:port, kosong = publish nonaktif
		Username    string `yaml:"username"`
		Password    string `yaml:"password"`
		TopicPrefix string `yaml:"topic_prefix"`
		ClientID    string `yaml:"client_id"`
	} `yaml:"mqtt"`

	Auth struct {
		APIKey        string `yaml:"api_key"`
		AdminUser     string `yaml:"admin_user"`
		AdminPassHash string `yaml:"admin_pass_hash"`
		JWTSecret     string `yaml:"jwt_secret"`
	} `yaml:"auth"`
}

// Load membaca konfigurasi. File YAML dari CONFIG_FILE (jika ada) ditimpa oleh env.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile seperti Load tetapi path file ditentukan pemanggil ("" = tanpa file).
func LoadFile(path string) (*Config, error) {
	c := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	c.AppName = getEnv("APP_NAME", c.AppName)
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)
	c.AppPort = getEnv("APP_PORT", c.AppPort)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	c.Source.Kind = strings.ToLower(getEnv("SOURCE_KIND", c.Source.Kind))
	c.Source.RootURL = getEnv("ALANA_ROOT_URL", c.Source.RootURL)
	c.Source.Token = getEnv("ALANA_TOKEN", c.Source.Token)
	c.Source.TimeoutSec = getEnvInt("SOURCE_TIMEOUT_SEC", c.Source.TimeoutSec)

	c.MySQL.Host = getEnv("MYSQL_HOST", c.MySQL.Host)
	c.MySQL.Port = getEnv("MYSQL_PORT", c.MySQL.Port)
	c.MySQL.DB = getEnv("MYSQL_DB", c.MySQL.DB)
	c.MySQL.User = getEnv("MYSQL_USER", c.MySQL.User)
	c.MySQL.Password = getEnv("MYSQL_PASSWORD", c.MySQL.Password)
	c.MySQL.MaxOpen = getEnvInt("MYSQL_MAX_OPEN_CONNS", c.MySQL.MaxOpen)
	c.MySQL.MaxIdle = getEnvInt("MYSQL_MAX_IDLE_CONNS", c.MySQL.MaxIdle)

	c.SQLite.Path = getEnv("SQLITE_PATH", c.SQLite.Path)

	c.MQTT.Broker = getEnv("MQTT_BROKER", c.MQTT.Broker)
	c.MQTT.Username = getEnv("MQTT_USERNAME", c.MQTT.Username)
	c.MQTT.Password = getEnv("MQTT_PASSWORD", c.MQTT.Password)
	c.MQTT.TopicPrefix = getEnv("MQTT_TOPIC_PREFIX", c.MQTT.TopicPrefix)
	c.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", c.MQTT.ClientID)

	c.Auth.APIKey = getEnv("API_KEY", c.Auth.APIKey)
	c.Auth.AdminUser = getEnv("ADMIN_USER", c.Auth.AdminUser)
	c.Auth.AdminPassHash = getEnv("ADMIN_PASS_HASH", c.Auth.AdminPassHash)
	c.Auth.JWTSecret = getEnv("ADMIN_JWT_SECRET", c.Auth.JWTSecret)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func defaults() *Config {
	c := &Config{}
	c.AppName = "well-dashboard"
	c.AppEnv = "development"
	c.AppPort = "9000"
	c.LogLevel = "info"
	c.LogFormat = "json"

	c.Source.Kind = SourceAPI
	c.Source.RootURL = "https://apps.alana.tech/open"
	c.Source.TimeoutSec = 30

	c.MySQL.Host = "localhost"
	c.MySQL.Port = "3306"
	c.MySQL.DB = "production"
	c.MySQL.User = "root"
	c.MySQL.MaxOpen = 10
	c.MySQL.MaxIdle = 5

	c.SQLite.Path = "production.db"

	c.MQTT.TopicPrefix = "well_production"
	c.MQTT.ClientID = "wellctl"
	return c
}

// Validate memeriksa kombinasi setting yang wajib ada per jenis sumber data.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceAPI:
		if c.Source.RootURL == "" {
			return fmt.Errorf("config: ALANA_ROOT_URL is required for source kind %q", c.Source.Kind)
		}
	case SourceMySQL, SourceSQLite:
	default:
		return fmt.Errorf("config: unknown source kind %q (available: api, mysql, sqlite)", c.Source.Kind)
	}
	if c.Source.TimeoutSec <= 0 {
		c.Source.TimeoutSec = 30
	}
	return nil
}

// SourceTimeout durasi timeout per panggilan ke sumber data.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSec) * time.Second
}

// Addr alamat listen HTTP.
func (c *Config) Addr() string {
	return ":" + c.AppPort
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		_, err := fmt.Sscanf(v, "%d", &i)
		if err == nil {
			return i
		}
	}
	return def
}
