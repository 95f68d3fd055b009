package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	Log      LogConfig
	CORS     CORSConfig
	Parse    ParseConfig
	Importer ImporterConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ParseConfig holds settings of the server-side markdown parse endpoint.
type ParseConfig struct {
	MaxTextBytes int `mapstructure:"max_text_bytes"`
}

// ImporterConfig holds settings of the import pipeline: the remote parse client
// and the test case row synchronizer.
type ImporterConfig struct {
	PageBase    string        `mapstructure:"page_base"`
	Token       string        `mapstructure:"token"`
	TimeoutSecs int           `mapstructure:"timeout_secs"`
	BaseDelay   time.Duration `mapstructure:"base_delay"`
	RowTimeout  time.Duration `mapstructure:"row_timeout"`

	// LocalFallback parses in-process while the remote endpoint is unavailable.
	LocalFallback bool `mapstructure:"local_fallback"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the PROBIMPORT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROBIMPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "probimport")
	v.SetDefault("db.password", "probimport_secret")
	v.SetDefault("db.name", "probimport_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.token_expiry", "12h")
	v.SetDefault("jwt.issuer", "probimport")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("parse.max_text_bytes", 100000)

	// Importer defaults
	v.SetDefault("importer.page_base", "http://localhost:8080/admin/problems/add/")
	v.SetDefault("importer.token", "")
	v.SetDefault("importer.timeout_secs", 30)
	v.SetDefault("importer.base_delay", "200ms")
	v.SetDefault("importer.row_timeout", "2s")
	v.SetDefault("importer.local_fallback", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":           "PROBIMPORT_SERVER_PORT",
		"server.read_timeout":   "PROBIMPORT_SERVER_READ_TIMEOUT",
		"server.write_timeout":  "PROBIMPORT_SERVER_WRITE_TIMEOUT",
		"server.environment":    "PROBIMPORT_SERVER_ENVIRONMENT",
		"db.host":               "PROBIMPORT_DB_HOST",
		"db.port":               "PROBIMPORT_DB_PORT",
		"db.user":               "PROBIMPORT_DB_USER",
		"db.password":           "PROBIMPORT_DB_PASSWORD",
		"db.name":               "PROBIMPORT_DB_NAME",
		"db.sslmode":            "PROBIMPORT_DB_SSLMODE",
		"db.max_open":           "PROBIMPORT_DB_MAX_OPEN",
		"db.max_idle":           "PROBIMPORT_DB_MAX_IDLE",
		"jwt.secret":            "PROBIMPORT_JWT_SECRET",
		"jwt.token_expiry":      "PROBIMPORT_JWT_TOKEN_EXPIRY",
		"jwt.issuer":            "PROBIMPORT_JWT_ISSUER",
		"log.level":             "PROBIMPORT_LOG_LEVEL",
		"log.format":            "PROBIMPORT_LOG_FORMAT",
		"cors.allowed_origins":  "PROBIMPORT_CORS_ALLOWED_ORIGINS",
		"parse.max_text_bytes":  "PROBIMPORT_PARSE_MAX_TEXT_BYTES",
		"importer.page_base":    "PROBIMPORT_IMPORTER_PAGE_BASE",
		"importer.token":        "PROBIMPORT_IMPORTER_TOKEN",
		"importer.timeout_secs": "PROBIMPORT_IMPORTER_TIMEOUT_SECS",
		"importer.base_delay":   "PROBIMPORT_IMPORTER_BASE_DELAY",
		"importer.row_timeout":  "PROBIMPORT_IMPORTER_ROW_TIMEOUT",

		"importer.local_fallback": "PROBIMPORT_IMPORTER_LOCAL_FALLBACK",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PROBIMPORT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PROBIMPORT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
		Issuer:      v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: SplitOrigins(v.GetString("cors.allowed_origins")),
	}
	cfg.Parse = ParseConfig{
		MaxTextBytes: v.GetInt("parse.max_text_bytes"),
	}
	cfg.Importer = ImporterConfig{
		PageBase:    v.GetString("importer.page_base"),
		Token:       v.GetString("importer.token"),
		TimeoutSecs: v.GetInt("importer.timeout_secs"),
		BaseDelay:   v.GetDuration("importer.base_delay"),
		RowTimeout:  v.GetDuration("importer.row_timeout"),

		LocalFallback: v.GetBool("importer.local_fallback"),
	}

	return cfg, nil
}

// SplitOrigins parses a comma-separated origin list, dropping blanks.
func SplitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
