package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Host string
		Port int
	}
	Database struct {
		URI     string
		Name    string
		Timeout time.Duration
	}
	Assets struct {
		Root     string
		Bucket   string
		Prefix   string
		Region   string
		Endpoint string
	}
	Validation struct {
		EmailFormat       bool `mapstructure:"email_format"`
		MinPasswordLength int  `mapstructure:"min_password_length"`
	}
	Log struct {
		Level string
	}
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Load reads configuration from environment variables and optional config files.
// PORT and MONGO_URI are honored alongside the RECIPEBOX_ prefixed names.
func Load() (Config, error) {
	// existing environment variables take precedence over .env entries
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("RECIPEBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("server.port", "RECIPEBOX_SERVER_PORT", "PORT")
	_ = v.BindEnv("database.uri", "RECIPEBOX_DATABASE_URI", "MONGO_URI")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("database.uri", "sqlite://data/recipebox.db")
	v.SetDefault("database.name", "recipebox")
	v.SetDefault("database.timeout", 10*time.Second)
	v.SetDefault("assets.root", ".")
	v.SetDefault("assets.bucket", "")
	v.SetDefault("assets.prefix", "")
	v.SetDefault("assets.region", "us-east-1")
	v.SetDefault("assets.endpoint", "")
	v.SetDefault("validation.email_format", false)
	v.SetDefault("validation.min_password_length", 0)
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	if strings.TrimSpace(cfg.Database.URI) == "" {
		return Config{}, fmt.Errorf("database uri is required")
	}
	if cfg.Validation.MinPasswordLength < 0 {
		return Config{}, fmt.Errorf("validation.min_password_length must not be negative")
	}

	return cfg, nil
}
