package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"5000"`
	GinMode  string `envconfig:"GIN_MODE"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBDriver    string `envconfig:"DB_DRIVER" default:"mysql"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	MySQLURL    string `envconfig:"MYSQL_URL"`
	DBUser      string `envconfig:"DB_USER" default:"root"`
	DBPass      string `envconfig:"DB_PASS"`
	DBHost      string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort      string `envconfig:"DB_PORT" default:"3306"`
	DBName      string `envconfig:"DB_NAME" default:"hotel_db"`

	CORSOrigins string `envconfig:"CORS_ORIGINS"`
	UploadDir   string `envconfig:"UPLOAD_DIR" default:"uploads"`

	CloudName      string `envconfig:"CLOUD_NAME"`
	CloudAPIKey    string `envconfig:"CLOUD_API_KEY"`
	CloudAPISecret string `envconfig:"CLOUD_API_SECRET"`
	CloudFolder    string `envconfig:"CLOUD_FOLDER" default:"hotel-rooms"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"720h"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case "mysql", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// InMemory reports whether records live only in process memory.
func (c *Config) InMemory() bool {
	return c.DBDriver == "memory"
}

// RemoteUploads reports whether all object-storage credentials are present.
func (c *Config) RemoteUploads() bool {
	return c.CloudName != "" && c.CloudAPIKey != "" && c.CloudAPISecret != ""
}

// AllowedOrigins splits CORS_ORIGINS; empty means any origin.
func (c *Config) AllowedOrigins() []string {
	raw := strings.TrimSpace(c.CORSOrigins)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
