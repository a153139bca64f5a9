package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"dev"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"5001"`

	MongoURI string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGODB_DB" envDefault:"setu"`

	JWTSecret        string        `env:"JWT_SECRET" envDefault:"changeme-secret"`
	JWTExpire        time.Duration `env:"JWT_EXPIRE" envDefault:"720h"`
	CookieExpireDays int           `env:"JWT_COOKIE_EXPIRE" envDefault:"30"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Admin User"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`
	RateRPS    int    `env:"RATE_RPS" envDefault:"100"`
}

// IsProd reports whether the app runs in production mode.
func (c Config) IsProd() bool { return c.Env == "prod" }

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
