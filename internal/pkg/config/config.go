package config

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT    JWTConfig
	Cookie CookieConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Seed   SeedConfig
}

type JWTConfig struct {
	Secret string `env:"JWT_SECRET"`
	// ExpirationMinutes is the token TTL; the cookie max-age derives from it.
	ExpirationMinutes int `env:"JWT_EXPIRATION_MINUTES, default=60"`
}

// TTL returns the token lifetime as a duration.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationMinutes) * time.Minute
}

type CookieConfig struct {
	Name     string `env:"JWT_COOKIE_NAME,      default=gamevault_token"`
	Path     string `env:"JWT_COOKIE_PATH,      default=/api/v1"`
	HTTPOnly bool   `env:"JWT_COOKIE_HTTP_ONLY, default=true"`
	Secure   bool   `env:"JWT_COOKIE_SECURE,    default=false"`
	SameSite string `env:"JWT_COOKIE_SAME_SITE, default=strict"`
}

// SameSiteMode maps the configured string onto the http.SameSite enum,
// defaulting to Strict for unknown values.
func (c CookieConfig) SameSiteMode() http.SameSite {
	switch strings.ToLower(c.SameSite) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gamevault"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SeedConfig describes the bootstrap accounts created at startup when their
// username is still free. A blank password disables the account entirely.
type SeedConfig struct {
	AdminUsername string `env:"SEED_ADMIN_USERNAME, default=admin"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	UserUsername  string `env:"SEED_USER_USERNAME,  default=user"`
	UserPassword  string `env:"SEED_USER_PASSWORD"`
	UserEmail     string `env:"SEED_USER_EMAIL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
