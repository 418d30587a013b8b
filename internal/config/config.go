// internal/config/config.go
// Configuration loader from environment variables
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	BackendXML   = "xml"
	BackendMySQL = "mysql"
)

type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	StaticDir    string
	TemplatesDir string
	MaxBodyBytes int64

	ShutdownTimeout time.Duration

	Weather struct {
		APIKey  string
		BaseURL string
		Timeout time.Duration
	}

	Store struct {
		Backend    string // xml (default) | mysql
		CitiesFile string
		DSN        string
	}

	Admin struct {
		JWTSecret string // empty disables the guard on city writes
		User      string
		PassHash  string // bcrypt
		TokenTTL  time.Duration
	}
}

func Load() *Config {
	c := &Config{}
	c.AppName = getEnv("APP_NAME", "weather-xml")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppPort = getEnv("APP_PORT", "5001")

	c.StaticDir = getEnv("STATIC_DIR", "static")
	c.TemplatesDir = getEnv("TEMPLATES_DIR", "templates")
	c.MaxBodyBytes = int64(getEnvInt("MAX_BODY_BYTES", 1<<20))
	c.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second)

	c.Weather.APIKey = getEnv("OPENWEATHER_API_KEY", "")
	c.Weather.BaseURL = getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org")
	c.Weather.Timeout = getEnvDuration("WEATHER_TIMEOUT", 8*time.Second)

	c.Store.Backend = strings.ToLower(getEnv("STORE_BACKEND", BackendXML))
	c.Store.CitiesFile = getEnv("CITIES_FILE", "cities.xml")
	c.Store.DSN = getEnv("DB_DSN", "")

	c.Admin.JWTSecret = getEnv("ADMIN_JWT_SECRET", "")
	c.Admin.User = getEnv("ADMIN_USER", "")
	c.Admin.PassHash = getEnv("ADMIN_PASS_HASH", "")
	c.Admin.TokenTTL = getEnvDuration("ADMIN_TOKEN_TTL", 24*time.Hour)

	if c.Weather.APIKey == "" {
		log.Println("[WARN] OPENWEATHER_API_KEY is not set, /weather requests will fail upstream")
	}

	return c
}

func (c *Config) Addr() string { return ":" + c.AppPort }

// Validate reports settings the process cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendXML:
		if c.Store.CitiesFile == "" {
			return fmt.Errorf("CITIES_FILE must not be empty")
		}
	case BackendMySQL:
		if c.Store.DSN == "" {
			return fmt.Errorf("DB_DSN is required when STORE_BACKEND=mysql")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want %s or %s)", c.Store.Backend, BackendXML, BackendMySQL)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return nil
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

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("[WARN] %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}
