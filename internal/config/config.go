package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Postgres
	HTTPServer
	Auth
	Mail
	Cache
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type Postgres struct {
	URL          string `env:"DATABASE_URL" env-default:"host=localhost user=postgres password=postgres dbname=boardhub port=5432 sslmode=disable TimeZone=Asia/Seoul"`
	Isolation    string `env:"DB_ISOLATION" env-default:"serializable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"20"`
}

type HTTPServer struct {
	BindAddress     string        `env:"BIND_ADDRESS" env-default:""`
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" env-separator:"," env-default:"*"`
}

type Auth struct {
	Secret string        `env:"JWT_SECRET" env-required:"true"`
	TTL    time.Duration `env:"JWT_TTL" env-default:"24h"`
	Issuer string        `env:"JWT_ISSUER" env-default:"boardhub"`

	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
	GoogleCertsURL string `env:"GOOGLE_CERTS_URL" env-default:"https://www.googleapis.com/oauth2/v3/certs"`
}

type Mail struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM" env-default:"noreply@boardhub.local"`
}

type Cache struct {
	Size int           `env:"CACHE_SIZE" env-default:"500"`
	TTL  time.Duration `env:"CACHE_TTL" env-default:"30s"`
}

// New reads the environment into a Config. A missing env file is not an error.
func New(envFile string) (*Config, error) {
	conf := &Config{}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("godotenv.Load: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	return conf, nil
}

func (h HTTPServer) Addr() string {
	return fmt.Sprintf("%s:%s", h.BindAddress, h.Port)
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
