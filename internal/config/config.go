package config

import (
	"errors"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	DatabaseURL  string
	LocalDataDir string
	RedisURL     string
	RabbitMQURL  string

	MailHost    string
	MailPort    int
	MailUser    string
	MailPass    string
	MailFrom    string
	NotifyEmail string

	AdminJWTSecret string
	CORSOrigins    []string
	Debug          bool
}

// Load reads .env when present, then the environment.
func Load() (cfg Config, err error) {
	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	cfg.Addr = net.JoinHostPort("", getEnv("PORT", "8080"))
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.LocalDataDir = getEnv("LOCAL_DATA_DIR", "data/financekeem")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")

	cfg.MailHost = os.Getenv("MAIL_HOST")
	cfg.MailUser = os.Getenv("MAIL_USER")
	cfg.MailPass = os.Getenv("MAIL_PASS")
	cfg.MailFrom = getEnv("MAIL_FROM", cfg.MailUser)
	cfg.NotifyEmail = os.Getenv("NOTIFY_EMAIL")
	if cfg.MailPort, err = strconv.Atoi(getEnv("MAIL_PORT", "587")); err != nil {
		return cfg, errors.New("MAIL_PORT must be a number")
	}

	cfg.AdminJWTSecret = os.Getenv("ADMIN_JWT_SECRET")
	for _, o := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	cfg.Debug, _ = strconv.ParseBool(os.Getenv("DEBUG"))

	return cfg, nil
}

func (cfg Config) MailEnabled() bool {
	return cfg.MailHost != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
