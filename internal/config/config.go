package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendURL   string
	ListenAddr   string
	RedisAddr    string
	SessionTTL   time.Duration
	CalendarDays int
	OTLPEndpoint string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionTTL, _ := time.ParseDuration(os.Getenv("SESSION_TTL"))
	if sessionTTL == 0 {
		sessionTTL = 2 * time.Hour
	}

	calendarDays, _ := strconv.Atoi(os.Getenv("CALENDAR_DAYS"))
	if calendarDays == 0 {
		calendarDays = 6
	}

	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "https://jscp-diplom.netoserver.ru/"
	}

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	return &Config{
		BackendURL:   backendURL,
		ListenAddr:   listenAddr,
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		SessionTTL:   sessionTTL,
		CalendarDays: calendarDays,
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}
