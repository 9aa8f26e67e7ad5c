package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string
	Location    *time.Location
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string
	JWTSecret   string
	// ClassChangeFee — фиксированная плата за перевод в другую группу.
	ClassChangeFee int64
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Asia/Ulaanbaatar")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	fee, err := parseInt64(getenv("CLASS_CHANGE_FEE", "88000"))
	if err != nil {
		return nil, fmt.Errorf("CLASS_CHANGE_FEE: %w", err)
	}

	cfg := &Config{
		DatabaseURL:    mustEnv("DATABASE_URL"),
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		Location:       loc,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		Env:            getenv("ENV", "dev"),
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		JWTSecret:      mustEnv("JWT_SECRET"),
		ClassChangeFee: fee,
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", s, err)
	}
	return n, nil
}
