package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Database struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type Notifier struct {
	// URL of the SMS / WhatsApp HTTP API. Empty selects the log gateway.
	URL     string
	Token   string
	Sender  string
	Timeout time.Duration
}

type Config struct {
	Port          string
	Env           string
	Database      Database
	RedisAddr     string
	KafkaBroker   string
	JWTSecret     string
	AllowOrigins  []string
	DefaultLocale string
	Notifier      Notifier
	SeedFile      string

	// ReleaseWorkloadOnComplete gives the assignee one unit of capacity back
	// when a coverage assignment is completed.
	ReleaseWorkloadOnComplete bool
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("APP_ENV", "development"),
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "coverage"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		KafkaBroker:   getEnv("KAFKA_BROKER", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AllowOrigins:  splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		Notifier: Notifier{
			URL:     strings.TrimRight(getEnv("NOTIFIER_URL", ""), "/"),
			Token:   getEnv("NOTIFIER_TOKEN", ""),
			Sender:  getEnv("NOTIFIER_SENDER", "LeaveCover"),
			Timeout: getDuration("NOTIFIER_TIMEOUT", 15*time.Second),
		},
		SeedFile:                  getEnv("SEED_FILE", ""),
		ReleaseWorkloadOnComplete: getBool("RELEASE_WORKLOAD_ON_COMPLETE", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
