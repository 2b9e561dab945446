package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultRateAPIBase     = "https://api.frankfurter.app/latest"
	DefaultDialTimeout     = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port            string
	ShutdownTimeout time.Duration
	// Rate endpoint
	Provider       string
	FakeRate       string
	RateAPIBase    string
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	// Form
	NumericPolicy string
	DisplayPolicy string
	DefaultFrom   string
	DefaultTo     string
	AutoConvert   bool
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return def
	}
	return i
}

func durMS(key string, def time.Duration) time.Duration {
	defMS := int(def / time.Millisecond)
	return time.Duration(atoiDef(getEnv(key, strconv.Itoa(defMS)), defMS)) * time.Millisecond
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:             getEnv("ENV", "local"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: durMS("SHUTDOWN_TIMEOUT_MS", DefaultShutdownTimeout),
		Provider:        getEnv("PROVIDER", "http"),
		FakeRate:        getEnv("FAKE_RATE", "4.5"),
		RateAPIBase:     getEnv("RATE_API_BASE", DefaultRateAPIBase),
		DialTimeout:     durMS("DIAL_TIMEOUT_MS", DefaultDialTimeout),
		RequestTimeout:  durMS("REQUEST_TIMEOUT_MS", 0),
		NumericPolicy:   getEnv("NUMERIC_POLICY", "decimal"),
		DisplayPolicy:   getEnv("DISPLAY_POLICY", "trimmed"),
		DefaultFrom:     getEnv("DEFAULT_FROM", "CNY"),
		DefaultTo:       getEnv("DEFAULT_TO", "THB"),
		AutoConvert:     boolDef(getEnv("AUTO_CONVERT", "false"), false),
	}
}
