package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	envPrefix = "LIVECHAT_"

	DefaultSessionTTL = 24 * time.Hour
	DefaultTypingTTL  = 5 * time.Second
)

type Config struct {
	ServerAddr     string
	DatabaseDriver string
	DatabaseDSN    string
	AllowedOrigins []string
	SessionTTL     time.Duration
	TypingTTL      time.Duration
}

func NewConfig(serverAddr, driver, databaseDSN string, allowedOrigins []string, sessionTTL, typingTTL time.Duration) (*Config, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}
	switch driver {
	case "postgres", "pgx", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if databaseDSN == "" {
		return nil, fmt.Errorf("database DSN cannot be empty")
	}
	if sessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	if typingTTL <= 0 {
		return nil, fmt.Errorf("typing ttl must be positive")
	}

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return &Config{
		ServerAddr:     serverAddr,
		DatabaseDriver: driver,
		DatabaseDSN:    databaseDSN,
		AllowedOrigins: allowedOrigins,
		SessionTTL:     sessionTTL,
		TypingTTL:      typingTTL,
	}, nil
}

// LoadDotEnv populates the process environment from the given .env files.
// Missing files are ignored; variables already set are not overridden.
func LoadDotEnv(filenames ...string) error {
	for _, f := range filenames {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	return nil
}

// Env returns the value of LIVECHAT_<key>, or fallback when unset or empty.
func Env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return fallback
}

// EnvDuration is like Env but parses the value with time.ParseDuration.
// Unparseable values yield the fallback.
func EnvDuration(key string, fallback time.Duration) time.Duration {
	v := Env(key, "")
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// EnvList splits a comma-separated LIVECHAT_<key> into its trimmed, non-empty
// elements.
func EnvList(key string) []string {
	return SplitList(Env(key, ""))
}

func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
