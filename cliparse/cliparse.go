package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	CORSOrigin   string
	SessionTTL   time.Duration
}

// ParseFlags validates flags and sets port number.
// Precedence is CLI flag, then environment (optionally seeded from an env file), then defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	flags := flag.NewFlagSet("nomad-korea", flag.ContinueOnError)

	flags.IntVar(&cfg.Port, "p", 0, "Server port")
	flags.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	flags.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	flags.StringVar(&cfg.CORSOrigin, "cors-origin", "", "Allowed CORS origin (default: echo request origin)")
	flags.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Login session lifetime")
	flags.StringVar(&envFile, "env", ".env", "Env file to load before reading environment")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	// Already-set environment variables win over the file
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = inferDatabaseType(cfg.DatabaseURL)
	}
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
	}

	if cfg.SessionTTL == 0 {
		if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
			d, err := time.ParseDuration(ttl)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = d
		} else {
			cfg.SessionTTL = 30 * 24 * time.Hour
		}
	}

	return cfg, nil
}

func inferDatabaseType(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DatabasePostgres
	}
	return DatabaseSQLite
}
