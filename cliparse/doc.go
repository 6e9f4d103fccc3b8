// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Postgres URL or SQLite file path (required)
  - DatabaseType: "postgres" or "sqlite" (inferred from the URL when unset)
  - CORSOrigin: Allowed origin; empty echoes the request origin
  - SessionTTL: Login session lifetime (default: 720h)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-cors-origin  Allowed CORS origin
	-session-ttl  Session lifetime
	-env          Env file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	CORS_ORIGIN   → -cors-origin
	SESSION_TTL   → -session-ttl

The env file is loaded with godotenv before the fallback runs. Variables
already present in the process environment are not overwritten, and a
missing file is not an error.

CLI flags take precedence over environment variables.
*/
package cliparse
