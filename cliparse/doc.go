// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - PublicURL: Base URL for share links (default: http://localhost:<port>)
  - Seed: Load the demo catalog into an empty database
  - RedisURL: Session storage for the terminal questionnaire (optional)
  - SessionTTL: Idle lifetime of a saved questionnaire (default: 2h)
  - SessionKey: Saved questionnaire to resume (terminal client)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-public-url   Share link base URL
	-seed         Seed demo catalog
	-redis        Redis URL
	-session-ttl  Session idle lifetime
	-session      Session key to resume
	-env          .env file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	PUBLIC_URL    → -public-url
	SEED_CATALOG  → -seed
	REDIS_URL     → -redis
	SESSION_TTL   → -session-ttl
	VAA_SESSION   → -session

Variables from the .env file are loaded first and never override variables
already set in the environment. CLI flags take precedence over both.

# Validation

ParseFlags returns an error if the database URL is missing, the database type
is not sqlite or postgres, or an environment value cannot be parsed.
*/
package cliparse
