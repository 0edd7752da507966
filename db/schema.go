// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL is portable between Postgres and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Topics
CREATE TABLE IF NOT EXISTS topic (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    name_en TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Parties
CREATE TABLE IF NOT EXISTS party (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    name_en TEXT NOT NULL DEFAULT '',
    short_name TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    logo_url TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Statements
CREATE TABLE IF NOT EXISTS statement (
    id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL REFERENCES topic(id) ON DELETE CASCADE,
    slug TEXT NOT NULL UNIQUE,
    text TEXT NOT NULL,
    text_en TEXT NOT NULL DEFAULT '',
    text_sr TEXT NOT NULL DEFAULT '',
    sort_order INTEGER NOT NULL DEFAULT 0,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_statement_topic_id ON statement(topic_id);
CREATE INDEX IF NOT EXISTS idx_statement_active ON statement(is_active);

-- Party positions (absence means no recorded stance)
CREATE TABLE IF NOT EXISTS party_position (
    party_id TEXT NOT NULL REFERENCES party(id) ON DELETE CASCADE,
    statement_id TEXT NOT NULL REFERENCES statement(id) ON DELETE CASCADE,
    position TEXT NOT NULL CHECK (position IN ('AGREE', 'NEUTRAL', 'DISAGREE')),
    PRIMARY KEY (party_id, statement_id)
);

CREATE INDEX IF NOT EXISTS idx_party_position_statement_id ON party_position(statement_id);
`
