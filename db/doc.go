// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and demo data.

# Connecting

Open accepts "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite):

	conn, err := db.Open("sqlite", "file:matevoto.db")

SQLite connections are limited to one open connection and have foreign keys
enabled.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - topic: Statement groupings (weighting and breakdown key)
  - party: Parties being matched
  - statement: Propositions, ordered per topic, with an active flag
  - party_position: A party's AGREE/NEUTRAL/DISAGREE stance on a statement

# Relationships

	topic 1──* statement
	party *──* statement (via party_position)

All foreign keys use ON DELETE CASCADE. A missing party_position row means
the party has no recorded stance, which is not the same as NEUTRAL.

# Demo Data

SeedCatalog inserts the embedded demo catalog into an empty database. Rows
get fresh UUIDs.

# Placeholders

Queries are written with $N placeholders; Rebind converts them for SQLite.
*/
package db
