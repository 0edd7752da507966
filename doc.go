// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the mat-e-voto API server.

mat-e-voto is a Voting Advice Application: a respondent reacts to political
statements (agree, neutral, disagree, or skip), may mark topics as
important, and gets a ranked list of parties by how closely their recorded
positions match. Nothing the respondent answers is stored; results are
shared through a self-contained token in the URL.

# Starting the Server

With the bundled demo catalog on SQLite:

	DATABASE_URL=vaa.db SEED_CATALOG=true go run .

Or against PostgreSQL with flags:

	go run . -t postgres -d "postgres://..." -public-url https://vaa.example

# Configuration

Settings come from flags, then the environment, then a .env file:

  - DATABASE_URL (-d): connection string or SQLite path (required)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): server port (default: 3318)
  - PUBLIC_URL (-public-url): base of share links (default: http://localhost:PORT)
  - SEED_CATALOG (-seed): load the demo catalog into an empty database

# Architecture

  - matching: scoring engine (pure, no I/O)
  - session: questionnaire state machine and its storage slot
  - sharetoken: share token codec
  - catalog: read-only statement/topic/party store
  - handlers, router, middleware: HTTP surface
  - validation: request body schemas
  - metrics: Prometheus collectors
  - db: schema, dialects, demo seed
  - cliparse: configuration parsing

The terminal questionnaire lives in cmd/vaa-quiz.
*/
package main
