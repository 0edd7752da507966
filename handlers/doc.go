// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the mat-e-voto API.

# Handler Types

VAAHandler serves the questionnaire, scoring and share-link endpoints. It
holds a catalog.Store and the Config:

	vaaHandler := handlers.NewVAAHandler(catalog.NewSQLStore(db), cfg)

Every request reads a fresh catalog snapshot. Nothing a respondent sends is
stored.

# Scoring

	POST /api/vaa/calculate → Calculate
	POST /api/vaa/share     → Share (returns token, results_url, compare_url)

Both take {"answers": {...}, "topicImportance": {...}}. The body is checked
against a JSON schema first; a malformed body or an unknown answer value is
a 400. A catalog read failure is a 500 "Calculation failed".

Results are ranked by match percentage, then earned points, then party ID.
Each carries the party's display fields (null if the party cannot be
resolved) and a per-topic breakdown.

# Share Views

	GET /vaa/results?data=<token> → Results
	GET /vaa/compare?data=<token> → Compare
	GET /vaa/statements           → Statements

A missing token yields {"error": "no_data"} and a corrupt one
{"error": "invalid_data"}, both with status 200.

# Metrics

Handlers count calculations and share token outcomes in the metrics
package. Tokens and answers are never logged.
*/
package handlers
