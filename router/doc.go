// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the mat-e-voto API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(catalog.NewSQLStore(db), cfg)

# Endpoints

Operational:

	GET /health  - Liveness
	GET /metrics - Prometheus metrics

Scoring (public, stateless):

	POST /api/vaa/calculate - Rank parties for a set of answers
	POST /api/vaa/share     - Encode answers into share links

Questionnaire and share views:

	GET /vaa/statements         - Active statements in order
	GET /vaa/results?data=TOKEN - Ranked results for a share token
	GET /vaa/compare?data=TOKEN - Per-statement comparison data

Unknown paths return 404; GET / returns a short banner.

All API routes are wrapped with middleware.WithLogging, which labels the
request counter with the route pattern.
*/
package router
