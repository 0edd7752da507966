// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Logging

WithLogging wraps a handler with structured request logging (log/slog) and
counts the request in the http_requests_total metric:

	mux.HandleFunc("POST /api/vaa/calculate", middleware.WithLogging("/api/vaa/calculate", h.Calculate))

Only the method, path, status and duration are logged. Query strings carry
share tokens and are never logged.

# CORS

CORS wraps the whole mux:

	handler := middleware.CORS(mux)

Preflight OPTIONS requests are answered with 200 directly.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "answers must be an object")
	body, err := middleware.ReadBody(r)
	err := middleware.ParseJSONBody(r, &req)

ErrorResponse writes models.ErrorResponse with the status text as "error".
Bodies larger than MaxBodyBytes are rejected.
*/
package middleware
