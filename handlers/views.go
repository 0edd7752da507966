// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/mat-e-voto/catalog"
	"github.com/danielhkuo/mat-e-voto/metrics"
	"github.com/danielhkuo/mat-e-voto/middleware"
	"github.com/danielhkuo/mat-e-voto/models"
	"github.com/danielhkuo/mat-e-voto/sharetoken"
)

// Statements handles GET /vaa/statements
// Returns active statements in questionnaire order, each with its topic.
func (h *VAAHandler) Statements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statements, err := h.store.ActiveStatements(ctx)
	if err != nil {
		slog.Error("failed to load statements", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	topics, err := h.store.Topics(ctx)
	if err != nil {
		slog.Error("failed to load topics", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	snap := catalog.NewSnapshot(statements, topics, nil, nil)
	middleware.JSONResponse(w, http.StatusOK, models.StatementsResponse{
		Statements: snap.StatementsWithTopics(),
	})
}

// Results handles GET /vaa/results?data=<token>
// A missing or corrupt token is a normal outcome: 200 with an error code so
// the page can offer to retake the questionnaire.
func (h *VAAHandler) Results(w http.ResponseWriter, r *http.Request) {
	payload, errCode := decodeShareParam(r, endpointResults)
	if errCode != "" {
		middleware.JSONResponse(w, http.StatusOK, models.ResultsView{
			Error:   &errCode,
			Results: []models.PartyMatch{},
		})
		return
	}

	start := time.Now()
	results, err := h.match(r.Context(), payload.Answers, payload.TopicImportance)
	metrics.CalculationDuration.WithLabelValues(endpointResults).Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Error("failed to calculate shared results", "error", err)
		metrics.Calculations.WithLabelValues(endpointResults, metrics.OutcomeServerError).Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Calculation failed")
		return
	}
	metrics.Calculations.WithLabelValues(endpointResults, metrics.OutcomeOK).Inc()

	middleware.JSONResponse(w, http.StatusOK, models.ResultsView{
		Results:       results,
		AnsweredCount: len(payload.Answers),
	})
}

// Compare handles GET /vaa/compare?data=<token>
// Returns everything needed to show the user's answer next to each party's
// position, statement by statement.
func (h *VAAHandler) Compare(w http.ResponseWriter, r *http.Request) {
	payload, errCode := decodeShareParam(r, endpointCompare)
	if errCode != "" {
		middleware.JSONResponse(w, http.StatusOK, models.CompareView{
			Error:       &errCode,
			Statements:  []models.StatementWithTopic{},
			Parties:     []models.Party{},
			Topics:      []models.Topic{},
			UserAnswers: map[string]models.UserAnswer{},
			PositionMap: map[string]map[string]models.Position{},
		})
		return
	}

	snap, err := catalog.LoadSnapshot(r.Context(), h.store)
	if err != nil {
		slog.Error("failed to load catalog for comparison", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CompareView{
		Statements:  snap.StatementsWithTopics(),
		Parties:     snap.Parties,
		Topics:      snap.Topics,
		UserAnswers: payload.Answers,
		PositionMap: snap.PositionMap(),
	})
}

// decodeShareParam reads ?data=. It returns a view error code when the token
// is absent or cannot be decoded.
func decodeShareParam(r *http.Request, endpoint string) (sharetoken.Payload, string) {
	token := r.URL.Query().Get("data")
	if token == "" {
		metrics.ShareTokens.WithLabelValues("decode", metrics.OutcomeNoData).Inc()
		return sharetoken.Payload{}, models.ViewErrorNoData
	}

	payload, ok := sharetoken.Decode(token)
	if !ok {
		// The token itself is not logged
		slog.Warn("invalid share token", "endpoint", endpoint, "length", len(token))
		metrics.ShareTokens.WithLabelValues("decode", metrics.OutcomeInvalid).Inc()
		return sharetoken.Payload{}, models.ViewErrorInvalidData
	}

	metrics.ShareTokens.WithLabelValues("decode", metrics.OutcomeOK).Inc()
	return payload, ""
}
