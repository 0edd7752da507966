// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/danielhkuo/mat-e-voto/catalog"
	"github.com/danielhkuo/mat-e-voto/cliparse"
	"github.com/danielhkuo/mat-e-voto/metrics"
	"github.com/danielhkuo/mat-e-voto/middleware"
	"github.com/danielhkuo/mat-e-voto/models"
	"github.com/danielhkuo/mat-e-voto/sharetoken"
	"github.com/danielhkuo/mat-e-voto/validation"
)

// Metric endpoint labels
const (
	endpointCalculate = "calculate"
	endpointShare     = "share"
	endpointResults   = "results"
	endpointCompare   = "compare"
)

type VAAHandler struct {
	store catalog.Store
	cfg   cliparse.Config
}

func NewVAAHandler(store catalog.Store, cfg cliparse.Config) *VAAHandler {
	return &VAAHandler{store: store, cfg: cfg}
}

// Calculate handles POST /api/vaa/calculate
// Scores every party against the submitted answers. Nothing is stored.
func (h *VAAHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, ok := readCalculateRequest(w, r, endpointCalculate)
	if !ok {
		return
	}

	start := time.Now()
	results, err := h.match(r.Context(), req.Answers, req.TopicImportance)
	metrics.CalculationDuration.WithLabelValues(endpointCalculate).Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Error("failed to calculate matches", "error", err)
		metrics.Calculations.WithLabelValues(endpointCalculate, metrics.OutcomeServerError).Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Calculation failed")
		return
	}

	metrics.Calculations.WithLabelValues(endpointCalculate, metrics.OutcomeOK).Inc()
	slog.Info("matches calculated",
		"answers", len(req.Answers),
		"parties", len(results),
	)

	middleware.JSONResponse(w, http.StatusOK, models.CalculateResponse{Results: results})
}

// Share handles POST /api/vaa/share
// Encodes the answers into a share token. The token is the only record.
func (h *VAAHandler) Share(w http.ResponseWriter, r *http.Request) {
	req, ok := readCalculateRequest(w, r, endpointShare)
	if !ok {
		return
	}

	token := sharetoken.Encode(req.Answers, req.TopicImportance)
	metrics.ShareTokens.WithLabelValues("encode", metrics.OutcomeOK).Inc()

	response := models.ShareResponse{
		Token:      token,
		ResultsURL: h.shareURL("/vaa/results", token),
		CompareURL: h.shareURL("/vaa/compare", token),
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

func (h *VAAHandler) shareURL(path, token string) string {
	return h.cfg.PublicURL + path + "?data=" + url.QueryEscape(token)
}

// readCalculateRequest validates and decodes a calculate/share body.
// On failure the 400 response has already been written.
func readCalculateRequest(w http.ResponseWriter, r *http.Request, endpoint string) (models.CalculateRequest, bool) {
	var req models.CalculateRequest

	body, err := middleware.ReadBody(r)
	if err != nil {
		metrics.Calculations.WithLabelValues(endpoint, metrics.OutcomeClientError).Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return req, false
	}

	if err := validation.CalculateRequest(body); err != nil {
		metrics.Calculations.WithLabelValues(endpoint, metrics.OutcomeClientError).Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, validationMessage(err))
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		metrics.Calculations.WithLabelValues(endpoint, metrics.OutcomeClientError).Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return req, false
	}

	return req, true
}

func validationMessage(err error) string {
	if errors.Is(err, validation.ErrInvalidJSON) {
		return "Invalid JSON body"
	}

	var verr *validation.Error
	if errors.As(err, &verr) && verr.Has("topicImportance") && !verr.Has("answers") && !verr.Has("(root)") {
		return "Invalid topicImportance"
	}

	return "Invalid answers"
}
