// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/mat-e-voto/catalog"
	"github.com/danielhkuo/mat-e-voto/matching"
	"github.com/danielhkuo/mat-e-voto/middleware"
	"github.com/danielhkuo/mat-e-voto/models"
	"github.com/danielhkuo/mat-e-voto/sharetoken"
	"github.com/danielhkuo/mat-e-voto/testutil"
)

func setupHandler(t *testing.T) (*VAAHandler, *sql.DB) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	testutil.CreateTestCatalog(t, conn)

	return NewVAAHandler(catalog.NewSQLStore(conn), testutil.GetTestConfig()), conn
}

func findMatch(results []models.PartyMatch, partyID string) *models.PartyMatch {
	for i := range results {
		if results[i].PartyID == partyID {
			return &results[i]
		}
	}
	return nil
}

func TestCalculate(t *testing.T) {
	handler, _ := setupHandler(t)

	tests := []struct {
		name          string
		body          string
		checkResponse func(t *testing.T, results []models.PartyMatch)
	}{
		{
			name: "equal weights",
			body: `{"answers": {"s1": "AGREE", "s2": "NEUTRAL", "s3": "DISAGREE"}}`,
			checkResponse: func(t *testing.T, results []models.PartyMatch) {
				require.Len(t, results, 3)

				// P1: 2 + 1 + 1 of 6; P2: 0 + 1 of 4
				assert.Equal(t, "P1", results[0].PartyID)
				assert.Equal(t, 67, results[0].MatchPercentage)
				assert.Equal(t, 4, results[0].TotalPoints)
				assert.Equal(t, 6, results[0].MaxPossiblePoints)

				assert.Equal(t, "P2", results[1].PartyID)
				assert.Equal(t, 25, results[1].MatchPercentage)
				assert.Equal(t, 1, results[1].TotalPoints)
				assert.Equal(t, 4, results[1].MaxPossiblePoints)
			},
		},
		{
			name: "important topic doubles its statements",
			body: `{"answers": {"s1": "AGREE", "s2": "NEUTRAL", "s3": "DISAGREE"}, "topicImportance": {"A": true}}`,
			checkResponse: func(t *testing.T, results []models.PartyMatch) {
				p1 := findMatch(results, "P1")
				require.NotNil(t, p1)
				assert.Equal(t, 7, p1.TotalPoints)
				assert.Equal(t, 10, p1.MaxPossiblePoints)
				assert.Equal(t, 70, p1.MatchPercentage)

				p2 := findMatch(results, "P2")
				require.NotNil(t, p2)
				assert.Equal(t, 2, p2.TotalPoints)
				assert.Equal(t, 8, p2.MaxPossiblePoints)
				assert.Equal(t, 25, p2.MatchPercentage)
			},
		},
		{
			name: "party without positions scores zero last",
			body: `{"answers": {"s1": "AGREE"}}`,
			checkResponse: func(t *testing.T, results []models.PartyMatch) {
				require.Len(t, results, 3)
				last := results[2]
				assert.Equal(t, "P3", last.PartyID)
				assert.Equal(t, 0, last.MatchPercentage)
				assert.Equal(t, 0, last.MaxPossiblePoints)
				assert.Empty(t, last.TopicBreakdown)
				require.NotNil(t, last.Party)
				assert.Equal(t, "Party Three", last.Party.Name)
			},
		},
		{
			name: "all skipped",
			body: `{"answers": {"s1": "SKIP", "s2": "SKIP", "s3": "SKIP"}, "topicImportance": null}`,
			checkResponse: func(t *testing.T, results []models.PartyMatch) {
				require.Len(t, results, 3)
				for _, r := range results {
					assert.Equal(t, 0, r.MatchPercentage, r.PartyID)
					assert.Equal(t, 0, r.MaxPossiblePoints, r.PartyID)
				}
				// Ties resolve by party ID
				assert.Equal(t, []string{"P1", "P2", "P3"}, []string{results[0].PartyID, results[1].PartyID, results[2].PartyID})
			},
		},
		{
			name: "unknown statements are ignored",
			body: `{"answers": {"s1": "AGREE", "nope": "DISAGREE"}}`,
			checkResponse: func(t *testing.T, results []models.PartyMatch) {
				p1 := findMatch(results, "P1")
				require.NotNil(t, p1)
				assert.Equal(t, 2, p1.MaxPossiblePoints)
				assert.Equal(t, 100, p1.MatchPercentage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/vaa/calculate", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Calculate(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var resp models.CalculateResponse
			testutil.AssertJSON(t, w, &resp)
			tt.checkResponse(t, resp.Results)
		})
	}
}

func TestCalculateTopicBreakdown(t *testing.T) {
	handler, _ := setupHandler(t)

	body := `{"answers": {"s1": "AGREE", "s2": "AGREE", "s3": "AGREE"}}`
	req := testutil.MakeRequest("POST", "/api/vaa/calculate", body, nil)
	w := httptest.NewRecorder()
	handler.Calculate(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.CalculateResponse
	testutil.AssertJSON(t, w, &resp)

	p1 := findMatch(resp.Results, "P1")
	require.NotNil(t, p1)
	require.NotNil(t, p1.Party)
	assert.Equal(t, "#ff0000", p1.Party.Color)
	require.Len(t, p1.TopicBreakdown, 2)

	byTopic := map[string]models.TopicBreakdown{}
	for _, tb := range p1.TopicBreakdown {
		byTopic[tb.TopicID] = tb
	}

	// s1 AGREE/AGREE = 2, s2 AGREE/DISAGREE = 0
	a := byTopic["A"]
	assert.Equal(t, "Alpha", a.TopicName)
	assert.Equal(t, "Alpha EN", a.TopicNameEn)
	assert.Equal(t, "economy", a.TopicIcon)
	assert.Equal(t, 2, a.Score)
	assert.Equal(t, 4, a.MaxScore)
	assert.Equal(t, 50, a.Percentage)

	// s3 AGREE/NEUTRAL = 1
	b := byTopic["B"]
	assert.Equal(t, 1, b.Score)
	assert.Equal(t, 2, b.MaxScore)
	assert.Equal(t, 50, b.Percentage)

	// P2 has no position in topic B, so B is absent from its breakdown
	p2 := findMatch(resp.Results, "P2")
	require.NotNil(t, p2)
	require.Len(t, p2.TopicBreakdown, 1)
	assert.Equal(t, "A", p2.TopicBreakdown[0].TopicID)
}

func TestCalculateIgnoresInactiveStatements(t *testing.T) {
	handler, conn := setupHandler(t)

	testutil.AddTestStatement(t, conn, models.Statement{ID: "s4", TopicID: "A", Order: 3, IsActive: false})
	testutil.AddTestPosition(t, conn, "P2", "s4", models.PositionAgree)

	body := `{"answers": {"s1": "AGREE", "s4": "AGREE"}}`
	req := testutil.MakeRequest("POST", "/api/vaa/calculate", body, nil)
	w := httptest.NewRecorder()
	handler.Calculate(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.CalculateResponse
	testutil.AssertJSON(t, w, &resp)

	p2 := findMatch(resp.Results, "P2")
	require.NotNil(t, p2)
	assert.Equal(t, 0, p2.TotalPoints)
	assert.Equal(t, 2, p2.MaxPossiblePoints)
}

func TestCalculateBadRequest(t *testing.T) {
	handler, _ := setupHandler(t)

	tests := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{"malformed JSON", `{"answers":`, "Invalid JSON body"},
		{"body is an array", `[]`, "Invalid answers"},
		{"missing answers", `{}`, "Invalid answers"},
		{"answers is an array", `{"answers": ["AGREE"]}`, "Invalid answers"},
		{"answers is a string", `{"answers": "AGREE"}`, "Invalid answers"},
		{"unknown answer value", `{"answers": {"s1": "MAYBE"}}`, "Invalid answers"},
		{"lowercase answer value", `{"answers": {"s1": "agree"}}`, "Invalid answers"},
		{"null answer value", `{"answers": {"s1": null}}`, "Invalid answers"},
		{"non-boolean importance", `{"answers": {"s1": "AGREE"}, "topicImportance": {"A": "yes"}}`, "Invalid topicImportance"},
		{"importance is an array", `{"answers": {}, "topicImportance": [true]}`, "Invalid topicImportance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/vaa/calculate", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Calculate(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestCalculateCatalogFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT s.id").WillReturnError(errors.New("connection reset"))

	handler := NewVAAHandler(catalog.NewSQLStore(conn), testutil.GetTestConfig())
	req := testutil.MakeRequest("POST", "/api/vaa/calculate", `{"answers": {"s1": "AGREE"}}`, nil)
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	assert.Equal(t, "Calculation failed", resp.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShare(t *testing.T) {
	handler, _ := setupHandler(t)

	body := `{"answers": {"s1": "AGREE", "s2": "SKIP"}, "topicImportance": {"A": true}}`
	req := testutil.MakeRequest("POST", "/api/vaa/share", body, nil)
	w := httptest.NewRecorder()

	handler.Share(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ShareResponse
	testutil.AssertJSON(t, w, &resp)

	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "http://vaa.test/vaa/results?data="+resp.Token, resp.ResultsURL)
	assert.Equal(t, "http://vaa.test/vaa/compare?data="+resp.Token, resp.CompareURL)
	assert.NotContains(t, resp.Token, "=")

	payload, ok := sharetoken.Decode(resp.Token)
	require.True(t, ok)
	assert.Equal(t, map[string]models.UserAnswer{"s1": models.AnswerAgree, "s2": models.AnswerSkip}, payload.Answers)
	assert.Equal(t, map[string]bool{"A": true}, payload.TopicImportance)
}

func TestShareBadRequest(t *testing.T) {
	handler, _ := setupHandler(t)

	req := testutil.MakeRequest("POST", "/api/vaa/share", `{"answers": {"s1": "YES"}}`, nil)
	w := httptest.NewRecorder()

	handler.Share(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestResults(t *testing.T) {
	handler, _ := setupHandler(t)

	validToken := sharetoken.Encode(map[string]models.UserAnswer{
		"s1": models.AnswerAgree,
		"s2": models.AnswerDisagree,
		"s3": models.AnswerSkip,
	}, nil)

	tests := []struct {
		name          string
		query         string
		expectedError string
		checkResponse func(t *testing.T, view models.ResultsView)
	}{
		{
			name:          "missing data",
			query:         "",
			expectedError: models.ViewErrorNoData,
		},
		{
			name:          "empty data",
			query:         "?data=",
			expectedError: models.ViewErrorNoData,
		},
		{
			name:          "not base64",
			query:         "?data=%21%21%21",
			expectedError: models.ViewErrorInvalidData,
		},
		{
			name:          "truncated token",
			query:         "?data=" + validToken[:len(validToken)/2],
			expectedError: models.ViewErrorInvalidData,
		},
		{
			name:  "valid token",
			query: "?data=" + validToken,
			checkResponse: func(t *testing.T, view models.ResultsView) {
				// SKIP answers still count as answered
				assert.Equal(t, 3, view.AnsweredCount)
				require.Len(t, view.Results, 3)
				assert.Equal(t, "P1", view.Results[0].PartyID)
				assert.Equal(t, 100, view.Results[0].MatchPercentage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/vaa/results"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.Results(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)
			var view models.ResultsView
			testutil.AssertJSON(t, w, &view)

			if tt.expectedError != "" {
				require.NotNil(t, view.Error)
				assert.Equal(t, tt.expectedError, *view.Error)
				assert.Empty(t, view.Results)
				return
			}

			assert.Nil(t, view.Error)
			tt.checkResponse(t, view)
		})
	}
}

func TestCompare(t *testing.T) {
	handler, _ := setupHandler(t)

	token := sharetoken.Encode(map[string]models.UserAnswer{"s1": models.AnswerNeutral}, nil)
	req := httptest.NewRequest("GET", "/vaa/compare?data="+token, nil)
	w := httptest.NewRecorder()

	handler.Compare(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var view models.CompareView
	testutil.AssertJSON(t, w, &view)

	assert.Nil(t, view.Error)
	assert.Len(t, view.Statements, 3)
	assert.Len(t, view.Parties, 3)
	assert.Len(t, view.Topics, 2)
	assert.Equal(t, models.AnswerNeutral, view.UserAnswers["s1"])
	assert.Equal(t, models.PositionAgree, view.PositionMap["s1"]["P1"])
	assert.Equal(t, models.PositionDisagree, view.PositionMap["s1"]["P2"])

	// No recorded stance is absent, not NEUTRAL
	_, ok := view.PositionMap["s3"]["P2"]
	assert.False(t, ok)
}

func TestCompareInvalidToken(t *testing.T) {
	handler, _ := setupHandler(t)

	// Valid base64, but the answer value is not an accepted tag
	token := "eyJhIjp7InMxIjoiWUVTIn0sInQiOnt9fQ"
	req := httptest.NewRequest("GET", "/vaa/compare?data="+token, nil)
	w := httptest.NewRecorder()

	handler.Compare(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var view models.CompareView
	testutil.AssertJSON(t, w, &view)
	require.NotNil(t, view.Error)
	assert.Equal(t, models.ViewErrorInvalidData, *view.Error)
	assert.Empty(t, view.Statements)
}

func TestStatements(t *testing.T) {
	handler, conn := setupHandler(t)

	// Topic "Aardvark" sorts before "Alpha"; inactive statements are hidden
	testutil.AddTestTopic(t, conn, models.Topic{ID: "C", Name: "Aardvark"})
	testutil.AddTestStatement(t, conn, models.Statement{ID: "s5", TopicID: "C", Order: 9, IsActive: true})
	testutil.AddTestStatement(t, conn, models.Statement{ID: "s6", TopicID: "C", Order: 1, IsActive: false})

	req := httptest.NewRequest("GET", "/vaa/statements", nil)
	w := httptest.NewRecorder()

	handler.Statements(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.StatementsResponse
	testutil.AssertJSON(t, w, &resp)

	ids := make([]string, len(resp.Statements))
	for i, s := range resp.Statements {
		ids[i] = s.ID
		require.NotNil(t, s.Topic, s.ID)
		assert.Equal(t, s.TopicID, s.Topic.ID)
	}
	assert.Equal(t, []string{"s5", "s1", "s2", "s3"}, ids)
}

func TestEnrichResultsUnresolved(t *testing.T) {
	snap := catalog.NewSnapshot(nil, nil, nil, nil)

	results := EnrichResults(snap, []matching.PartyResult{
		{PartyID: "ghost", MatchPercentage: 50, TotalPoints: 1, MaxPossiblePoints: 2,
			TopicBreakdown: []matching.TopicScore{{TopicID: "gone", Score: 1, MaxScore: 2, Percentage: 50}}},
	})

	require.Len(t, results, 1)
	assert.Nil(t, results[0].Party)
	require.Len(t, results[0].TopicBreakdown, 1)
	tb := results[0].TopicBreakdown[0]
	assert.Equal(t, "gone", tb.TopicID)
	assert.Empty(t, tb.TopicName)
	assert.Equal(t, 50, tb.Percentage)

	// party must serialize as null, not be omitted
	w := httptest.NewRecorder()
	middleware.JSONResponse(w, http.StatusOK, results[0])
	assert.True(t, strings.Contains(w.Body.String(), `"party":null`), w.Body.String())
}
