// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/mat-e-voto/cliparse"
	"github.com/danielhkuo/mat-e-voto/db"
	"github.com/danielhkuo/mat-e-voto/models"
)

// TestDBURL is an in-memory SQLite database, private to each SetupTestDB call
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh test database with the full schema.
// The connection is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupSeededDB is SetupTestDB plus the embedded demo catalog
func SetupSeededDB(t *testing.T) *sql.DB {
	t.Helper()

	conn := SetupTestDB(t)
	if _, err := db.SeedCatalog(context.Background(), conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.DialectSQLite,
		PublicURL:    "http://vaa.test",
	}
}

// AddTestTopic inserts a topic. Empty slug/name default to the ID.
func AddTestTopic(t *testing.T, conn *sql.DB, topic models.Topic) {
	t.Helper()

	if topic.Slug == "" {
		topic.Slug = topic.ID
	}
	if topic.Name == "" {
		topic.Name = topic.ID
	}

	_, err := conn.Exec(db.Rebind(db.DialectSQLite, `
		INSERT INTO topic (id, slug, name, name_en, icon)
		VALUES ($1, $2, $3, $4, $5)
	`), topic.ID, topic.Slug, topic.Name, topic.NameEn, topic.Icon)
	if err != nil {
		t.Fatalf("Failed to create test topic: %v", err)
	}
}

// AddTestParty inserts a party. Empty slug/name/short name default to the ID.
func AddTestParty(t *testing.T, conn *sql.DB, party models.Party) {
	t.Helper()

	if party.Slug == "" {
		party.Slug = party.ID
	}
	if party.Name == "" {
		party.Name = party.ID
	}
	if party.ShortName == "" {
		party.ShortName = party.ID
	}

	var logo *string
	if party.LogoURL != "" {
		logo = &party.LogoURL
	}

	_, err := conn.Exec(db.Rebind(db.DialectSQLite, `
		INSERT INTO party (id, slug, name, name_en, short_name, color, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`), party.ID, party.Slug, party.Name, party.NameEn, party.ShortName, party.Color, logo)
	if err != nil {
		t.Fatalf("Failed to create test party: %v", err)
	}
}

// AddTestStatement inserts a statement. Empty slug/text default to the ID.
func AddTestStatement(t *testing.T, conn *sql.DB, st models.Statement) {
	t.Helper()

	if st.Slug == "" {
		st.Slug = st.ID
	}
	if st.Text == "" {
		st.Text = st.ID
	}

	_, err := conn.Exec(db.Rebind(db.DialectSQLite, `
		INSERT INTO statement (id, topic_id, slug, text, text_en, text_sr, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`), st.ID, st.TopicID, st.Slug, st.Text, st.TextEn, st.TextSr, st.Order, st.IsActive)
	if err != nil {
		t.Fatalf("Failed to create test statement: %v", err)
	}
}

// AddTestPosition records a party's stance on a statement
func AddTestPosition(t *testing.T, conn *sql.DB, partyID, statementID string, position models.Position) {
	t.Helper()

	_, err := conn.Exec(db.Rebind(db.DialectSQLite, `
		INSERT INTO party_position (party_id, statement_id, position)
		VALUES ($1, $2, $3)
	`), partyID, statementID, string(position))
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
}

// CreateTestCatalog builds the two-topic catalog used across handler tests:
//
//	topic A: s1, s2    topic B: s3
//	party P1: s1 AGREE, s2 DISAGREE, s3 NEUTRAL
//	party P2: s1 DISAGREE, s2 AGREE
//	party P3: no positions
func CreateTestCatalog(t *testing.T, conn *sql.DB) {
	t.Helper()

	AddTestTopic(t, conn, models.Topic{ID: "A", Name: "Alpha", NameEn: "Alpha EN", Icon: "economy"})
	AddTestTopic(t, conn, models.Topic{ID: "B", Name: "Beta", NameEn: "Beta EN", Icon: "health"})

	AddTestParty(t, conn, models.Party{ID: "P1", Name: "Party One", ShortName: "P1", Color: "#ff0000"})
	AddTestParty(t, conn, models.Party{ID: "P2", Name: "Party Two", ShortName: "P2", Color: "#00ff00"})
	AddTestParty(t, conn, models.Party{ID: "P3", Name: "Party Three", ShortName: "P3", Color: "#0000ff"})

	AddTestStatement(t, conn, models.Statement{ID: "s1", TopicID: "A", Order: 1, IsActive: true})
	AddTestStatement(t, conn, models.Statement{ID: "s2", TopicID: "A", Order: 2, IsActive: true})
	AddTestStatement(t, conn, models.Statement{ID: "s3", TopicID: "B", Order: 1, IsActive: true})

	AddTestPosition(t, conn, "P1", "s1", models.PositionAgree)
	AddTestPosition(t, conn, "P1", "s2", models.PositionDisagree)
	AddTestPosition(t, conn, "P1", "s3", models.PositionNeutral)
	AddTestPosition(t, conn, "P2", "s1", models.PositionDisagree)
	AddTestPosition(t, conn, "P2", "s2", models.PositionAgree)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var raw []byte
		switch b := body.(type) {
		case string:
			raw = []byte(b)
		case []byte:
			raw = b
		default:
			raw, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
