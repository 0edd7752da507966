// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danielhkuo/mat-e-voto/models"
)

//go:embed seed/catalog.json
var seedCatalog []byte

// Fixture rows reference each other by local keys; real IDs are generated.
type fixture struct {
	Topics []struct {
		Key    string `json:"key"`
		Slug   string `json:"slug"`
		Name   string `json:"name"`
		NameEn string `json:"nameEn"`
		Icon   string `json:"icon"`
	} `json:"topics"`
	Parties []struct {
		Key       string `json:"key"`
		Slug      string `json:"slug"`
		Name      string `json:"name"`
		NameEn    string `json:"nameEn"`
		ShortName string `json:"shortName"`
		Color     string `json:"color"`
	} `json:"parties"`
	Statements []struct {
		Key    string `json:"key"`
		Topic  string `json:"topic"`
		Slug   string `json:"slug"`
		Text   string `json:"text"`
		TextEn string `json:"textEn"`
		Order  int    `json:"order"`
	} `json:"statements"`
	Positions map[string]map[string]models.Position `json:"positions"` // party key -> statement key -> position
}

// SeedCatalog loads the demo catalog if the topic table is empty.
// Returns false if the catalog already had data.
func SeedCatalog(ctx context.Context, conn *sql.DB, dialect string) (bool, error) {
	var count int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM topic`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count topics: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	var fx fixture
	if err := json.Unmarshal(seedCatalog, &fx); err != nil {
		return false, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	topicIDs := make(map[string]string, len(fx.Topics))
	for _, t := range fx.Topics {
		id := uuid.NewString()
		topicIDs[t.Key] = id
		_, err := tx.ExecContext(ctx, Rebind(dialect, `
			INSERT INTO topic (id, slug, name, name_en, icon)
			VALUES ($1, $2, $3, $4, $5)
		`), id, t.Slug, t.Name, t.NameEn, t.Icon)
		if err != nil {
			return false, fmt.Errorf("failed to insert topic %s: %w", t.Slug, err)
		}
	}

	partyIDs := make(map[string]string, len(fx.Parties))
	for _, p := range fx.Parties {
		id := uuid.NewString()
		partyIDs[p.Key] = id
		_, err := tx.ExecContext(ctx, Rebind(dialect, `
			INSERT INTO party (id, slug, name, name_en, short_name, color)
			VALUES ($1, $2, $3, $4, $5, $6)
		`), id, p.Slug, p.Name, p.NameEn, p.ShortName, p.Color)
		if err != nil {
			return false, fmt.Errorf("failed to insert party %s: %w", p.Slug, err)
		}
	}

	statementIDs := make(map[string]string, len(fx.Statements))
	for _, s := range fx.Statements {
		topicID, ok := topicIDs[s.Topic]
		if !ok {
			return false, fmt.Errorf("statement %s references unknown topic %s", s.Slug, s.Topic)
		}
		id := uuid.NewString()
		statementIDs[s.Key] = id
		_, err := tx.ExecContext(ctx, Rebind(dialect, `
			INSERT INTO statement (id, topic_id, slug, text, text_en, sort_order, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		`), id, topicID, s.Slug, s.Text, s.TextEn, s.Order)
		if err != nil {
			return false, fmt.Errorf("failed to insert statement %s: %w", s.Slug, err)
		}
	}

	positionCount := 0
	for partyKey, stances := range fx.Positions {
		partyID, ok := partyIDs[partyKey]
		if !ok {
			return false, fmt.Errorf("positions reference unknown party %s", partyKey)
		}
		for statementKey, position := range stances {
			statementID, ok := statementIDs[statementKey]
			if !ok {
				return false, fmt.Errorf("positions reference unknown statement %s", statementKey)
			}
			_, err := tx.ExecContext(ctx, Rebind(dialect, `
				INSERT INTO party_position (party_id, statement_id, position)
				VALUES ($1, $2, $3)
			`), partyID, statementID, string(position))
			if err != nil {
				return false, fmt.Errorf("failed to insert position: %w", err)
			}
			positionCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}

	slog.Info("catalog seeded",
		"topics", len(fx.Topics),
		"parties", len(fx.Parties),
		"statements", len(fx.Statements),
		"positions", positionCount,
	)
	return true, nil
}
