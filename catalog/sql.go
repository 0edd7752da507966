// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/mat-e-voto/models"
)

// SQLStore reads the catalog from the tables created by db.CreateSchema.
// The queries take no parameters and run unchanged on Postgres and SQLite.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// ActiveStatements returns active statements ordered by topic name, then
// display order
func (s *SQLStore) ActiveStatements(ctx context.Context) ([]models.Statement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.topic_id, s.slug, s.text, s.text_en, s.text_sr, s.sort_order, s.is_active
		FROM statement s
		JOIN topic t ON t.id = s.topic_id
		WHERE s.is_active = TRUE
		ORDER BY t.name, s.sort_order, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	statements := []models.Statement{}
	for rows.Next() {
		var st models.Statement
		if err := rows.Scan(&st.ID, &st.TopicID, &st.Slug, &st.Text, &st.TextEn, &st.TextSr, &st.Order, &st.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statements = append(statements, st)
	}

	return statements, rows.Err()
}

func (s *SQLStore) Topics(ctx context.Context) ([]models.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, name, name_en, icon
		FROM topic
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.NameEn, &t.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}

	return topics, rows.Err()
}

func (s *SQLStore) Parties(ctx context.Context) ([]models.Party, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, name, name_en, short_name, color, logo_url
		FROM party
		ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	parties := []models.Party{}
	for rows.Next() {
		var p models.Party
		var logoURL sql.NullString
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.NameEn, &p.ShortName, &p.Color, &logoURL); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		p.LogoURL = logoURL.String
		parties = append(parties, p)
	}

	return parties, rows.Err()
}

func (s *SQLStore) Positions(ctx context.Context) ([]models.PartyPosition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT party_id, statement_id, position
		FROM party_position
		ORDER BY party_id, statement_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := []models.PartyPosition{}
	for rows.Next() {
		var p models.PartyPosition
		if err := rows.Scan(&p.PartyID, &p.StatementID, &p.Position); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		if !p.Position.Valid() {
			return nil, fmt.Errorf("invalid position %q for party %s on statement %s", p.Position, p.PartyID, p.StatementID)
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}
