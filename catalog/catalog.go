// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"fmt"

	"github.com/danielhkuo/mat-e-voto/models"
)

// Store reads the statement/topic/party catalog. Implementations must not
// cache: every call reflects the store as it is now.
type Store interface {
	// ActiveStatements returns active statements in questionnaire order.
	ActiveStatements(ctx context.Context) ([]models.Statement, error)
	Topics(ctx context.Context) ([]models.Topic, error)
	Parties(ctx context.Context) ([]models.Party, error)
	Positions(ctx context.Context) ([]models.PartyPosition, error)
}

// Snapshot is one read of the whole catalog.
type Snapshot struct {
	Statements []models.Statement
	Topics     []models.Topic
	Parties    []models.Party
	Positions  []models.PartyPosition

	topicsByID  map[string]models.Topic
	partiesByID map[string]models.Party
}

// LoadSnapshot reads everything the engine needs. Two snapshots taken with
// the same store may differ if the catalog was edited in between.
func LoadSnapshot(ctx context.Context, store Store) (*Snapshot, error) {
	statements, err := store.ActiveStatements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load statements: %w", err)
	}

	topics, err := store.Topics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load topics: %w", err)
	}

	parties, err := store.Parties(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load parties: %w", err)
	}

	positions, err := store.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load positions: %w", err)
	}

	return NewSnapshot(statements, topics, parties, positions), nil
}

// NewSnapshot indexes already loaded catalog rows.
func NewSnapshot(statements []models.Statement, topics []models.Topic, parties []models.Party, positions []models.PartyPosition) *Snapshot {
	s := &Snapshot{
		Statements:  statements,
		Topics:      topics,
		Parties:     parties,
		Positions:   positions,
		topicsByID:  make(map[string]models.Topic, len(topics)),
		partiesByID: make(map[string]models.Party, len(parties)),
	}
	for _, t := range topics {
		s.topicsByID[t.ID] = t
	}
	for _, p := range parties {
		s.partiesByID[p.ID] = p
	}
	return s
}

// Topic looks up a topic by ID.
func (s *Snapshot) Topic(id string) (models.Topic, bool) {
	t, ok := s.topicsByID[id]
	return t, ok
}

// Party looks up a party by ID.
func (s *Snapshot) Party(id string) (models.Party, bool) {
	p, ok := s.partiesByID[id]
	return p, ok
}

// PartyIDs returns party IDs in catalog order.
func (s *Snapshot) PartyIDs() []string {
	ids := make([]string, len(s.Parties))
	for i, p := range s.Parties {
		ids[i] = p.ID
	}
	return ids
}

// StatementsWithTopics pairs each statement with its topic. The topic is nil
// when it cannot be resolved.
func (s *Snapshot) StatementsWithTopics() []models.StatementWithTopic {
	out := make([]models.StatementWithTopic, len(s.Statements))
	for i, st := range s.Statements {
		out[i] = models.StatementWithTopic{Statement: st}
		if t, ok := s.topicsByID[st.TopicID]; ok {
			topic := t
			out[i].Topic = &topic
		}
	}
	return out
}

// PositionMap returns statement_id -> party_id -> position.
func (s *Snapshot) PositionMap() map[string]map[string]models.Position {
	m := make(map[string]map[string]models.Position)
	for _, p := range s.Positions {
		if m[p.StatementID] == nil {
			m[p.StatementID] = make(map[string]models.Position)
		}
		m[p.StatementID][p.PartyID] = p.Position
	}
	return m
}
