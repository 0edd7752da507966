// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/mat-e-voto/models"
	"github.com/danielhkuo/mat-e-voto/sharetoken"
)

// State of a questionnaire session
type State string

const (
	StateEmpty      State = "empty"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

var (
	ErrNoStatements      = errors.New("questionnaire has no statements")
	ErrStatementMismatch = errors.New("answer is not for the current statement")
	ErrInvalidAnswer     = errors.New("invalid answer")
	ErrAtFirstStatement  = errors.New("already at the first statement")
	ErrSessionComplete   = errors.New("session is complete")
	ErrNotComplete       = errors.New("session is not complete")
)

// Data is the serialized session kept in the storage slot.
type Data struct {
	CurrentIndex    int                          `json:"currentIndex"`
	Answers         map[string]models.UserAnswer `json:"answers"`
	TopicImportance map[string]bool              `json:"topicImportance"`
	StartedAt       int64                        `json:"startedAt"` // unix millis
	IsComplete      bool                         `json:"isComplete"`
}

func newData(now time.Time) Data {
	return Data{
		Answers:         map[string]models.UserAnswer{},
		TopicImportance: map[string]bool{},
		StartedAt:       now.UnixMilli(),
	}
}

// Machine walks one user through an ordered list of statements.
// It is single-user and not safe for concurrent use.
type Machine struct {
	statements []models.Statement
	store      Store
	now        func() time.Time
	data       Data
}

// Open starts a questionnaire over statements. A saved session is restored
// only if it already holds at least one answer; otherwise a fresh one starts.
func Open(ctx context.Context, store Store, statements []models.Statement) (*Machine, error) {
	if len(statements) == 0 {
		return nil, ErrNoStatements
	}

	m := &Machine{
		statements: statements,
		store:      store,
		now:        time.Now,
	}

	saved, found, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if found && len(saved.Answers) > 0 {
		m.data = normalize(saved, len(statements))
	} else {
		m.data = newData(m.now())
	}

	if err := m.save(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// normalize repairs a restored session against the current statement list
func normalize(d Data, total int) Data {
	if d.Answers == nil {
		d.Answers = map[string]models.UserAnswer{}
	}
	if d.TopicImportance == nil {
		d.TopicImportance = map[string]bool{}
	}
	if d.CurrentIndex < 0 {
		d.CurrentIndex = 0
	}
	if d.CurrentIndex >= total {
		d.CurrentIndex = total
		d.IsComplete = true
	}
	return d
}

// State reports where the session is in its lifecycle.
func (m *Machine) State() State {
	switch {
	case m.data.IsComplete:
		return StateComplete
	case m.data.CurrentIndex == 0 && len(m.data.Answers) == 0:
		return StateEmpty
	default:
		return StateInProgress
	}
}

// Current returns the statement awaiting an answer, or false when complete.
func (m *Machine) Current() (models.Statement, bool) {
	if m.data.IsComplete || m.data.CurrentIndex >= len(m.statements) {
		return models.Statement{}, false
	}
	return m.statements[m.data.CurrentIndex], true
}

// Index returns the zero-based position in the statement list.
func (m *Machine) Index() int { return m.data.CurrentIndex }

// Total returns the number of statements in the questionnaire.
func (m *Machine) Total() int { return len(m.statements) }

// Answer records value for the current statement and advances.
// Re-answering a statement after Previous overwrites the earlier answer.
func (m *Machine) Answer(ctx context.Context, statementID string, value models.UserAnswer) (State, error) {
	if m.data.IsComplete {
		return StateComplete, ErrSessionComplete
	}
	if !value.Valid() {
		return m.State(), fmt.Errorf("%w: %q", ErrInvalidAnswer, value)
	}

	current, _ := m.Current()
	if current.ID != statementID {
		return m.State(), ErrStatementMismatch
	}

	m.data.Answers[statementID] = value
	m.data.CurrentIndex++
	if m.data.CurrentIndex >= len(m.statements) {
		m.data.IsComplete = true
	}

	if err := m.save(ctx); err != nil {
		return m.State(), err
	}
	return m.State(), nil
}

// Previous steps back one statement without erasing its answer.
func (m *Machine) Previous(ctx context.Context) error {
	if m.data.IsComplete {
		return ErrSessionComplete
	}
	if m.data.CurrentIndex == 0 {
		return ErrAtFirstStatement
	}

	m.data.CurrentIndex--
	return m.save(ctx)
}

// SetTopicImportance flags a topic as important (2x weight). It does not move
// the session.
func (m *Machine) SetTopicImportance(ctx context.Context, topicID string, important bool) error {
	if m.data.IsComplete {
		return ErrSessionComplete
	}

	m.data.TopicImportance[topicID] = important
	return m.save(ctx)
}

// Restart discards everything and returns to the empty state.
func (m *Machine) Restart(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.data = newData(m.now())
	return nil
}

// HandOff encodes a completed session into a share token and clears the
// storage slot. Nothing about the session outlives this call except the token.
func (m *Machine) HandOff(ctx context.Context) (string, error) {
	if !m.data.IsComplete {
		return "", ErrNotComplete
	}

	token := sharetoken.Encode(m.data.Answers, m.data.TopicImportance)

	if err := m.store.Clear(ctx); err != nil {
		return "", fmt.Errorf("failed to clear session: %w", err)
	}
	m.data = newData(m.now())
	return token, nil
}

// Snapshot returns a copy of the session data.
func (m *Machine) Snapshot() Data {
	d := m.data
	d.Answers = make(map[string]models.UserAnswer, len(m.data.Answers))
	for k, v := range m.data.Answers {
		d.Answers[k] = v
	}
	d.TopicImportance = make(map[string]bool, len(m.data.TopicImportance))
	for k, v := range m.data.TopicImportance {
		d.TopicImportance[k] = v
	}
	return d
}

func (m *Machine) save(ctx context.Context) error {
	if err := m.store.Save(ctx, m.data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
