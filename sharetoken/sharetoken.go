// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sharetoken

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/mat-e-voto/models"
)

// Payload is everything a share token carries.
type Payload struct {
	Answers         map[string]models.UserAnswer // statement_id -> answer
	TopicImportance map[string]bool              // topic_id -> important
}

// wire keeps the on-URL JSON short
type wire struct {
	A map[string]models.UserAnswer `json:"a"`
	T map[string]bool              `json:"t"`
}

// Encode serializes answers and importance flags into a URL-safe token.
// Map keys are emitted in sorted order, so equal inputs give equal tokens.
func Encode(answers map[string]models.UserAnswer, topicImportance map[string]bool) string {
	w := wire{A: answers, T: topicImportance}
	if w.A == nil {
		w.A = map[string]models.UserAnswer{}
	}
	if w.T == nil {
		w.T = map[string]bool{}
	}

	// Marshal cannot fail for string-keyed maps of strings and bools
	data, _ := json.Marshal(w)

	// URL-safe base64 without padding, same as the other tokens we hand out
	return strings.TrimRight(base64.URLEncoding.EncodeToString(data), "=")
}

// Decode parses a token produced by Encode. It also accepts padded and
// standard base64, as produced by browser clients. Any malformed, truncated
// or invalid token yields (Payload{}, false); a partially valid payload is
// never returned.
func Decode(token string) (Payload, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Payload{}, false
	}

	raw, err := decodeBase64(token)
	if err != nil {
		return Payload{}, false
	}

	p, err := parsePayload(raw)
	if err != nil {
		return Payload{}, false
	}
	return p, true
}

func decodeBase64(token string) ([]byte, error) {
	if strings.ContainsAny(token, "+/") || strings.Contains(token, " ") {
		// Standard alphabet; a '+' arrives as ' ' after query unescaping
		token = strings.ReplaceAll(token, " ", "+")
		return base64.RawStdEncoding.DecodeString(strings.TrimRight(token, "="))
	}
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
}

func parsePayload(raw []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Payload{}, fmt.Errorf("payload is not an object")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	var w wire
	if err := dec.Decode(&w); err != nil {
		return Payload{}, fmt.Errorf("failed to parse payload: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Payload{}, fmt.Errorf("trailing data after payload")
	}

	p := Payload{
		Answers:         make(map[string]models.UserAnswer, len(w.A)),
		TopicImportance: make(map[string]bool, len(w.T)),
	}
	for statementID, answer := range w.A {
		if !answer.Valid() {
			return Payload{}, fmt.Errorf("invalid answer %q for statement %s", answer, statementID)
		}
		p.Answers[statementID] = answer
	}
	for topicID, important := range w.T {
		p.TopicImportance[topicID] = important
	}

	return p, nil
}

// NewSessionKey creates a random key naming one questionnaire's storage slot.
func NewSessionKey() (string, error) {
	b := make([]byte, 18) // 144 bits
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session key: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}
