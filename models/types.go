// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// UserAnswer is a respondent's reaction to a statement.
type UserAnswer string

// Position is a party's recorded stance on a statement.
type Position string

// Answer and position constants
const (
	AnswerAgree    UserAnswer = "AGREE"
	AnswerNeutral  UserAnswer = "NEUTRAL"
	AnswerDisagree UserAnswer = "DISAGREE"
	AnswerSkip     UserAnswer = "SKIP"

	PositionAgree    Position = "AGREE"
	PositionNeutral  Position = "NEUTRAL"
	PositionDisagree Position = "DISAGREE"
)

// Valid reports whether a is one of the four accepted answers.
func (a UserAnswer) Valid() bool {
	switch a {
	case AnswerAgree, AnswerNeutral, AnswerDisagree, AnswerSkip:
		return true
	}
	return false
}

// Valid reports whether p is one of the three recordable positions.
func (p Position) Valid() bool {
	switch p {
	case PositionAgree, PositionNeutral, PositionDisagree:
		return true
	}
	return false
}

// Share view error codes
const (
	ViewErrorNoData      = "no_data"
	ViewErrorInvalidData = "invalid_data"
)

// Request types

// statement_id -> answer, topic_id -> important
type CalculateRequest struct {
	Answers         map[string]UserAnswer `json:"answers"`
	TopicImportance map[string]bool       `json:"topicImportance"`
}

// Response types

type CalculateResponse struct {
	Results []PartyMatch `json:"results"`
}

type ShareResponse struct {
	Token      string `json:"token"`
	ResultsURL string `json:"results_url"`
	CompareURL string `json:"compare_url"`
}

type PartyMatch struct {
	PartyID           string           `json:"partyId"`
	MatchPercentage   int              `json:"matchPercentage"`
	TotalPoints       int              `json:"totalPoints"`
	MaxPossiblePoints int              `json:"maxPossiblePoints"`
	Party             *PartySummary    `json:"party"`
	TopicBreakdown    []TopicBreakdown `json:"topicBreakdown"`
}

type PartySummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameEn    string `json:"nameEn"`
	ShortName string `json:"shortName"`
	Color     string `json:"color"`
	LogoURL   string `json:"logoUrl,omitempty"`
}

type TopicBreakdown struct {
	TopicID     string `json:"topicId"`
	TopicSlug   string `json:"topicSlug"`
	TopicName   string `json:"topicName"`
	TopicNameEn string `json:"topicNameEn"`
	TopicIcon   string `json:"topicIcon"`
	Score       int    `json:"score"`
	MaxScore    int    `json:"maxScore"`
	Percentage  int    `json:"percentage"`
}

type ResultsView struct {
	Error         *string      `json:"error"`
	Results       []PartyMatch `json:"results"`
	AnsweredCount int          `json:"answered_count"`
}

type CompareView struct {
	Error       *string                        `json:"error"`
	Statements  []StatementWithTopic           `json:"statements"`
	Parties     []Party                        `json:"parties"`
	Topics      []Topic                        `json:"topics"`
	UserAnswers map[string]UserAnswer          `json:"userAnswers"`
	PositionMap map[string]map[string]Position `json:"positionMap"` // statement_id -> party_id -> position
}

type StatementsResponse struct {
	Statements []StatementWithTopic `json:"statements"`
}

// Catalog types

type Topic struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	NameEn string `json:"nameEn"`
	Icon   string `json:"icon"`
}

type Party struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	NameEn    string `json:"nameEn"`
	ShortName string `json:"shortName"`
	Color     string `json:"color"`
	LogoURL   string `json:"logoUrl,omitempty"`
}

type Statement struct {
	ID       string `json:"id"`
	TopicID  string `json:"topicId"`
	Slug     string `json:"slug"`
	Text     string `json:"text"`
	TextEn   string `json:"textEn"`
	TextSr   string `json:"textSr,omitempty"`
	Order    int    `json:"order"`
	IsActive bool   `json:"isActive"`
}

type StatementWithTopic struct {
	Statement
	Topic *Topic `json:"topic"`
}

type PartyPosition struct {
	PartyID     string   `json:"partyId"`
	StatementID string   `json:"statementId"`
	Position    Position `json:"position"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
