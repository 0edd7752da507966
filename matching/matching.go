// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	"math"
	"sort"

	"github.com/danielhkuo/mat-e-voto/models"
)

// Weights applied per topic
const (
	WeightNormal    = 1
	WeightImportant = 2

	// maxStatementPoints is the best cell of the scoring matrix.
	maxStatementPoints = 2
)

// answerIndex and positionIndex map the enum tags onto scoringMatrix rows and
// columns. SKIP has no row.
var (
	answerIndex = map[models.UserAnswer]int{
		models.AnswerAgree:    0,
		models.AnswerNeutral:  1,
		models.AnswerDisagree: 2,
	}
	positionIndex = map[models.Position]int{
		models.PositionAgree:    0,
		models.PositionNeutral:  1,
		models.PositionDisagree: 2,
	}
)

// scoringMatrix[user][party], columns AGREE, NEUTRAL, DISAGREE
var scoringMatrix = [3][3]int{
	{2, 1, 0}, // AGREE
	{1, 2, 1}, // NEUTRAL
	{0, 1, 2}, // DISAGREE
}

// PositionKey identifies one party's stance on one statement.
type PositionKey struct {
	PartyID     string
	StatementID string
}

// Input is everything ComputeMatches needs. Build it with PrepareInput.
type Input struct {
	Answers         map[string]models.UserAnswer // statement_id -> answer
	TopicWeights    map[string]int               // topic_id -> weight
	StatementTopics map[string]string            // statement_id -> topic_id
	Positions       map[PositionKey]models.Position

	// PartyIDs lists every party to score, including those without positions.
	PartyIDs []string
}

// TopicScore is the per-topic slice of a party's result
type TopicScore struct {
	TopicID    string
	Score      int
	MaxScore   int
	Percentage int
}

// PartyResult is one party's match against a set of answers
type PartyResult struct {
	PartyID           string
	MatchPercentage   int
	TotalPoints       int
	MaxPossiblePoints int
	TopicBreakdown    []TopicScore // ordered by first contributing statement
}

// StatementPoints returns the matrix score for a user answer against a party
// position. SKIP and unknown tags score 0.
func StatementPoints(answer models.UserAnswer, position models.Position) int {
	row, ok := answerIndex[answer]
	if !ok {
		return 0
	}
	col, ok := positionIndex[position]
	if !ok {
		return 0
	}
	return scoringMatrix[row][col]
}

// Percentage returns round(100*earned/possible), or 0 when possible is 0.
func Percentage(earned, possible int) int {
	if possible <= 0 {
		return 0
	}
	return int(math.Round(float64(earned) / float64(possible) * 100))
}

// ComputeMatches scores every party in the input and returns them ranked.
func ComputeMatches(in Input) []PartyResult {
	// Iterate answers in a fixed order so breakdown ordering is reproducible.
	statementIDs := make([]string, 0, len(in.Answers))
	for statementID, answer := range in.Answers {
		if answer == models.AnswerSkip {
			continue
		}
		statementIDs = append(statementIDs, statementID)
	}
	sort.Strings(statementIDs)

	results := make([]PartyResult, 0, len(in.PartyIDs))
	for _, partyID := range in.PartyIDs {
		results = append(results, scoreParty(in, partyID, statementIDs))
	}

	SortResults(results)
	return results
}

func scoreParty(in Input, partyID string, statementIDs []string) PartyResult {
	result := PartyResult{PartyID: partyID, TopicBreakdown: []TopicScore{}}
	topicSlot := make(map[string]int)

	for _, statementID := range statementIDs {
		position, ok := in.Positions[PositionKey{PartyID: partyID, StatementID: statementID}]
		if !ok {
			continue // Party has no position on this statement
		}

		topicID, ok := in.StatementTopics[statementID]
		if !ok {
			continue // Statement is not in the active catalog
		}

		weight, ok := in.TopicWeights[topicID]
		if !ok {
			weight = WeightNormal
		}

		points := StatementPoints(in.Answers[statementID], position) * weight
		maxPoints := maxStatementPoints * weight

		result.TotalPoints += points
		result.MaxPossiblePoints += maxPoints

		slot, seen := topicSlot[topicID]
		if !seen {
			slot = len(result.TopicBreakdown)
			topicSlot[topicID] = slot
			result.TopicBreakdown = append(result.TopicBreakdown, TopicScore{TopicID: topicID})
		}
		result.TopicBreakdown[slot].Score += points
		result.TopicBreakdown[slot].MaxScore += maxPoints
	}

	for i := range result.TopicBreakdown {
		ts := &result.TopicBreakdown[i]
		ts.Percentage = Percentage(ts.Score, ts.MaxScore)
	}
	result.MatchPercentage = Percentage(result.TotalPoints, result.MaxPossiblePoints)

	return result
}

// SortResults orders results for display.
func SortResults(results []PartyResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]

		// 1. Higher match percentage wins
		if a.MatchPercentage != b.MatchPercentage {
			return a.MatchPercentage > b.MatchPercentage
		}

		// 2. More earned points wins (more overlap at the same ratio)
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}

		// 3. Stable tie-breaking by party ID (ascending)
		return a.PartyID < b.PartyID
	})
}

// Topic returns the breakdown entry for topicID, or a zero entry when no
// statement of that topic contributed.
func (r PartyResult) Topic(topicID string) TopicScore {
	for _, ts := range r.TopicBreakdown {
		if ts.TopicID == topicID {
			return ts
		}
	}
	return TopicScore{TopicID: topicID}
}

// HasData reports whether any answered statement overlapped the party's
// positions. A 0% result without data means "insufficient data", not
// "no agreement".
func (r PartyResult) HasData() bool {
	return r.MaxPossiblePoints > 0
}
