// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import "github.com/danielhkuo/mat-e-voto/models"

// PrepareInput converts request data and catalog rows into an Input.
// Importance flags become weights; parties are scored in the order given.
func PrepareInput(
	answers map[string]models.UserAnswer,
	topicImportance map[string]bool,
	statements []models.Statement,
	positions []models.PartyPosition,
	partyIDs []string,
) Input {
	in := Input{
		Answers:         make(map[string]models.UserAnswer, len(answers)),
		TopicWeights:    TopicWeights(topicImportance),
		StatementTopics: make(map[string]string, len(statements)),
		Positions:       make(map[PositionKey]models.Position, len(positions)),
	}

	for statementID, answer := range answers {
		in.Answers[statementID] = answer
	}

	for _, s := range statements {
		in.StatementTopics[s.ID] = s.TopicID
	}

	seen := make(map[string]bool, len(partyIDs))
	for _, id := range partyIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		in.PartyIDs = append(in.PartyIDs, id)
	}

	for _, p := range positions {
		in.Positions[PositionKey{PartyID: p.PartyID, StatementID: p.StatementID}] = p.Position
		// Parties that only appear through positions are still scored
		if !seen[p.PartyID] {
			seen[p.PartyID] = true
			in.PartyIDs = append(in.PartyIDs, p.PartyID)
		}
	}

	return in
}

// TopicWeights maps importance flags to weights (important = 2x).
func TopicWeights(topicImportance map[string]bool) map[string]int {
	weights := make(map[string]int, len(topicImportance))
	for topicID, important := range topicImportance {
		if important {
			weights[topicID] = WeightImportant
		} else {
			weights[topicID] = WeightNormal
		}
	}
	return weights
}
