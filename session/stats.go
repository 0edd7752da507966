// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"math"

	"github.com/danielhkuo/mat-e-voto/models"
)

// AnswerStats counts answers by value
type AnswerStats struct {
	Agree    int `json:"agree"`
	Neutral  int `json:"neutral"`
	Disagree int `json:"disagree"`
	Skip     int `json:"skip"`
	Total    int `json:"total"`
}

// Progress returns how far through the questionnaire index is, as a rounded
// percentage. Zero statements means 0%.
func Progress(index, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(index) / float64(total) * 100))
}

// CountAnswers tallies answers by value.
func CountAnswers(answers map[string]models.UserAnswer) AnswerStats {
	var stats AnswerStats
	for _, answer := range answers {
		stats.Total++
		switch answer {
		case models.AnswerAgree:
			stats.Agree++
		case models.AnswerNeutral:
			stats.Neutral++
		case models.AnswerDisagree:
			stats.Disagree++
		case models.AnswerSkip:
			stats.Skip++
		}
	}
	return stats
}
