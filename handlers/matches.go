// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"

	"github.com/danielhkuo/mat-e-voto/catalog"
	"github.com/danielhkuo/mat-e-voto/matching"
	"github.com/danielhkuo/mat-e-voto/models"
)

// match loads a fresh catalog snapshot and scores every party.
func (h *VAAHandler) match(ctx context.Context, answers map[string]models.UserAnswer, topicImportance map[string]bool) ([]models.PartyMatch, error) {
	snap, err := catalog.LoadSnapshot(ctx, h.store)
	if err != nil {
		return nil, err
	}

	in := matching.PrepareInput(answers, topicImportance, snap.Statements, snap.Positions, snap.PartyIDs())
	return EnrichResults(snap, matching.ComputeMatches(in)), nil
}

// EnrichResults attaches party and topic display fields to engine results.
// A party that cannot be resolved is null; an unresolved topic keeps its ID
// with empty names.
func EnrichResults(snap *catalog.Snapshot, results []matching.PartyResult) []models.PartyMatch {
	out := make([]models.PartyMatch, 0, len(results))
	for _, res := range results {
		m := models.PartyMatch{
			PartyID:           res.PartyID,
			MatchPercentage:   res.MatchPercentage,
			TotalPoints:       res.TotalPoints,
			MaxPossiblePoints: res.MaxPossiblePoints,
			TopicBreakdown:    make([]models.TopicBreakdown, 0, len(res.TopicBreakdown)),
		}

		if p, ok := snap.Party(res.PartyID); ok {
			m.Party = &models.PartySummary{
				ID:        p.ID,
				Name:      p.Name,
				NameEn:    p.NameEn,
				ShortName: p.ShortName,
				Color:     p.Color,
				LogoURL:   p.LogoURL,
			}
		}

		for _, ts := range res.TopicBreakdown {
			tb := models.TopicBreakdown{
				TopicID:    ts.TopicID,
				Score:      ts.Score,
				MaxScore:   ts.MaxScore,
				Percentage: ts.Percentage,
			}
			if t, ok := snap.Topic(ts.TopicID); ok {
				tb.TopicSlug = t.Slug
				tb.TopicName = t.Name
				tb.TopicNameEn = t.NameEn
				tb.TopicIcon = t.Icon
			}
			m.TopicBreakdown = append(m.TopicBreakdown, tb)
		}

		out = append(out, m)
	}
	return out
}
