// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package matching implements the voting-advice scoring engine.

# Scoring

Each answered statement is scored against each party's recorded position
using a fixed table:

	User \ Party   AGREE  NEUTRAL  DISAGREE
	AGREE            2       1        0
	NEUTRAL          1       2        1
	DISAGREE         0       1        2

Points are multiplied by the statement's topic weight (2 when the user marked
the topic important, 1 otherwise). The maximum per statement is 2 × weight.

SKIP answers and statements the party has no position on are left out of
both earned and possible totals.

# Usage

	in := matching.PrepareInput(answers, importance, statements, positions, partyIDs)
	results := matching.ComputeMatches(in)

ComputeMatches is pure and safe to call concurrently with independent inputs.

# Ranking

Results are sorted by match percentage (descending), then earned points
(descending), then party ID (ascending).
*/
package matching
