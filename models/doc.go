// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and catalog types for the API.

# Request Types

Types for parsing incoming JSON:

  - CalculateRequest: answers (statement_id → answer), topicImportance (topic_id → bool)

# Response Types

Types for JSON responses:

  - CalculateResponse: ranked PartyMatch list
  - ShareResponse: token, results_url, compare_url
  - ResultsView: decoded share link results, or an error code
  - CompareView: per-statement comparison data for a share link
  - StatementsResponse: questionnaire statements in order
  - ErrorResponse: error, message

# Catalog Types

Read-only records supplied by the catalog store:

  - Topic: grouping key for weighting and breakdowns
  - Party: grouping key for results
  - Statement: a proposition, owned by a topic
  - PartyPosition: a party's stance on one statement

# Constants

Answers:

	AnswerAgree    = "AGREE"
	AnswerNeutral  = "NEUTRAL"
	AnswerDisagree = "DISAGREE"
	AnswerSkip     = "SKIP"

Positions use the same spelling without SKIP. A missing position is not
NEUTRAL; it means the party has no recorded stance.

Share view errors:

	ViewErrorNoData      = "no_data"
	ViewErrorInvalidData = "invalid_data"
*/
package models
