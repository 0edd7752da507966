// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the anonymous questionnaire state machine.

# States

	Empty → InProgress → Complete

A Machine walks a single user through an ordered statement list:

	m, err := session.Open(ctx, store, statements)
	state, err := m.Answer(ctx, statementID, models.AnswerAgree)
	err = m.Previous(ctx)
	err = m.SetTopicImportance(ctx, topicID, true)
	err = m.Restart(ctx)

When Answer returns StateComplete the caller hands off:

	token, err := m.HandOff(ctx) // share token; the store is cleared

# Storage

The session lives in one ephemeral slot behind the Store interface. It is
saved after every transition and cleared on hand-off and restart. It is never
sent to the results service; only the share token is.

  - MemoryStore: process memory
  - RedisStore: one key with a sliding TTL, scoped per questionnaire

A saved session is restored on Open only if it holds at least one answer.
*/
package session
