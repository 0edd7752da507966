// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sharetoken encodes completed questionnaire answers into a compact,
URL-safe token and decodes them back.

# Token Format

A token is the JSON object

	{"a": {"<statement_id>": "AGREE", ...}, "t": {"<topic_id>": true, ...}}

encoded as URL-safe base64 without padding. Only statement IDs, answer
values, and topic IDs with boolean flags are carried: no statement text, no
party data, nothing that identifies the respondent.

# Usage

	token := sharetoken.Encode(answers, importance)

	payload, ok := sharetoken.Decode(token)
	if !ok {
		// render "no data, please retake"
	}

Decode never panics and never returns partial data. Decode(Encode(x))
reproduces x exactly, including the empty answer set.

# Session Keys

NewSessionKey returns a random URL-safe key used to name a questionnaire's
ephemeral storage slot.
*/
package sharetoken
