// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/mat-e-voto/catalog"
	"github.com/danielhkuo/mat-e-voto/models"
	"github.com/danielhkuo/mat-e-voto/session"
	"github.com/danielhkuo/mat-e-voto/sharetoken"
	"github.com/danielhkuo/mat-e-voto/testutil"
)

func loadTestSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	testutil.CreateTestCatalog(t, conn)

	snap, err := catalog.LoadSnapshot(context.Background(), catalog.NewSQLStore(conn))
	require.NoError(t, err)
	return snap
}

func runQuiz(t *testing.T, snap *catalog.Snapshot, store session.Store, input string) string {
	t.Helper()

	var out bytes.Buffer
	q := &quiz{
		snap:      snap,
		store:     store,
		publicURL: "http://vaa.test",
		in:        strings.NewReader(input),
		out:       &out,
	}
	require.NoError(t, q.run(context.Background()))
	return out.String()
}

// resultsToken pulls the share token out of the printed results link
func resultsToken(t *testing.T, output string) sharetoken.Payload {
	t.Helper()

	for _, line := range strings.Split(output, "\n") {
		link, ok := strings.CutPrefix(line, "Results: ")
		if !ok {
			continue
		}
		u, err := url.Parse(link)
		require.NoError(t, err)
		payload, ok := sharetoken.Decode(u.Query().Get("data"))
		require.True(t, ok, "undecodable token in %q", link)
		return payload
	}
	t.Fatalf("no results link in output:\n%s", output)
	return sharetoken.Payload{}
}

func TestQuizCompletes(t *testing.T) {
	snap := loadTestSnapshot(t)
	store := session.NewMemoryStore()

	// help, back at start, answer s1, go back, change s1, mark topic A
	// important, answer s2 and s3
	input := "x\nb\na\nb\nd\ni\nn\na\n"
	output := runQuiz(t, snap, store, input)

	assert.Contains(t, output, "Keys: a=agree")
	assert.Contains(t, output, "Already at the first statement.")
	assert.Contains(t, output, "(previous answer: AGREE)")
	assert.Contains(t, output, "Alpha (important)")
	assert.Contains(t, output, "Done: 1 agree, 1 neutral, 1 disagree, 0 skipped.")

	// P2: 4 + 2 of 8; P1: 0 + 2 + 1 of 10
	assert.Contains(t, output, "1. Party Two: 75%")
	assert.Contains(t, output, "2. Party One: 30%")
	assert.Contains(t, output, "3. Party Three: not enough data")

	payload := resultsToken(t, output)
	assert.Equal(t, map[string]models.UserAnswer{
		"s1": models.AnswerDisagree,
		"s2": models.AnswerNeutral,
		"s3": models.AnswerAgree,
	}, payload.Answers)
	assert.Equal(t, map[string]bool{"A": true}, payload.TopicImportance)

	// Hand-off clears the slot
	_, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQuizResume(t *testing.T) {
	snap := loadTestSnapshot(t)
	store := session.NewMemoryStore()

	first := runQuiz(t, snap, store, "a\nq\n")
	assert.Contains(t, first, "Progress saved.")
	assert.NotContains(t, first, "Results:")

	second := runQuiz(t, snap, store, "s\ns\n")
	assert.Contains(t, second, "Resuming at statement 2 of 3.")

	payload := resultsToken(t, second)
	assert.Equal(t, models.AnswerAgree, payload.Answers["s1"])
	assert.Equal(t, models.AnswerSkip, payload.Answers["s2"])
	assert.Len(t, payload.Answers, 3)
}

func TestQuizRestart(t *testing.T) {
	snap := loadTestSnapshot(t)
	store := session.NewMemoryStore()

	output := runQuiz(t, snap, store, "a\nd\nr\nn\nn\nn\n")
	assert.Contains(t, output, "Starting over.")

	payload := resultsToken(t, output)
	for id, answer := range payload.Answers {
		assert.Equal(t, models.AnswerNeutral, answer, id)
	}
}

func TestQuizEndOfInput(t *testing.T) {
	snap := loadTestSnapshot(t)
	store := session.NewMemoryStore()

	output := runQuiz(t, snap, store, "a\n")
	assert.Contains(t, output, "Progress saved.")

	saved, found, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, saved.CurrentIndex)
}

func TestQuizRedisResume(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	snap := loadTestSnapshot(t)

	// Two stores on one key stand in for two terminal runs
	runQuiz(t, snap, session.NewRedisStore(client, "abc", time.Hour), "d\nq\n")
	assert.True(t, mr.Exists(session.SlotName+":abc"))

	output := runQuiz(t, snap, session.NewRedisStore(client, "abc", time.Hour), "a\na\n")
	assert.Contains(t, output, "Resuming at statement 2 of 3.")
	assert.False(t, mr.Exists(session.SlotName+":abc"))
}
