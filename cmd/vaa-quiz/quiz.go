// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/danielhkuo/mat-e-voto/catalog"
	"github.com/danielhkuo/mat-e-voto/matching"
	"github.com/danielhkuo/mat-e-voto/models"
	"github.com/danielhkuo/mat-e-voto/session"
)

// topMatches is how many parties the summary lists
const topMatches = 3

var answerKeys = map[string]models.UserAnswer{
	"a": models.AnswerAgree,
	"n": models.AnswerNeutral,
	"d": models.AnswerDisagree,
	"s": models.AnswerSkip,
}

type quiz struct {
	snap      *catalog.Snapshot
	store     session.Store
	publicURL string
	in        io.Reader
	out       io.Writer
}

// run drives one questionnaire until it completes, the user quits, or
// input ends. Quitting keeps the saved session for a later run.
func (q *quiz) run(ctx context.Context) error {
	m, err := session.Open(ctx, q.store, q.snap.Statements)
	if err != nil {
		return err
	}

	if m.State() == session.StateInProgress {
		fmt.Fprintf(q.out, "Resuming at statement %d of %d.\n", m.Index()+1, m.Total())
	}

	scanner := bufio.NewScanner(q.in)
	for m.State() != session.StateComplete {
		current, _ := m.Current()
		q.prompt(m, current)

		if !scanner.Scan() {
			fmt.Fprintln(q.out, "\nProgress saved.")
			return scanner.Err()
		}

		key := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer, ok := answerKeys[key]; ok {
			if _, err := m.Answer(ctx, current.ID, answer); err != nil {
				return err
			}
			continue
		}

		switch key {
		case "b":
			if err := m.Previous(ctx); errors.Is(err, session.ErrAtFirstStatement) {
				fmt.Fprintln(q.out, "Already at the first statement.")
			} else if err != nil {
				return err
			}
		case "i":
			important := !m.Snapshot().TopicImportance[current.TopicID]
			if err := m.SetTopicImportance(ctx, current.TopicID, important); err != nil {
				return err
			}
		case "r":
			if err := m.Restart(ctx); err != nil {
				return err
			}
			fmt.Fprintln(q.out, "Starting over.")
		case "q":
			fmt.Fprintln(q.out, "Progress saved.")
			return nil
		default:
			fmt.Fprintln(q.out, "Keys: a=agree n=neutral d=disagree s=skip b=back i=important r=restart q=quit")
		}
	}

	return q.finish(ctx, m)
}

func (q *quiz) prompt(m *session.Machine, st models.Statement) {
	data := m.Snapshot()

	topicName := st.TopicID
	if t, ok := q.snap.Topic(st.TopicID); ok {
		topicName = t.Name
	}
	marker := ""
	if data.TopicImportance[st.TopicID] {
		marker = " (important)"
	}

	fmt.Fprintf(q.out, "\n[%d/%d, %d%%] %s%s\n", m.Index()+1, m.Total(), session.Progress(m.Index(), m.Total()), topicName, marker)
	fmt.Fprintln(q.out, st.Text)
	if prev, ok := data.Answers[st.ID]; ok {
		fmt.Fprintf(q.out, "(previous answer: %s)\n", prev)
	}
	fmt.Fprint(q.out, "a/n/d/s b i r q > ")
}

// finish hands the completed session off to a share token and prints the
// results link and the best matches.
func (q *quiz) finish(ctx context.Context, m *session.Machine) error {
	data := m.Snapshot()

	token, err := m.HandOff(ctx)
	if err != nil {
		return err
	}

	stats := session.CountAnswers(data.Answers)
	fmt.Fprintf(q.out, "\nDone: %d agree, %d neutral, %d disagree, %d skipped.\n",
		stats.Agree, stats.Neutral, stats.Disagree, stats.Skip)

	in := matching.PrepareInput(data.Answers, data.TopicImportance, q.snap.Statements, q.snap.Positions, q.snap.PartyIDs())
	results := matching.ComputeMatches(in)

	for i, r := range results {
		if i == topMatches {
			break
		}
		name := r.PartyID
		if p, ok := q.snap.Party(r.PartyID); ok {
			name = p.Name
		}
		if !r.HasData() {
			fmt.Fprintf(q.out, "%d. %s: not enough data\n", i+1, name)
			continue
		}
		fmt.Fprintf(q.out, "%d. %s: %d%%\n", i+1, name, r.MatchPercentage)
	}

	fmt.Fprintf(q.out, "Results: %s/vaa/results?data=%s\n", q.publicURL, url.QueryEscape(token))
	return nil
}
