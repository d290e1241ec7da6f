package review

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/autodoc-cli/autodoc/internal/faults"
	"github.com/autodoc-cli/autodoc/internal/genai"
	"github.com/autodoc-cli/autodoc/internal/prompt"
	"github.com/autodoc-cli/autodoc/internal/tracker"
)

// scriptGenerator returns canned drafts and records every request it saw.
type scriptGenerator struct {
	requests  []*prompt.Request
	failFirst int
	failWith  error
}

func (g *scriptGenerator) Generate(ctx context.Context, req *prompt.Request) (string, error) {
	if g.failFirst > 0 {
		g.failFirst--
		return "", g.failWith
	}
	g.requests = append(g.requests, req)
	return fmt.Sprintf("draft %d", len(g.requests)), nil
}

// scriptReviewer plays back a fixed sequence of decisions.
type scriptReviewer struct {
	decisions []Decision
	drafts    []string
}

func (r *scriptReviewer) Review(ctx context.Context, draft string, iteration int) (Decision, error) {
	r.drafts = append(r.drafts, draft)
	d := r.decisions[0]
	r.decisions = r.decisions[1:]
	return d, nil
}

func newLoop(gen genai.Generator, rev Reviewer) *Loop {
	return &Loop{
		Library:   &prompt.Library{Sections: map[string]string{"task": "Ticket $TICKET"}},
		Generator: gen,
		Reviewer:  rev,
		Backoff:   time.Millisecond,
		Now:       func() time.Time { return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC) },
	}
}

func loopTicket() *tracker.TicketContext {
	return &tracker.TicketContext{ID: "DTS-200", Title: "T"}
}

func TestLoop_AcceptFirstDraft(t *testing.T) {
	gen := &scriptGenerator{}
	rev := &scriptReviewer{decisions: []Decision{{Verdict: Accept}}}

	art, err := newLoop(gen, rev).Run(context.Background(), loopTicket())
	if err != nil {
		t.Fatal(err)
	}
	if art.Content != "draft 1" || art.Iteration != 1 || art.TicketID != "DTS-200" {
		t.Fatalf("artifact = %+v", art)
	}
	if art.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestLoop_ReviseThenAccept(t *testing.T) {
	gen := &scriptGenerator{}
	rev := &scriptReviewer{decisions: []Decision{
		{Verdict: Revise, Feedback: "add acceptance criteria"},
		{Verdict: Accept},
	}}

	art, err := newLoop(gen, rev).Run(context.Background(), loopTicket())
	if err != nil {
		t.Fatal(err)
	}
	if art.Content != "draft 2" || art.Iteration != 2 {
		t.Fatalf("artifact = %+v", art)
	}

	// First request carries no history, second carries the critique.
	if len(gen.requests) != 2 {
		t.Fatalf("requests = %d", len(gen.requests))
	}
	if len(gen.requests[0].FeedbackHistory) != 0 {
		t.Errorf("first history = %v", gen.requests[0].FeedbackHistory)
	}
	if got := gen.requests[1].FeedbackHistory; len(got) != 1 || got[0] != "add acceptance criteria" {
		t.Errorf("second history = %v", got)
	}
	// Both drafts are built from the same ticket context, not from each other.
	if gen.requests[0].User != gen.requests[1].User {
		t.Errorf("user prompt changed between drafts: %q vs %q",
			gen.requests[0].User, gen.requests[1].User)
	}
}

func TestLoop_HistoryAccumulatesInOrder(t *testing.T) {
	gen := &scriptGenerator{}
	rev := &scriptReviewer{decisions: []Decision{
		{Verdict: Revise, Feedback: "first"},
		{Verdict: Revise, Feedback: "second"},
		{Verdict: Accept},
	}}

	art, err := newLoop(gen, rev).Run(context.Background(), loopTicket())
	if err != nil {
		t.Fatal(err)
	}
	if art.Iteration != 3 {
		t.Errorf("iteration = %d", art.Iteration)
	}
	got := gen.requests[2].FeedbackHistory
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("history = %v", got)
	}
}

func TestLoop_Abort(t *testing.T) {
	gen := &scriptGenerator{}
	rev := &scriptReviewer{decisions: []Decision{
		{Verdict: Revise, Feedback: "meh"},
		{Verdict: Abort},
	}}

	art, err := newLoop(gen, rev).Run(context.Background(), loopTicket())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("err = %v", err)
	}
	if art != nil {
		t.Fatal("artifact produced on abort")
	}
}

func TestLoop_RetriesTransientBackendFailure(t *testing.T) {
	gen := &scriptGenerator{
		failFirst: 2,
		failWith:  &faults.TransientError{Op: "genai", Err: errors.New("503")},
	}
	rev := &scriptReviewer{decisions: []Decision{{Verdict: Accept}}}

	art, err := newLoop(gen, rev).Run(context.Background(), loopTicket())
	if err != nil {
		t.Fatal(err)
	}
	if art.Iteration != 1 {
		t.Errorf("retries counted as iterations: %d", art.Iteration)
	}
}

func TestLoop_QuotaIsFatal(t *testing.T) {
	gen := &scriptGenerator{
		failFirst: 1,
		failWith:  fmt.Errorf("genai: %w", genai.ErrQuota),
	}
	rev := &scriptReviewer{decisions: []Decision{{Verdict: Accept}}}

	_, err := newLoop(gen, rev).Run(context.Background(), loopTicket())
	if !errors.Is(err, genai.ErrQuota) {
		t.Fatalf("err = %v", err)
	}
	if len(gen.requests) != 0 {
		t.Error("quota failure was retried")
	}
}

func TestLoop_TemplateErrorBeforeGeneration(t *testing.T) {
	l := newLoop(&scriptGenerator{}, &scriptReviewer{})
	l.Library = &prompt.Library{Sections: map[string]string{"task": "$NOPE"}}

	_, err := l.Run(context.Background(), loopTicket())
	var terr *prompt.TemplateError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v", err)
	}
}
