package review

import (
	"context"
	"errors"
	"time"

	"github.com/autodoc-cli/autodoc/internal/document"
	"github.com/autodoc-cli/autodoc/internal/faults"
	"github.com/autodoc-cli/autodoc/internal/genai"
	"github.com/autodoc-cli/autodoc/internal/prompt"
	"github.com/autodoc-cli/autodoc/internal/tracker"
)

// ErrAborted means the user cancelled the loop at a review checkpoint.
// No artifact is produced.
var ErrAborted = errors.New("review: aborted by user")

const (
	backendAttempts = 3
	backendBackoff  = 2 * time.Second
)

// Verdict is the reviewer's decision on a draft.
type Verdict int

const (
	// Accept finalizes the current draft as the artifact.
	Accept Verdict = iota
	// Revise rejects the draft and supplies feedback for the next one.
	Revise
	// Abort ends the loop without producing an artifact.
	Abort
)

// Decision is what a Reviewer returns for each draft.
type Decision struct {
	Verdict  Verdict
	Feedback string
}

// Reviewer is the interactive capability the loop suspends on. The terminal
// implementation blocks on stdin; tests feed scripted decisions.
type Reviewer interface {
	Review(ctx context.Context, draft string, iteration int) (Decision, error)
}

// loop states. Drafting and awaitingReview alternate until the reviewer
// accepts or aborts; revising carries the updated feedback history back
// into drafting.
type state int

const (
	stateDrafting state = iota
	stateAwaitingReview
	stateRevising
	stateAccepted
	stateAborted
)

// Loop drives the generate/critique/regenerate cycle for one ticket.
type Loop struct {
	Library   *prompt.Library
	Generator genai.Generator
	Reviewer  Reviewer

	// Backoff overrides the initial backend retry delay. Zero means the
	// default; tests set a small value.
	Backoff time.Duration

	// Now overrides the artifact timestamp source. Zero value means time.Now.
	Now func() time.Time
}

// Run executes the loop until the reviewer accepts or aborts. Every draft is
// generated from the original ticket context plus the entire accumulated
// feedback history, never as a diff against the previous draft. Exactly one
// artifact is produced on acceptance, with Iteration equal to the number of
// drafting passes performed.
func (l *Loop) Run(ctx context.Context, tc *tracker.TicketContext) (*document.Artifact, error) {
	backoff := l.Backoff
	if backoff == 0 {
		backoff = backendBackoff
	}

	var history []string
	var draft string
	iteration := 0

	for st := stateDrafting; ; {
		switch st {
		case stateDrafting:
			req, err := prompt.Assemble(tc, l.Library, history)
			if err != nil {
				return nil, err
			}
			// Transient backend failures are retried with backoff; anything
			// else (quota, malformed response) is fatal immediately.
			err = faults.Retry(ctx, backendAttempts, backoff, func() error {
				var gerr error
				draft, gerr = l.Generator.Generate(ctx, req)
				return gerr
			})
			if err != nil {
				return nil, err
			}
			iteration++
			st = stateAwaitingReview

		case stateAwaitingReview:
			dec, err := l.Reviewer.Review(ctx, draft, iteration)
			if err != nil {
				return nil, err
			}
			switch dec.Verdict {
			case Accept:
				st = stateAccepted
			case Revise:
				history = append(history, dec.Feedback)
				st = stateRevising
			case Abort:
				st = stateAborted
			}

		case stateRevising:
			st = stateDrafting

		case stateAccepted:
			now := time.Now
			if l.Now != nil {
				now = l.Now
			}
			return &document.Artifact{
				Content:     draft,
				TicketID:    tc.ID,
				GeneratedAt: now(),
				Iteration:   iteration,
			}, nil

		case stateAborted:
			return nil, ErrAborted
		}
	}
}
