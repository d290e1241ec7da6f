package tracker

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/autodoc-cli/autodoc/internal/faults"
)

const (
	fetchAttempts = 3
	fetchBackoff  = 500 * time.Millisecond
)

// Resolver turns a ticket id into a TicketContext, enriching it with the
// direct parent ticket when one is declared.
type Resolver struct {
	Client Client

	// WarnWriter receives degraded-mode warnings (parent fetch failures).
	// Defaults to os.Stderr.
	WarnWriter io.Writer

	// Backoff is the initial retry delay for transient fetch failures.
	// Defaults to fetchBackoff; tests set it to a small value.
	Backoff time.Duration
}

// NewResolver creates a resolver backed by the given client.
func NewResolver(c Client) *Resolver {
	return &Resolver{Client: c}
}

// Resolve fetches the ticket and, if it declares a parent, issues exactly one
// additional fetch for it. Transient fetch failures for the ticket itself are
// retried with backoff. Parent enrichment is best-effort: any parent failure
// leaves Parent nil and records a warning instead of failing the resolution.
func (r *Resolver) Resolve(ctx context.Context, id string) (*TicketContext, error) {
	backoff := r.Backoff
	if backoff == 0 {
		backoff = fetchBackoff
	}

	var raw *RawTicket
	err := faults.Retry(ctx, fetchAttempts, backoff, func() error {
		var ferr error
		raw, ferr = r.Client.Fetch(ctx, id)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	tc := raw.context()
	parentKey := raw.ParentKey()
	if parentKey == "" {
		return tc, nil
	}

	parentRaw, err := r.Client.Fetch(ctx, parentKey)
	if err != nil {
		r.warnf("warning: could not fetch parent ticket %s: %v\n", parentKey, err)
		return tc, nil
	}
	// Only the direct parent is attached; its own parent, if any, is ignored.
	tc.Parent = parentRaw.context()
	return tc, nil
}

func (r *Resolver) warnf(format string, args ...any) {
	w := r.WarnWriter
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, format, args...)
}
