package gitx

import (
	"fmt"
	"strings"
)

// DefaultPrefix is the conventional branch prefix for ticket branches.
const DefaultPrefix = "feature/"

// BranchName maps a ticket id to its canonical branch name: the prefix plus
// the trimmed, upper-cased id. Deterministic and idempotent.
func BranchName(prefix, ticketID string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + strings.ToUpper(strings.TrimSpace(ticketID))
}

// BranchRef is the observed state of a ticket branch. Looked up fresh per
// workflow run, never cached.
type BranchRef struct {
	Name           string
	ExistsLocally  bool
	ExistsRemotely bool
	LocalTip       string
	RemoteTip      string
}

// ConflictError means the branch exists on both sides with diverging tips.
// Automatic reconciliation of diverged history is unsafe, so this is a hard
// failure; both tips are reported to aid manual resolution.
type ConflictError struct {
	Branch    string
	LocalTip  string
	RemoteTip string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("branch %s has diverged: local tip %s, remote tip %s — resolve manually",
		e.Branch, e.LocalTip, e.RemoteTip)
}

// Plan is the set of mutations needed to put the working tree on the ticket
// branch with local and remote in sync.
type Plan struct {
	// Create makes a new branch from the default branch tip.
	Create bool
	// Checkout switches the working tree onto the existing local branch.
	Checkout bool
	// Track creates the local branch from the remote one and checks it out.
	Track bool
	// Push publishes the branch upstream (new branch, or local-only sync).
	Push bool
}

// PlanBranch decides what to do for the observed branch state. Pure: no
// repository access, so the decision table is testable on its own.
//
//   - neither side:  create from the default tip, then push upstream
//   - local only:    checkout, then push so the branch exists remotely
//   - remote only:   checkout-and-track the remote branch
//   - both, equal tips:     checkout, no mutation needed
//   - both, differing tips: ConflictError, mutate nothing
func PlanBranch(ref *BranchRef) (Plan, error) {
	switch {
	case !ref.ExistsLocally && !ref.ExistsRemotely:
		return Plan{Create: true, Checkout: true, Push: true}, nil
	case ref.ExistsLocally && !ref.ExistsRemotely:
		return Plan{Checkout: true, Push: true}, nil
	case !ref.ExistsLocally && ref.ExistsRemotely:
		return Plan{Track: true}, nil
	default:
		if ref.LocalTip != ref.RemoteTip {
			return Plan{}, &ConflictError{
				Branch:    ref.Name,
				LocalTip:  ref.LocalTip,
				RemoteTip: ref.RemoteTip,
			}
		}
		return Plan{Checkout: true}, nil
	}
}
