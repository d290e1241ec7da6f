package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/autodoc-cli/autodoc/internal/document"
	"github.com/autodoc-cli/autodoc/internal/gitx"
	"github.com/autodoc-cli/autodoc/internal/review"
	"github.com/autodoc-cli/autodoc/internal/tracker"
	"github.com/autodoc-cli/autodoc/internal/ux"
)

// Stage identifies the last workflow stage that completed. It is recorded
// before the next stage is attempted, so a failure always reports how far
// the run progressed.
type Stage int

const (
	// StageNone means the run failed before context resolution completed.
	StageNone Stage = iota
	StageContext
	StageBranch
	StageGenerated
	StagePersisted
	StageCommitted
)

func (s Stage) String() string {
	switch s {
	case StageContext:
		return "context"
	case StageBranch:
		return "branch"
	case StageGenerated:
		return "generated"
	case StagePersisted:
		return "persisted"
	case StageCommitted:
		return "committed"
	default:
		return "none"
	}
}

// Result is the single return value of an orchestrated run.
type Result struct {
	Stage Stage
	Path  string // persisted artifact path, when one was written
	Err   error
}

// Workflow sequences context resolution, branch resolution, the generation
// loop, persistence, and commit/push. It is forward-only: a failure in a
// later stage never rolls back an earlier one.
type Workflow struct {
	Resolver *tracker.Resolver
	Loop     *review.Loop

	// Git, RepoRoot, BranchPrefix, and DefaultBranch are used only by
	// FullRun. An empty DefaultBranch means auto-detect from the repository.
	Git           gitx.Client
	RepoRoot      string
	BranchPrefix  string
	DefaultBranch string
}

// canonicalID normalizes a user-supplied ticket id: trimmed and upper-cased,
// the same rule branch naming applies, so the tracker fetch, the artifact
// file name, and the branch name all agree on one spelling.
func canonicalID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// CommitMessage is the deterministic message used for the docs commit.
func CommitMessage(ticketID, title string) string {
	return fmt.Sprintf("docs: add %s task document (%s)", ticketID, title)
}

// GenerateOnly resolves the ticket, runs the generation loop, and writes the
// artifact into dir. No branch or commit step.
func (w *Workflow) GenerateOnly(ctx context.Context, ticketID, dir string) Result {
	var res Result
	ticketID = canonicalID(ticketID)

	tc, err := w.resolveContext(ctx, ticketID)
	if err != nil {
		res.Err = err
		return res
	}
	res.Stage = StageContext

	art, err := w.generate(ctx, tc)
	if err != nil {
		res.Err = err
		return res
	}
	res.Stage = StageGenerated

	path, err := art.SaveTo(dir)
	if err != nil {
		res.Err = err
		return res
	}
	res.Stage = StagePersisted
	res.Path = path
	return res
}

// GenerateToDocs is GenerateOnly with the conventional docs subpath under
// root as the persistence target.
func (w *Workflow) GenerateToDocs(ctx context.Context, ticketID, root string) Result {
	return w.GenerateOnly(ctx, ticketID, filepath.Join(root, filepath.FromSlash(document.TasksSubdir)))
}

// FullRun executes the complete workflow: context, branch, generate, persist
// under the docs path, commit with a deterministic message, push.
func (w *Workflow) FullRun(ctx context.Context, ticketID string) Result {
	var res Result
	ticketID = canonicalID(ticketID)

	tc, err := w.resolveContext(ctx, ticketID)
	if err != nil {
		res.Err = err
		return res
	}
	res.Stage = StageContext

	branch := gitx.BranchName(w.BranchPrefix, ticketID)
	ux.StageHeader("branch", branch)
	if _, err := gitx.ResolveBranch(ctx, w.Git, branch, w.DefaultBranch); err != nil {
		res.Err = err
		return res
	}
	ux.StageComplete("working tree on " + branch)
	res.Stage = StageBranch

	art, err := w.generate(ctx, tc)
	if err != nil {
		res.Err = err
		return res
	}
	res.Stage = StageGenerated

	path := art.TasksPath(w.RepoRoot)
	if err := art.Save(path); err != nil {
		res.Err = err
		return res
	}
	res.Stage = StagePersisted
	res.Path = path

	ux.StageHeader("commit", branch)
	rel, err := filepath.Rel(w.RepoRoot, path)
	if err != nil {
		res.Err = fmt.Errorf("workflow: resolving commit path: %w", err)
		return res
	}
	if err := w.Git.Commit(ctx, CommitMessage(tc.ID, tc.Title), rel); err != nil {
		res.Err = err
		return res
	}
	if err := w.Git.Push(ctx, branch); err != nil {
		res.Err = err
		return res
	}
	ux.StageComplete("committed and pushed to " + branch)
	res.Stage = StageCommitted
	return res
}

func (w *Workflow) resolveContext(ctx context.Context, ticketID string) (*tracker.TicketContext, error) {
	ux.StageHeader("context", ticketID)
	tc, err := w.Resolver.Resolve(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	fmt.Println(ux.TicketPanel(tc))
	return tc, nil
}

func (w *Workflow) generate(ctx context.Context, tc *tracker.TicketContext) (*document.Artifact, error) {
	ux.StageHeader("generate", tc.ID)
	art, err := w.Loop.Run(ctx, tc)
	if err != nil {
		return nil, err
	}
	ux.StageComplete(fmt.Sprintf("draft accepted at iteration %d", art.Iteration))
	return art, nil
}
