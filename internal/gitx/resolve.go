package gitx

import (
	"context"
	"fmt"
)

// Client is the source-control surface the branch engine and the workflow
// depend on. *Repo implements it over real git; tests use fakes.
type Client interface {
	LocalBranches(ctx context.Context) ([]string, error)
	RemoteBranches(ctx context.Context) (map[string]string, error)
	Tip(ctx context.Context, ref string) (string, error)
	DefaultBranch(ctx context.Context) string
	CreateBranch(ctx context.Context, name, from string) error
	Checkout(ctx context.Context, name string) error
	CheckoutTrack(ctx context.Context, name string) error
	Commit(ctx context.Context, message string, paths ...string) error
	Push(ctx context.Context, name string) error
}

// ResolveBranch looks up the branch on both sides, plans the required
// mutations, and applies them, leaving the working tree on the branch.
// Local state is checked first, then the remote; when the branch exists on
// exactly one side the other side is brought in sync as a secondary step.
// A failed sync surfaces as an error rather than being silently skipped.
// A new branch starts at defaultBranch; empty means auto-detect.
func ResolveBranch(ctx context.Context, c Client, name, defaultBranch string) (*BranchRef, error) {
	ref := &BranchRef{Name: name}

	locals, err := c.LocalBranches(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range locals {
		if b == name {
			ref.ExistsLocally = true
			break
		}
	}
	if ref.ExistsLocally {
		tip, err := c.Tip(ctx, name)
		if err != nil {
			return nil, err
		}
		ref.LocalTip = tip
	}

	remotes, err := c.RemoteBranches(ctx)
	if err != nil {
		return nil, err
	}
	if tip, ok := remotes[name]; ok {
		ref.ExistsRemotely = true
		ref.RemoteTip = tip
	}

	plan, err := PlanBranch(ref)
	if err != nil {
		return nil, err
	}

	if plan.Create {
		from := defaultBranch
		if from == "" {
			from = c.DefaultBranch(ctx)
		}
		if err := c.CreateBranch(ctx, name, from); err != nil {
			return nil, err
		}
		ref.ExistsLocally = true
	}
	switch {
	case plan.Track:
		if err := c.CheckoutTrack(ctx, name); err != nil {
			return nil, err
		}
		ref.ExistsLocally = true
		ref.LocalTip = ref.RemoteTip
	case plan.Checkout:
		if err := c.Checkout(ctx, name); err != nil {
			return nil, err
		}
	}
	if plan.Push {
		if err := c.Push(ctx, name); err != nil {
			return nil, fmt.Errorf("branch %s exists locally but could not be published: %w", name, err)
		}
		ref.ExistsRemotely = true
	}

	return ref, nil
}
