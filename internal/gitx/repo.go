package gitx

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/autodoc-cli/autodoc/internal/faults"
)

// ErrPermission means the remote rejected a mutation for authorization
// reasons. Fatal: retrying will not help until credentials change.
var ErrPermission = errors.New("git: permission denied by remote")

// Repo is the source-control collaborator, bound to one working tree.
// All operations shell out to git, the authoritative implementation.
type Repo struct {
	Dir    string
	Remote string
}

// Open returns the Repo for the repository enclosing dir, or an error if dir
// is not inside a git working tree.
func Open(ctx context.Context, dir string) (*Repo, error) {
	out, err := gitIn(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("gitx: %s is not inside a git repository: %w", dir, err)
	}
	return &Repo{Dir: strings.TrimSpace(out), Remote: "origin"}, nil
}

// Clone clones url into dir. Credentials, when given, are embedded in the
// clone URL with URL encoding so special characters survive.
func Clone(ctx context.Context, rawURL, username, password, dir string) (*Repo, error) {
	cloneURL := rawURL
	if username != "" {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("gitx: parse repo url: %w", err)
		}
		u.User = url.UserPassword(username, password)
		cloneURL = u.String()
	}
	if _, err := gitIn(ctx, "", "clone", cloneURL, dir); err != nil {
		return nil, fmt.Errorf("gitx: clone: %w", err)
	}
	return &Repo{Dir: dir, Remote: "origin"}, nil
}

// LocalBranches returns the short names of all local branches.
func (r *Repo) LocalBranches(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, fmt.Errorf("gitx: list local branches: %w", err)
	}
	return splitLines(out), nil
}

// RemoteBranches queries the remote for its branch heads and returns a map of
// short branch name to tip hash. This goes over the network so the answer is
// authoritative, not a stale remote-tracking view.
func (r *Repo) RemoteBranches(ctx context.Context) (map[string]string, error) {
	out, err := r.git(ctx, "ls-remote", "--heads", r.Remote)
	if err != nil {
		return nil, fmt.Errorf("gitx: list remote branches: %w", err)
	}
	branches := make(map[string]string)
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		branches[strings.TrimPrefix(fields[1], "refs/heads/")] = fields[0]
	}
	return branches, nil
}

// Tip returns the commit hash a local ref points at.
func (r *Repo) Tip(ctx context.Context, ref string) (string, error) {
	out, err := r.git(ctx, "rev-parse", ref)
	if err != nil {
		return "", fmt.Errorf("gitx: rev-parse %s: %w", ref, err)
	}
	return strings.TrimSpace(out), nil
}

// DefaultBranch returns the remote's default branch, falling back to probing
// common names and finally "main".
func (r *Repo) DefaultBranch(ctx context.Context) string {
	out, err := r.git(ctx, "symbolic-ref", "--short", "refs/remotes/"+r.Remote+"/HEAD")
	if err == nil {
		ref := strings.TrimSpace(out)
		if _, after, ok := strings.Cut(ref, "/"); ok {
			return after
		}
	}
	for _, name := range []string{"main", "master", "develop", "release"} {
		if _, err := r.git(ctx, "rev-parse", "--verify", name); err == nil {
			return name
		}
	}
	return "main"
}

// CreateBranch creates a branch at the given start point without switching.
func (r *Repo) CreateBranch(ctx context.Context, name, from string) error {
	if _, err := r.git(ctx, "branch", name, from); err != nil {
		return fmt.Errorf("gitx: create branch %s: %w", name, err)
	}
	return nil
}

// Checkout switches the working tree onto an existing local branch.
func (r *Repo) Checkout(ctx context.Context, name string) error {
	if _, err := r.git(ctx, "checkout", name); err != nil {
		return fmt.Errorf("gitx: checkout %s: %w", name, err)
	}
	return nil
}

// CheckoutTrack fetches the remote branch and checks it out as a new local
// branch tracking it.
func (r *Repo) CheckoutTrack(ctx context.Context, name string) error {
	if _, err := r.git(ctx, "fetch", r.Remote, name); err != nil {
		return fmt.Errorf("gitx: fetch %s: %w", name, err)
	}
	if _, err := r.git(ctx, "checkout", "-b", name, r.Remote+"/"+name); err != nil {
		return fmt.Errorf("gitx: checkout tracking %s: %w", name, err)
	}
	return nil
}

// Commit stages the given paths and commits them with message.
func (r *Repo) Commit(ctx context.Context, message string, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	if _, err := r.git(ctx, args...); err != nil {
		return fmt.Errorf("gitx: add: %w", err)
	}
	if _, err := r.git(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("gitx: commit: %w", err)
	}
	return nil
}

// Push publishes the branch to the remote, setting upstream tracking.
func (r *Repo) Push(ctx context.Context, name string) error {
	if _, err := r.git(ctx, "push", "-u", r.Remote, name); err != nil {
		return fmt.Errorf("gitx: push %s: %w", name, err)
	}
	return nil
}

func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	return gitIn(ctx, r.Dir, args...)
}

// gitIn runs git with the given args in dir and classifies failures so
// callers can tell permission problems from transient network trouble.
func gitIn(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", classify(args[0], strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}

// classify maps git's stderr text onto the error taxonomy. Git does not
// expose structured errors, so this is substring matching on the usual
// phrasings of auth and network failures.
func classify(op, output string, err error) error {
	lower := strings.ToLower(output)
	switch {
	case strings.Contains(lower, "permission denied"),
		strings.Contains(lower, "authentication failed"),
		strings.Contains(lower, "could not read username"),
		strings.Contains(lower, "403"):
		return fmt.Errorf("git %s: %s: %w", op, output, ErrPermission)
	case strings.Contains(lower, "could not resolve host"),
		strings.Contains(lower, "unable to access"),
		strings.Contains(lower, "connection"),
		strings.Contains(lower, "timed out"),
		strings.Contains(lower, "early eof"):
		return &faults.TransientError{
			Op:  "git " + op,
			Err: fmt.Errorf("%s", output),
		}
	}
	if output == "" {
		return fmt.Errorf("git %s: %w", op, err)
	}
	return fmt.Errorf("git %s: %s", op, output)
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
