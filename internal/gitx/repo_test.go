package gitx

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a throwaway repository with one commit on main.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init")
	run("checkout", "-b", "main")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "Test")
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# repo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", "README.md")
	run("commit", "-m", "initial")
	return dir
}

func TestOpen(t *testing.T) {
	dir := initRepo(t)
	sub := filepath.Join(dir, "docs")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	repo, err := Open(context.Background(), sub)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := filepath.EvalSymlinks(repo.Dir)
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("Dir = %q, want %q", got, want)
	}
	if repo.Remote != "origin" {
		t.Errorf("Remote = %q", repo.Remote)
	}
}

func TestOpen_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	if _, err := Open(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected error outside a repository")
	}
}

func TestRepo_BranchAndCommit(t *testing.T) {
	ctx := context.Background()
	dir := initRepo(t)
	repo := &Repo{Dir: dir, Remote: "origin"}

	locals, err := repo.LocalBranches(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(locals) != 1 || locals[0] != "main" {
		t.Fatalf("locals = %v", locals)
	}

	if err := repo.CreateBranch(ctx, "feature/DTS-200", "main"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Checkout(ctx, "feature/DTS-200"); err != nil {
		t.Fatal(err)
	}

	mainTip, err := repo.Tip(ctx, "main")
	if err != nil {
		t.Fatal(err)
	}
	branchTip, err := repo.Tip(ctx, "feature/DTS-200")
	if err != nil {
		t.Fatal(err)
	}
	if mainTip != branchTip {
		t.Errorf("new branch tip %s != base tip %s", branchTip, mainTip)
	}

	docPath := filepath.Join(dir, "docs", ".tasks", "DTS-200.md")
	if err := os.MkdirAll(filepath.Dir(docPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(docPath, []byte("# DTS-200\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := repo.Commit(ctx, "docs: add DTS-200 task document (test)", "docs/.tasks/DTS-200.md"); err != nil {
		t.Fatal(err)
	}

	newTip, err := repo.Tip(ctx, "feature/DTS-200")
	if err != nil {
		t.Fatal(err)
	}
	if newTip == branchTip {
		t.Error("commit did not advance the branch")
	}
}

func TestRepo_DefaultBranchFallsBackToProbe(t *testing.T) {
	dir := initRepo(t)
	repo := &Repo{Dir: dir, Remote: "origin"}
	// No remote HEAD configured, so probing finds the local main.
	if got := repo.DefaultBranch(context.Background()); got != "main" {
		t.Errorf("DefaultBranch = %q", got)
	}
}
