package document

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TasksSubdir is the conventional repository location for task documents.
const TasksSubdir = "docs/.tasks"

// Artifact is the accepted, finalized document of one workflow run.
// Immutable after acceptance.
type Artifact struct {
	Content     string
	TicketID    string
	GeneratedAt time.Time
	Iteration   int
}

// WriteError reports a local persistence failure.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("document: writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// FileName returns the artifact's conventional file name.
func (a *Artifact) FileName() string {
	return a.TicketID + ".md"
}

// Save writes the artifact to path, creating intermediate directories.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a truncated document behind.
func (a *Artifact) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := writeFileAtomic(path, []byte(a.Content), 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// SaveTo writes the artifact under dir using its conventional file name and
// returns the full path.
func (a *Artifact) SaveTo(dir string) (string, error) {
	path := filepath.Join(dir, a.FileName())
	if err := a.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// TasksPath returns the conventional docs path for the artifact inside
// repoRoot: <repoRoot>/docs/.tasks/<TICKET>.md.
func (a *Artifact) TasksPath(repoRoot string) string {
	return filepath.Join(repoRoot, filepath.FromSlash(TasksSubdir), a.FileName())
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
