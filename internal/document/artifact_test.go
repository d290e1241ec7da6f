package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestArtifact_SaveTo(t *testing.T) {
	dir := t.TempDir()
	a := &Artifact{Content: "# Doc\n", TicketID: "DTS-100", GeneratedAt: time.Now(), Iteration: 1}

	path, err := a.SaveTo(dir)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "DTS-100.md") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "# Doc\n" {
		t.Errorf("content = %q", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestArtifact_SaveCreatesDirectories(t *testing.T) {
	root := t.TempDir()
	a := &Artifact{Content: "body", TicketID: "DTS-200"}

	path := a.TasksPath(root)
	if err := a.Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(root, "docs", ".tasks", "DTS-200.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "body" {
		t.Errorf("content = %q", data)
	}
}

func TestArtifact_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	a := &Artifact{Content: "first", TicketID: "DTS-1"}
	if _, err := a.SaveTo(dir); err != nil {
		t.Fatal(err)
	}
	a.Content = "second"
	path, err := a.SaveTo(dir)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Errorf("content = %q", data)
	}
}

func TestArtifact_SaveReportsWriteError(t *testing.T) {
	dir := t.TempDir()
	// A file where a directory is needed forces MkdirAll to fail.
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	a := &Artifact{Content: "x", TicketID: "DTS-1"}
	err := a.Save(filepath.Join(blocker, "sub", "DTS-1.md"))
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("err = %v", err)
	}
}

func TestArtifact_Sections(t *testing.T) {
	a := &Artifact{Content: `# Rate limiting

Intro paragraph.

## Task Description

Do the thing.

## Technical Requirements

- item one
- item two
`}
	sections := a.Sections()
	if len(sections) != 3 {
		t.Fatalf("sections = %+v", sections)
	}
	if sections[0].Title != "Rate limiting" || sections[0].Content != "Intro paragraph." {
		t.Errorf("section 0 = %+v", sections[0])
	}
	if sections[1].Title != "Task Description" || sections[1].Content != "Do the thing." {
		t.Errorf("section 1 = %+v", sections[1])
	}
	if sections[2].Title != "Technical Requirements" {
		t.Errorf("section 2 = %+v", sections[2])
	}
}

func TestArtifact_Sections_NoHeadings(t *testing.T) {
	a := &Artifact{Content: "just prose\nsecond line"}
	sections := a.Sections()
	if len(sections) != 1 {
		t.Fatalf("sections = %+v", sections)
	}
	if sections[0].Title != "" || sections[0].Content != "just prose\nsecond line" {
		t.Errorf("section = %+v", sections[0])
	}
}

func TestArtifact_Sections_Empty(t *testing.T) {
	a := &Artifact{Content: "\n\n"}
	if got := a.Sections(); len(got) != 0 {
		t.Fatalf("sections = %+v", got)
	}
}

func TestArtifact_Title(t *testing.T) {
	a := &Artifact{Content: "preamble\n# The Title\nbody", TicketID: "DTS-9"}
	if got := a.Title(); got != "The Title" {
		t.Errorf("title = %q", got)
	}
	a.Content = "no headings here"
	if got := a.Title(); got != "DTS-9" {
		t.Errorf("title = %q", got)
	}
}
