package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/autodoc-cli/autodoc/internal/config"
	"github.com/autodoc-cli/autodoc/internal/ux"
)

var promptsTemplate = `# autodoc prompts

Sections below are merged into the generation request. Edit freely;
run 'autodoc docs prompts' for the variable reference.

## system

You are a task analysis assistant. Given issue-tracker ticket information,
you produce a clear, detailed task document in plain Markdown.

Output rules:
1. Use a single level-one heading (#) as the document title.
2. Use level-two headings (##) for sections such as "Task Description",
   "Background", and "Technical Requirements".
3. Output Markdown only — no JSON, no fences around the whole document.

## task

Ticket information:
Ticket ID: $TICKET
Title: $TITLE
Description: $DESCRIPTION
Status: $STATUS

$PARENT_INFO

Generate a clear, detailed Markdown task document from the information above.
`

var exampleDocument = `# PROJ-101 — Add rate limiting to the public API

## Task Description

Introduce per-client rate limiting on all public API endpoints so a single
misbehaving integration cannot degrade service for everyone else.

## Background

Two incidents last quarter were traced to a partner script retrying in a
tight loop. The gateway currently applies no per-client limits.

## Technical Requirements

- Token-bucket limiter keyed by API client id
- Limits configurable per client tier, with a safe default
- 429 responses must include a Retry-After header

## Acceptance Criteria

- Load test demonstrates an abusive client is throttled while others are not
- Limits are observable in the operations dashboard
`

// Init writes the config file, the default prompts file, and one example
// document under the autodoc config directory. Existing files are left
// untouched so re-running init never destroys local edits.
func Init(cfg *config.Config) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(dir, "config.yaml")
	promptsPath := filepath.Join(dir, "prompts.md")
	examplePath := filepath.Join(dir, "examples", "example-task.md")

	var written []string

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := config.Save(cfg, configPath); err != nil {
			return err
		}
		written = append(written, configPath)
	} else {
		fmt.Printf("  %sconfig exists, leaving %s untouched%s\n", ux.Dim, configPath, ux.Reset)
	}

	files := map[string]string{
		promptsPath: promptsTemplate,
		examplePath: exampleDocument,
	}
	for path, content := range files {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("scaffold: creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("scaffold: writing %s: %w", path, err)
		}
		written = append(written, path)
	}

	if len(written) > 0 {
		fmt.Printf("\n%sCreated:%s\n", ux.Bold, ux.Reset)
		for _, p := range written {
			fmt.Printf("  %s\n", p)
		}
	}
	fmt.Printf("\n  Add more example documents to %s to steer formatting.\n", filepath.Join(dir, "examples"))
	fmt.Printf("  Next: %sautodoc doc <ticket>%s\n\n", ux.Cyan, ux.Reset)
	return nil
}
