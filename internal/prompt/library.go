package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// maxExampleSize caps each example document included in the system prompt.
	maxExampleSize = 32 * 1024

	// DefaultMaxExamples bounds how many example documents are sent per request.
	DefaultMaxExamples = 5
)

// Example is one reference document shown to the backend as a formatting model.
type Example struct {
	Name    string
	Content string
}

// Library holds the prompt material loaded from disk: named sections from a
// markdown prompts file plus an ordered set of example documents.
type Library struct {
	Sections map[string]string
	Examples []Example
}

// Load reads the prompts file and the examples directory. A missing prompts
// file or examples directory is not an error (the built-in defaults cover
// both) but an unreadable file is. Examples are ordered by file name so the
// assembled prompt is deterministic, and capped at maxExamples entries.
func Load(promptsPath, examplesDir string, maxExamples int) (*Library, error) {
	if maxExamples <= 0 {
		maxExamples = DefaultMaxExamples
	}

	lib := &Library{Sections: make(map[string]string)}

	if promptsPath != "" {
		data, err := os.ReadFile(promptsPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("prompt: reading %s: %w", promptsPath, err)
		}
		if err == nil {
			lib.Sections = parseSections(string(data))
		}
	}

	if examplesDir != "" {
		examples, err := loadExamples(examplesDir, maxExamples)
		if err != nil {
			return nil, err
		}
		lib.Examples = examples
	}

	return lib, nil
}

// parseSections splits a markdown file into sections keyed by their
// "## " heading. Top-level "# " headings are ignored.
func parseSections(text string) map[string]string {
	sections := make(map[string]string)
	var name string
	var buf []string

	flush := func() {
		if name != "" {
			sections[name] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			flush()
			name = strings.TrimSpace(strings.TrimPrefix(line, "## "))
			buf = buf[:0]
		case strings.HasPrefix(line, "# "):
			continue
		default:
			buf = append(buf, line)
		}
	}
	flush()
	return sections
}

func loadExamples(dir string, maxExamples int) ([]Example, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("prompt: listing examples in %s: %w", dir, err)
	}
	sort.Strings(matches)

	var examples []Example
	for _, path := range matches {
		if len(examples) >= maxExamples {
			break
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("prompt: reading example %s: %w", path, err)
		}
		content := string(data)
		if len(content) > maxExampleSize {
			content = content[:maxExampleSize] + "\n... (truncated)"
		}
		examples = append(examples, Example{
			Name:    filepath.Base(path),
			Content: content,
		})
	}
	return examples, nil
}

// Section returns the named section, or fallback if the file did not define it.
func (l *Library) Section(name, fallback string) string {
	if s, ok := l.Sections[name]; ok && s != "" {
		return s
	}
	return fallback
}
