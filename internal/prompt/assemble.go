package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/autodoc-cli/autodoc/internal/tracker"
)

// Section names recognized in the prompts file.
const (
	SectionSystem = "system"
	SectionTask   = "task"
)

// defaultSystem is used when the prompts file has no "system" section.
const defaultSystem = `You are a task analysis assistant. Given issue-tracker ticket
information, you produce a clear, detailed task document in plain Markdown.

Output rules:
1. Use a single level-one heading (#) as the document title.
2. Use level-two headings (##) for sections such as "Task Description",
   "Background", and "Technical Requirements".
3. Output Markdown only — no JSON, no fences around the whole document.`

// defaultTask is used when the prompts file has no "task" section.
const defaultTask = `Ticket information:
Ticket ID: $TICKET
Title: $TITLE
Description: $DESCRIPTION
Status: $STATUS

$PARENT_INFO

Generate a clear, detailed Markdown task document from the information above.`

// Request is a fully assembled generation request. FeedbackHistory carries
// every critique from the current invocation, oldest first, so the backend
// always sees the complete revision trail.
type Request struct {
	System          string
	User            string
	FeedbackHistory []string
}

// TemplateError reports a template variable the ticket context cannot supply.
type TemplateError struct {
	Var string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("prompt: template references unknown variable $%s", e.Var)
}

// Assemble merges the ticket context, the library's prompt sections and
// examples, and the accumulated feedback history into one request. It is
// pure: identical inputs always produce a byte-identical request.
func Assemble(tc *tracker.TicketContext, lib *Library, history []string) (*Request, error) {
	task := lib.Section(SectionTask, defaultTask)
	user, err := expand(task, contextVars(tc))
	if err != nil {
		return nil, err
	}

	var sys strings.Builder
	sys.WriteString(lib.Section(SectionSystem, defaultSystem))
	if len(lib.Examples) > 0 {
		sys.WriteString("\n\nReference documents — match their structure and tone:\n")
		for i, ex := range lib.Examples {
			fmt.Fprintf(&sys, "\nExample %d (%s):\n```\n%s\n```\n", i+1, ex.Name, ex.Content)
		}
	}

	req := &Request{
		System: sys.String(),
		User:   user,
	}
	if len(history) > 0 {
		req.FeedbackHistory = make([]string, len(history))
		copy(req.FeedbackHistory, history)
	}
	return req, nil
}

// contextVars builds the substitution map for the task template. Parent
// information renders as a block when present and as an empty string when
// absent, matching the behavior of optional prompt material.
func contextVars(tc *tracker.TicketContext) map[string]string {
	vars := map[string]string{
		"TICKET":      tc.ID,
		"TITLE":       tc.Title,
		"STATUS":      tc.Status,
		"DESCRIPTION": tc.Description,
		"PARENT_INFO": parentInfo(tc.Parent),
	}
	for k, v := range tc.Fields {
		vars[strings.ToUpper(k)] = v
	}
	return vars
}

func parentInfo(parent *tracker.TicketContext) string {
	if parent == nil {
		return ""
	}
	return fmt.Sprintf("Parent ticket:\nParent ID: %s\nParent title: %s\nParent description: %s",
		parent.ID, parent.Title, parent.Description)
}

// expand substitutes $VAR references in template. Unlike os.Expand it fails
// on variables the map cannot supply instead of silently dropping them.
func expand(template string, vars map[string]string) (string, error) {
	missing := make(map[string]bool)
	expanded := expandVars(template, func(key string) (string, bool) {
		v, ok := vars[key]
		if !ok {
			missing[key] = true
		}
		return v, ok
	})
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for k := range missing {
			names = append(names, k)
		}
		sort.Strings(names)
		return "", &TemplateError{Var: names[0]}
	}
	return expanded, nil
}

// expandVars is a $VAR / ${VAR} scanner. The lookup reports whether the
// variable exists so callers can distinguish "empty" from "unknown".
func expandVars(s string, lookup func(string) (string, bool)) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i+1 >= len(s) {
			buf.WriteByte(s[i])
			continue
		}
		name, width := scanVarName(s[i+1:])
		if name == "" {
			buf.WriteByte(s[i])
			continue
		}
		v, _ := lookup(name)
		buf.WriteString(v)
		i += width
	}
	return buf.String()
}

func scanVarName(s string) (name string, width int) {
	if s == "" {
		return "", 0
	}
	if s[0] == '{' {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0
		}
		return s[1:end], end + 1
	}
	i := 0
	for i < len(s) && (isAlphaNum(s[i]) || s[i] == '_') {
		i++
	}
	return s[:i], i
}

func isAlphaNum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
