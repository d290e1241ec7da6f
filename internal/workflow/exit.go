package workflow

import (
	"errors"

	"github.com/autodoc-cli/autodoc/internal/document"
	"github.com/autodoc-cli/autodoc/internal/faults"
	"github.com/autodoc-cli/autodoc/internal/genai"
	"github.com/autodoc-cli/autodoc/internal/gitx"
	"github.com/autodoc-cli/autodoc/internal/prompt"
	"github.com/autodoc-cli/autodoc/internal/review"
	"github.com/autodoc-cli/autodoc/internal/tracker"
)

// Process exit codes, one per error kind so scripts can tell "no ticket
// found" from "generation failed" from "commit failed".
const (
	ExitOK         = 0
	ExitGeneric    = 1
	ExitNotFound   = 2
	ExitTransient  = 3
	ExitTemplate   = 4
	ExitQuota      = 5
	ExitConflict   = 6
	ExitWrite      = 7
	ExitAborted    = 8
	ExitPermission = 9
)

// ExitCode maps a workflow error onto its process exit code.
func ExitCode(err error) int {
	var (
		templateErr *prompt.TemplateError
		conflictErr *gitx.ConflictError
		writeErr    *document.WriteError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, tracker.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, genai.ErrQuota):
		return ExitQuota
	case errors.As(err, &templateErr):
		return ExitTemplate
	case errors.As(err, &conflictErr):
		return ExitConflict
	case errors.As(err, &writeErr):
		return ExitWrite
	case errors.Is(err, review.ErrAborted):
		return ExitAborted
	case errors.Is(err, tracker.ErrPermission), errors.Is(err, gitx.ErrPermission):
		return ExitPermission
	case faults.IsTransient(err):
		return ExitTransient
	default:
		return ExitGeneric
	}
}
