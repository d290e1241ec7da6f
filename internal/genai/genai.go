package genai

import (
	"context"
	"errors"

	"github.com/autodoc-cli/autodoc/internal/prompt"
)

// ErrQuota means the generation backend refused the request for quota or
// rate-limit reasons. Fatal: the user has to act (wait, pay, change key).
var ErrQuota = errors.New("generation backend quota exhausted")

// Generator is the abstraction over text-generation backends.
// Tests substitute scripted fakes; OpenAIClient is the real implementation.
type Generator interface {
	Generate(ctx context.Context, req *prompt.Request) (string, error)
}
