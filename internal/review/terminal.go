package review

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/autodoc-cli/autodoc/internal/ux"
)

// TerminalReviewer presents drafts on the terminal and reads the accept /
// critique / abort decision from stdin.
type TerminalReviewer struct {
	In  io.Reader
	Out io.Writer

	br *bufio.Reader // reused across Review calls so buffered input survives
}

// NewTerminalReviewer creates a reviewer bound to stdin/stdout.
func NewTerminalReviewer() *TerminalReviewer {
	return &TerminalReviewer{In: os.Stdin, Out: os.Stdout}
}

// Review shows the draft and prompts for a decision. Accepts "y"/"yes" or an
// empty line, aborts on "q"/"quit"/"abort", and treats any other input as
// revision feedback. The read is cancellable through ctx, which is the only
// suspension point of a workflow run.
func (t *TerminalReviewer) Review(ctx context.Context, draft string, iteration int) (Decision, error) {
	fmt.Fprintf(t.Out, "\n%sDraft %d:%s\n", ux.Bold, iteration, ux.Reset)
	fmt.Fprintln(t.Out, ux.DocumentPanel(draft))
	fmt.Fprintf(t.Out, "  [enter/y to accept / q to abort / anything else is revision feedback]: ")

	type readResult struct {
		input string
		err   error
	}
	if t.br == nil {
		t.br = bufio.NewReader(t.In)
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := t.br.ReadString('\n')
		ch <- readResult{input: strings.TrimSpace(line), err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintf(t.Out, "\n%sReview cancelled%s\n", ux.Yellow, ux.Reset)
		return Decision{Verdict: Abort}, nil
	case r := <-ch:
		if r.err != nil && r.input == "" {
			if r.err == io.EOF {
				return Decision{Verdict: Abort}, nil
			}
			return Decision{}, r.err
		}
		switch strings.ToLower(r.input) {
		case "", "y", "yes":
			return Decision{Verdict: Accept}, nil
		case "q", "quit", "abort":
			return Decision{Verdict: Abort}, nil
		default:
			return Decision{Verdict: Revise, Feedback: r.input}, nil
		}
	}
}
