package review

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func terminalWith(input string) (*TerminalReviewer, *bytes.Buffer) {
	var out bytes.Buffer
	return &TerminalReviewer{In: strings.NewReader(input), Out: &out}, &out
}

func TestTerminalReviewer_Decisions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		verdict  Verdict
		feedback string
	}{
		{"empty line accepts", "\n", Accept, ""},
		{"y accepts", "y\n", Accept, ""},
		{"yes accepts", "YES\n", Accept, ""},
		{"q aborts", "q\n", Abort, ""},
		{"quit aborts", "quit\n", Abort, ""},
		{"eof aborts", "", Abort, ""},
		{"text is feedback", "add acceptance criteria\n", Revise, "add acceptance criteria"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := terminalWith(tt.input)
			dec, err := r.Review(context.Background(), "# draft", 1)
			if err != nil {
				t.Fatal(err)
			}
			if dec.Verdict != tt.verdict {
				t.Errorf("verdict = %v, want %v", dec.Verdict, tt.verdict)
			}
			if dec.Feedback != tt.feedback {
				t.Errorf("feedback = %q, want %q", dec.Feedback, tt.feedback)
			}
		})
	}
}

func TestTerminalReviewer_ShowsDraft(t *testing.T) {
	r, out := terminalWith("y\n")
	if _, err := r.Review(context.Background(), "the draft body", 2); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "the draft body") {
		t.Error("draft not shown")
	}
	if !strings.Contains(out.String(), "Draft 2") {
		t.Error("iteration not shown")
	}
}

func TestTerminalReviewer_SequentialReads(t *testing.T) {
	// Two decisions arriving on one reader must not lose buffered input
	// between Review calls.
	r, _ := terminalWith("shorter please\ny\n")

	dec, err := r.Review(context.Background(), "d1", 1)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Verdict != Revise || dec.Feedback != "shorter please" {
		t.Fatalf("first decision = %+v", dec)
	}

	dec, err = r.Review(context.Background(), "d2", 2)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Verdict != Accept {
		t.Fatalf("second decision = %+v", dec)
	}
}

func TestTerminalReviewer_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never yields keeps the goroutine blocked; the decision
	// must come from ctx instead.
	r := &TerminalReviewer{In: blockingReader{}, Out: &bytes.Buffer{}}
	dec, err := r.Review(ctx, "draft", 1)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Verdict != Abort {
		t.Fatalf("decision = %+v", dec)
	}
}

type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) {
	select {}
}
