package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/autodoc-cli/autodoc/internal/tracker"
)

func testTicket() *tracker.TicketContext {
	return &tracker.TicketContext{
		ID:          "DTS-200",
		Title:       "Add webhook retries",
		Status:      "In Progress",
		Description: "Webhooks should retry with backoff.",
		Fields:      map[string]string{"assignee": "Dana Scully", "type": "Story"},
		Parent: &tracker.TicketContext{
			ID:          "DTS-199",
			Title:       "Reliability epic",
			Description: "Make outbound calls resilient.",
		},
	}
}

func TestAssemble_Defaults(t *testing.T) {
	req, err := Assemble(testTicket(), &Library{Sections: map[string]string{}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Ticket ID: DTS-200",
		"Title: Add webhook retries",
		"Status: In Progress",
		"Parent ID: DTS-199",
		"Parent title: Reliability epic",
	} {
		if !strings.Contains(req.User, want) {
			t.Errorf("user prompt missing %q:\n%s", want, req.User)
		}
	}
	if !strings.Contains(req.System, "task analysis assistant") {
		t.Errorf("default system prompt not used:\n%s", req.System)
	}
	if len(req.FeedbackHistory) != 0 {
		t.Errorf("history = %v", req.FeedbackHistory)
	}
}

func TestAssemble_NoParentRendersEmptyBlock(t *testing.T) {
	tc := testTicket()
	tc.Parent = nil
	req, err := Assemble(tc, &Library{Sections: map[string]string{}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(req.User, "Parent") {
		t.Errorf("parent block rendered without a parent:\n%s", req.User)
	}
}

func TestAssemble_CustomSectionsAndFields(t *testing.T) {
	lib := &Library{Sections: map[string]string{
		"system": "Be terse.",
		"task":   "Do ${TICKET} for $ASSIGNEE ($TYPE).",
	}}
	req, err := Assemble(testTicket(), lib, nil)
	if err != nil {
		t.Fatal(err)
	}
	if req.System != "Be terse." {
		t.Errorf("system = %q", req.System)
	}
	if req.User != "Do DTS-200 for Dana Scully (Story)." {
		t.Errorf("user = %q", req.User)
	}
}

func TestAssemble_UnknownVariable(t *testing.T) {
	lib := &Library{Sections: map[string]string{"task": "Due: $DUE_DATE"}}
	_, err := Assemble(testTicket(), lib, nil)
	var terr *TemplateError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v", err)
	}
	if terr.Var != "DUE_DATE" {
		t.Errorf("var = %q", terr.Var)
	}
}

func TestAssemble_Examples(t *testing.T) {
	lib := &Library{
		Sections: map[string]string{"system": "sys"},
		Examples: []Example{
			{Name: "one.md", Content: "# One"},
			{Name: "two.md", Content: "# Two"},
		},
	}
	req, err := Assemble(testTicket(), lib, nil)
	if err != nil {
		t.Fatal(err)
	}
	i1 := strings.Index(req.System, "Example 1 (one.md)")
	i2 := strings.Index(req.System, "Example 2 (two.md)")
	if i1 < 0 || i2 < 0 || i2 < i1 {
		t.Errorf("examples missing or out of order:\n%s", req.System)
	}
}

func TestAssemble_CopiesHistory(t *testing.T) {
	history := []string{"shorter", "add acceptance criteria"}
	req, err := Assemble(testTicket(), &Library{Sections: map[string]string{}}, history)
	if err != nil {
		t.Fatal(err)
	}
	if len(req.FeedbackHistory) != 2 || req.FeedbackHistory[0] != "shorter" {
		t.Fatalf("history = %v", req.FeedbackHistory)
	}
	history[0] = "mutated"
	if req.FeedbackHistory[0] != "shorter" {
		t.Error("request aliases caller history")
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	lib := &Library{
		Sections: map[string]string{"system": "sys", "task": "T $TICKET $ASSIGNEE"},
		Examples: []Example{{Name: "a.md", Content: "A"}},
	}
	a, err := Assemble(testTicket(), lib, []string{"fb"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Assemble(testTicket(), lib, []string{"fb"})
	if err != nil {
		t.Fatal(err)
	}
	if a.System != b.System || a.User != b.User {
		t.Error("identical inputs produced different requests")
	}
}

func TestExpandVars(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "A" {
			return "x", true
		}
		return "", false
	}
	tests := []struct {
		in, want string
	}{
		{"$A", "x"},
		{"${A}", "x"},
		{"$A$A", "xx"},
		{"$ A", "$ A"},
		{"100$", "100$"},
		{"${unclosed", "${unclosed"},
	}
	for _, tt := range tests {
		if got := expandVars(tt.in, lookup); got != tt.want {
			t.Errorf("expandVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
