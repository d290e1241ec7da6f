package tracker

// TicketContext is the normalized view of a tracker ticket handed to the
// prompt assembler. Immutable once resolved; Parent is at most one level
// deep (a parent's Parent is always nil).
type TicketContext struct {
	ID          string
	Title       string
	Status      string
	Description string
	Fields      map[string]string
	Parent      *TicketContext
}

// RawTicket is the wire-level ticket shape returned by the tracker REST API.
type RawTicket struct {
	Key    string    `json:"key"`
	Fields RawFields `json:"fields"`
}

// RawFields holds the subset of issue fields the workflow consumes.
type RawFields struct {
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	Status      *RawNamed  `json:"status"`
	Assignee    *RawPerson `json:"assignee"`
	IssueType   *RawNamed  `json:"issuetype"`
	Parent      *RawParent `json:"parent"`
}

type RawNamed struct {
	Name string `json:"name"`
}

type RawPerson struct {
	DisplayName string `json:"displayName"`
}

type RawParent struct {
	Key string `json:"key"`
}

// context converts a raw ticket into a TicketContext without its parent.
func (r *RawTicket) context() *TicketContext {
	tc := &TicketContext{
		ID:          r.Key,
		Title:       r.Fields.Summary,
		Description: r.Fields.Description,
		Fields:      make(map[string]string),
	}
	if r.Fields.Status != nil {
		tc.Status = r.Fields.Status.Name
	}
	if r.Fields.Assignee != nil {
		tc.Fields["assignee"] = r.Fields.Assignee.DisplayName
	}
	if r.Fields.IssueType != nil {
		tc.Fields["type"] = r.Fields.IssueType.Name
	}
	return tc
}

// ParentKey returns the declared parent issue key, or "" if none.
func (r *RawTicket) ParentKey() string {
	if r.Fields.Parent == nil {
		return ""
	}
	return r.Fields.Parent.Key
}
