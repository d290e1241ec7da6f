package document

import "strings"

// Section is one titled part of a generated document.
type Section struct {
	Title   string
	Content string
}

// Sections splits the artifact's Markdown into sections delimited by
// level-one and level-two headings. Content before the first heading, or a
// document with no headings at all, becomes a single untitled section.
func (a *Artifact) Sections() []Section {
	lines := strings.Split(a.Content, "\n")
	var sections []Section
	var title string
	var buf []string
	started := false

	flush := func() {
		if !started {
			return
		}
		sections = append(sections, Section{
			Title:   title,
			Content: strings.TrimSpace(strings.Join(buf, "\n")),
		})
	}

	for _, line := range lines {
		heading := ""
		switch {
		case strings.HasPrefix(line, "## "):
			heading = strings.TrimSpace(strings.TrimPrefix(line, "## "))
		case strings.HasPrefix(line, "# "):
			heading = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
		if heading != "" {
			flush()
			title = heading
			buf = buf[:0]
			started = true
			continue
		}
		if !started && strings.TrimSpace(line) != "" {
			started = true
		}
		buf = append(buf, line)
	}
	flush()
	return sections
}

// Title returns the document title: the first heading if one exists,
// otherwise the ticket id.
func (a *Artifact) Title() string {
	for _, line := range strings.Split(a.Content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return a.TicketID
}
