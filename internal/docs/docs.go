package docs

import "fmt"

// Topic is one documentation article served by the docs command.
type Topic struct {
	Name    string // slug the CLI accepts as an argument
	Title   string
	Summary string // one-liner shown in the topic listing
	Content string // plain-text body, no ANSI
}

// All lists every topic in display order. The returned slice is a copy so
// callers cannot reorder the registry.
func All() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// Get returns the named topic.
func Get(name string) (Topic, error) {
	for _, t := range topics {
		if t.Name == name {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("unknown topic %q (run 'autodoc docs' for the list)", name)
}
