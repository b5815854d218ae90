package autocomplete

import (
	"context"
	"unicode"
)

// Candidate is one dropdown entry: a Mention or a Suggestion
type Candidate interface {
	// Label is the text shown in the dropdown
	Label() string
	// Insert is the text spliced into the composer on commit
	Insert() string
	isCandidate()
}

// Mention is a person that can be referenced with @username
type Mention struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username" yaml:"username"`
}

func (m Mention) Label() string  { return m.Name }
func (m Mention) Insert() string { return "@" + m.Username }
func (Mention) isCandidate()     {}

// Suggestion is a phrase completing the word being typed
type Suggestion struct {
	Text string `json:"text" yaml:"text"`
}

func (s Suggestion) Label() string  { return s.Text }
func (s Suggestion) Insert() string { return s.Text }
func (Suggestion) isCandidate()     {}

// MentionLookup finds people matching a query. An empty query returns a sample.
type MentionLookup interface {
	Mentions(ctx context.Context, query string, limit int) ([]Mention, error)
}

// SuggestionLookup finds phrases containing a query
type SuggestionLookup interface {
	Suggestions(ctx context.Context, query string) ([]Suggestion, error)
}

// Span is a run of a label, marked when it matches the query
type Span struct {
	Text  string
	Match bool
}

// Highlight splits text into spans so that every case-insensitive occurrence
// of query is its own matched span.
func Highlight(text, query string) []Span {
	if query == "" {
		return []Span{{Text: text}}
	}
	runes := []rune(text)
	q := []rune(query)

	var spans []Span
	plainStart := 0
	for i := 0; i+len(q) <= len(runes); {
		if !foldEqual(runes[i:i+len(q)], q) {
			i++
			continue
		}
		if plainStart < i {
			spans = append(spans, Span{Text: string(runes[plainStart:i])})
		}
		spans = append(spans, Span{Text: string(runes[i : i+len(q)]), Match: true})
		i += len(q)
		plainStart = i
	}
	if plainStart < len(runes) {
		spans = append(spans, Span{Text: string(runes[plainStart:])})
	}
	return spans
}

func foldEqual(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != unicode.ToLower(b[i]) {
			return false
		}
	}
	return true
}
