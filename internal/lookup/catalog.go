package lookup

import (
	"context"
	"strings"
	"time"

	"github.com/iksnae/chat-composer/internal/autocomplete"
)

const (
	// DefaultSuggestionLimit caps catalog results
	DefaultSuggestionLimit = 10
	// DefaultSuggestionLatency simulates the search round trip
	DefaultSuggestionLatency = 200 * time.Millisecond
)

var phrases = []string{
	"How to use goroutines",
	"How to use channels",
	"How to use context cancellation",
	"How to build a CLI with cobra",
	"How to use generics",
	"How to implement authentication",
	"How to write table-driven tests",
	"How to create HTTP handlers",
	"How to handle errors with wrapping",
	"How to implement graceful shutdown",
	"How to use the embed package",
	"How to profile Go performance",
	"How to deploy to a container",
	"How to use sync.WaitGroup",
	"How to implement pagination",
	"How to handle JSON decoding errors",
	"How to use select properly",
	"How to create custom error types",
	"How to test concurrent code",
	"How to implement search functionality",
}

// Catalog answers suggestion queries over a fixed list of phrases
type Catalog struct {
	phrases []string
	limit   int
	latency time.Duration
}

// CatalogOption configures a Catalog
type CatalogOption func(*Catalog)

// WithSuggestionLatency sets the simulated delay per query
func WithSuggestionLatency(d time.Duration) CatalogOption {
	return func(c *Catalog) { c.latency = d }
}

// WithSuggestionLimit caps the number of results
func WithSuggestionLimit(n int) CatalogOption {
	return func(c *Catalog) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithPhrases replaces the built-in phrase list
func WithPhrases(list []string) CatalogOption {
	return func(c *Catalog) { c.phrases = append([]string(nil), list...) }
}

// NewCatalog returns a catalog over the built-in phrases
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		phrases: phrases,
		limit:   DefaultSuggestionLimit,
		latency: DefaultSuggestionLatency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Suggestions returns phrases containing query, ignoring case, in catalog
// order. A blank query returns nothing without waiting.
func (c *Catalog) Suggestions(ctx context.Context, query string) ([]autocomplete.Suggestion, error) {
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		return nil, nil
	}
	if err := wait(ctx, c.latency); err != nil {
		return nil, err
	}

	var out []autocomplete.Suggestion
	for _, p := range c.phrases {
		if strings.Contains(strings.ToLower(p), q) {
			out = append(out, autocomplete.Suggestion{Text: p})
			if len(out) == c.limit {
				break
			}
		}
	}
	return out, nil
}
