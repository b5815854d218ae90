package lookup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/chat-composer/internal/autocomplete"
)

var _ autocomplete.SuggestionLookup = (*Catalog)(nil)

func TestCatalog_Suggestions(t *testing.T) {
	c := NewCatalog(WithSuggestionLatency(0))

	tests := []struct {
		name    string
		query   string
		wantLen int
		first   string
	}{
		{"substring", "channel", 1, "How to use channels"},
		{"case insensitive", "GOROUTINES", 1, "How to use goroutines"},
		{"capped at limit", "how", DefaultSuggestionLimit, "How to use goroutines"},
		{"no match", "rustacean", 0, ""},
		{"empty", "", 0, ""},
		{"blank", "   ", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Suggestions(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			if tt.first != "" {
				assert.Equal(t, tt.first, got[0].Text)
			}
		})
	}
}

func TestCatalog_Options(t *testing.T) {
	c := NewCatalog(
		WithSuggestionLatency(0),
		WithSuggestionLimit(2),
		WithPhrases([]string{"alpha test", "beta test", "gamma test"}),
	)

	got, err := c.Suggestions(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, []autocomplete.Suggestion{{Text: "alpha test"}, {Text: "beta test"}}, got)
}

func TestCatalog_Cancelled(t *testing.T) {
	c := NewCatalog(WithSuggestionLatency(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Suggestions(ctx, "use")
	assert.ErrorIs(t, err, context.Canceled)
}
