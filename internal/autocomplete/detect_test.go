package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int // -1 means end of text
		want   Detection
	}{
		{"mention at end", "hello @jo", -1, Detection{ModeMention, "jo", 6}},
		{"bare at sign", "hi @", -1, Detection{ModeMention, "", 3}},
		{"mention closed by space falls back to last word", "hello @jo hey", -1, Detection{ModeSuggestion, "hey", 10}},
		{"mention closed by short word", "hello @jo x", -1, Detection{ModeNone, "", 11}},
		{"mention closed by trailing space", "hello @jo ", -1, Detection{ModeSuggestion, "@jo", 10}},
		{"cursor inside mention", "hello @john and more", 9, Detection{ModeMention, "jo", 6}},
		{"latest at sign wins", "@ann @bo", -1, Detection{ModeMention, "bo", 5}},
		{"suggestion", "how to us", -1, Detection{ModeSuggestion, "us", 7}},
		{"single word suggestion", "ho", -1, Detection{ModeSuggestion, "ho", 0}},
		{"too short", "a", -1, Detection{ModeNone, "", 1}},
		{"too short after space", "how t", -1, Detection{ModeNone, "", 5}},
		{"empty", "", -1, Detection{ModeNone, "", 0}},
		{"only whitespace", "   ", -1, Detection{ModeNone, "", 3}},
		{"tab separates tokens", "say\thello", -1, Detection{ModeSuggestion, "hello", 4}},
		{"multibyte runes", "café ün", -1, Detection{ModeSuggestion, "ün", 5}},
		{"cursor clamped past end", "ab", 99, Detection{ModeSuggestion, "ab", 0}},
		{"cursor at start", "hello", 0, Detection{ModeNone, "", 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor := tt.cursor
			if cursor < 0 {
				cursor = len([]rune(tt.text))
			}
			assert.Equal(t, tt.want, Detect(tt.text, cursor))
		})
	}
}

func TestDetect_MentionClosedByWhitespace(t *testing.T) {
	d := Detect("hello @jo hey", len("hello @jo hey"))
	assert.NotEqual(t, ModeMention, d.Mode)
}

func TestDetection_Same(t *testing.T) {
	a := Detection{Mode: ModeMention, Query: "jo", Start: 1}
	assert.True(t, a.Same(Detection{Mode: ModeMention, Query: "jo", Start: 7}))
	assert.False(t, a.Same(Detection{Mode: ModeSuggestion, Query: "jo"}))
	assert.False(t, a.Same(Detection{Mode: ModeMention, Query: "j"}))
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "none", ModeNone.String())
	assert.Equal(t, "mention", ModeMention.String())
	assert.Equal(t, "suggestion", ModeSuggestion.String())
}
