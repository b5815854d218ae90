// Package autocomplete tracks the composer's text and cursor and decides when
// to offer @-mention or word-completion candidates, and how to splice a chosen
// candidate back into the text.
//
// Offsets are rune indexes into the composer text.
package autocomplete

import "unicode"

// Mode is the kind of completion the composer is in
type Mode int

const (
	ModeNone Mode = iota
	ModeMention
	ModeSuggestion
)

func (m Mode) String() string {
	switch m {
	case ModeMention:
		return "mention"
	case ModeSuggestion:
		return "suggestion"
	default:
		return "none"
	}
}

// MinSuggestionQuery is the shortest token that triggers suggestions
const MinSuggestionQuery = 2

// Detection is the result of evaluating the text before the cursor.
// Start is where a committed candidate is spliced in: the '@' for mentions,
// the first rune after the last whitespace for suggestions.
type Detection struct {
	Mode  Mode
	Query string
	Start int
}

// Same reports whether two detections ask for the same candidates
func (d Detection) Same(o Detection) bool {
	return d.Mode == o.Mode && d.Query == o.Query
}

// Detect evaluates text with the cursor at rune offset cursor. Mention mode
// wins over suggestion mode.
func Detect(text string, cursor int) Detection {
	runes := []rune(text)
	cursor = clamp(cursor, 0, len(runes))
	head := runes[:cursor]

	if d, ok := detectMention(head); ok {
		return d
	}
	if d, ok := detectSuggestion(head); ok {
		return d
	}
	return Detection{Mode: ModeNone, Start: cursor}
}

func detectMention(head []rune) (Detection, bool) {
	at := -1
	for i := len(head) - 1; i >= 0; i-- {
		if head[i] == '@' {
			at = i
			break
		}
	}
	if at < 0 {
		return Detection{}, false
	}
	query := head[at+1:]
	for _, r := range query {
		if unicode.IsSpace(r) {
			return Detection{}, false
		}
	}
	return Detection{Mode: ModeMention, Query: string(query), Start: at}, true
}

func detectSuggestion(head []rune) (Detection, bool) {
	end := len(head)
	for end > 0 && unicode.IsSpace(head[end-1]) {
		end--
	}
	tokenStart := lastSpace(head[:end]) + 1
	token := head[tokenStart:end]
	if len(token) < MinSuggestionQuery {
		return Detection{}, false
	}
	// The splice replaces from the last whitespace before the cursor, which
	// is past the token when the cursor follows trailing whitespace.
	return Detection{
		Mode:  ModeSuggestion,
		Query: string(token),
		Start: lastSpace(head) + 1,
	}, true
}

// lastSpace returns the index of the last whitespace rune, or -1
func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
