package autocomplete

import (
	"context"
	"unicode/utf8"

	"github.com/iksnae/chat-composer/internal"
)

const (
	// DefaultMentionLimit caps mention lookups
	DefaultMentionLimit = 20
	// DefaultDropdownHeight is the dropdown height in rows used for placement
	DefaultDropdownHeight = 8
)

// Engine is the composer's autocomplete state machine. It is driven from a
// single goroutine; only Lookup.Run may be called elsewhere.
type Engine struct {
	mentions    MentionLookup
	suggestions SuggestionLookup

	mentionLimit   int
	dropdownHeight int

	text   string
	cursor int
	det    Detection

	pending    *Detection // lookup handed out and not yet applied
	resultFor  *Detection // detection the candidates were fetched for
	candidates []Candidate
	open       bool
	selected   int
	dismissed  *Detection // Escape suppresses results for this detection
	placement  Placement
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithMentionLimit sets the number of mentions requested per lookup
func WithMentionLimit(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.mentionLimit = n
		}
	}
}

// WithDropdownHeight sets the dropdown height used by Place
func WithDropdownHeight(rows int) EngineOption {
	return func(e *Engine) {
		if rows > 0 {
			e.dropdownHeight = rows
		}
	}
}

// NewEngine creates an engine. A nil lookup disables its mode's candidates.
func NewEngine(mentions MentionLookup, suggestions SuggestionLookup, opts ...EngineOption) *Engine {
	e := &Engine{
		mentions:       mentions,
		suggestions:    suggestions,
		mentionLimit:   DefaultMentionLimit,
		dropdownHeight: DefaultDropdownHeight,
		selected:       -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Lookup is a pending candidate request for one detection
type Lookup struct {
	Detection Detection
	fetch     func(ctx context.Context) ([]Candidate, error)
}

// Result is the answer to a Lookup
type Result struct {
	Detection  Detection
	Candidates []Candidate
	Err        error
}

// Run performs the lookup. It does not touch the engine.
func (l *Lookup) Run(ctx context.Context) Result {
	candidates, err := l.fetch(ctx)
	return Result{Detection: l.Detection, Candidates: candidates, Err: err}
}

// SetInput re-evaluates the composer after an edit or cursor move. It returns
// the lookup to run for the new state, or nil when none is needed.
func (e *Engine) SetInput(text string, cursor int) *Lookup {
	e.text = text
	e.cursor = clamp(cursor, 0, utf8.RuneCountInString(text))
	e.det = Detect(e.text, e.cursor)

	if e.dismissed != nil && !e.dismissed.Same(e.det) {
		e.dismissed = nil
	}
	if e.resultFor != nil && !e.resultFor.Same(e.det) {
		e.clearCandidates()
	}

	if e.det.Mode == ModeNone {
		e.pending = nil
		return nil
	}
	if e.resultFor != nil || (e.pending != nil && e.pending.Same(e.det)) {
		return nil
	}

	det := e.det
	e.pending = &det
	return e.newLookup(det)
}

func (e *Engine) newLookup(det Detection) *Lookup {
	l := &Lookup{Detection: det}
	switch det.Mode {
	case ModeMention:
		lookup, limit := e.mentions, e.mentionLimit
		l.fetch = func(ctx context.Context) ([]Candidate, error) {
			if lookup == nil {
				return nil, nil
			}
			found, err := lookup.Mentions(ctx, det.Query, limit)
			if err != nil {
				return nil, err
			}
			out := make([]Candidate, 0, len(found))
			for _, m := range found {
				out = append(out, m)
			}
			return out, nil
		}
	case ModeSuggestion:
		lookup := e.suggestions
		l.fetch = func(ctx context.Context) ([]Candidate, error) {
			if lookup == nil || det.Query == "" {
				return nil, nil
			}
			found, err := lookup.Suggestions(ctx, det.Query)
			if err != nil {
				return nil, err
			}
			out := make([]Candidate, 0, len(found))
			for _, s := range found {
				out = append(out, s)
			}
			return out, nil
		}
	}
	return l
}

// Apply installs a lookup result. Results for a mode or query the composer
// has moved away from are discarded. A failed lookup counts as no candidates.
// It reports whether the result was used.
func (e *Engine) Apply(res Result) bool {
	if e.det.Mode == ModeNone || !res.Detection.Same(e.det) {
		internal.LogDebugKV("discarding stale results", "mode", res.Detection.Mode, "query", res.Detection.Query)
		return false
	}
	e.pending = nil

	candidates := res.Candidates
	if res.Err != nil {
		internal.LogDebugKV("lookup failed", "mode", res.Detection.Mode, "query", res.Detection.Query, "err", res.Err)
		candidates = nil
	}

	det := e.det
	e.resultFor = &det
	e.candidates = candidates
	e.open = len(candidates) > 0 && (e.dismissed == nil || !e.dismissed.Same(e.det))
	if e.open {
		e.selected = 0
	} else {
		e.selected = -1
	}
	return true
}

// Refresh sets the input and runs any needed lookup synchronously. It
// reports whether the dropdown is visible afterwards.
func (e *Engine) Refresh(ctx context.Context, text string, cursor int) bool {
	l := e.SetInput(text, cursor)
	if l == nil && e.pending != nil && e.pending.Same(e.det) {
		// A lookup was handed out but has not come back; answer it here
		l = e.newLookup(e.det)
	}
	if l != nil {
		e.Apply(l.Run(ctx))
	}
	return e.Visible()
}

// HandleKey applies a key press to the dropdown
func (e *Engine) HandleKey(k Key) Outcome {
	if !e.Visible() {
		if k == KeyEnter {
			return Outcome{Action: ActionSubmit}
		}
		return Outcome{Action: ActionPassThrough}
	}

	switch k {
	case KeyDown:
		if e.selected < len(e.candidates)-1 {
			e.selected++
		}
		return Outcome{Action: ActionNavigate}
	case KeyUp:
		if e.selected > 0 {
			e.selected--
		} else {
			e.selected = 0
		}
		return Outcome{Action: ActionNavigate}
	case KeyEnter:
		text, cursor, ok := e.Commit(e.selected)
		if !ok {
			return Outcome{Action: ActionSubmit}
		}
		return Outcome{Action: ActionCommit, Text: text, Cursor: cursor}
	case KeyEscape:
		det := e.det
		e.dismissed = &det
		e.open = false
		e.selected = -1
		return Outcome{Action: ActionDismiss}
	default:
		e.selected = 0
		return Outcome{Action: ActionPassThrough}
	}
}

// Commit splices candidate index into the text, replacing the span from the
// detection start to the cursor with the candidate followed by one space.
// It returns the new text and cursor.
func (e *Engine) Commit(index int) (string, int, bool) {
	if e.resultFor == nil || index < 0 || index >= len(e.candidates) {
		return e.text, e.cursor, false
	}
	c := e.candidates[index]

	runes := []rune(e.text)
	start := clamp(e.det.Start, 0, e.cursor)
	insert := []rune(c.Insert() + " ")

	next := make([]rune, 0, len(runes)+len(insert))
	next = append(next, runes[:start]...)
	next = append(next, insert...)
	next = append(next, runes[e.cursor:]...)

	text := string(next)
	cursor := start + len(insert)

	e.clearCandidates()
	e.SetInput(text, cursor)
	// The committed word should not immediately reopen the dropdown
	det := e.det
	e.dismissed = &det
	e.pending = nil
	return text, cursor, true
}

// Reset clears all state, as after the message is submitted
func (e *Engine) Reset() {
	e.text = ""
	e.cursor = 0
	e.det = Detection{}
	e.pending = nil
	e.dismissed = nil
	e.clearCandidates()
}

// Visible reports whether the dropdown is shown
func (e *Engine) Visible() bool {
	return e.open && e.det.Mode != ModeNone && len(e.candidates) > 0
}

// Candidates returns the candidates for the current detection
func (e *Engine) Candidates() []Candidate {
	out := make([]Candidate, len(e.candidates))
	copy(out, e.candidates)
	return out
}

// Selected returns the highlighted index, or -1 when the dropdown is closed
func (e *Engine) Selected() int {
	if !e.Visible() {
		return -1
	}
	return e.selected
}

// Detection returns the current detection
func (e *Engine) Detection() Detection {
	return e.det
}

// Text returns the composer text and cursor the engine last saw
func (e *Engine) Text() (string, int) {
	return e.text, e.cursor
}

// Place recomputes the dropdown placement for the available rows
func (e *Engine) Place(spaceAbove, spaceBelow int) Placement {
	e.placement = Place(e.dropdownHeight, spaceAbove, spaceBelow)
	return e.placement
}

// Placement returns the last computed placement
func (e *Engine) Placement() Placement {
	return e.placement
}

func (e *Engine) clearCandidates() {
	e.resultFor = nil
	e.candidates = nil
	e.open = false
	e.selected = -1
}
