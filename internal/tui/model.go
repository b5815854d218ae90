// Package tui is the interactive chat composer: a session sidebar, the
// transcript of the current session and a composer with autocomplete.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iksnae/chat-composer/internal/autocomplete"
	"github.com/iksnae/chat-composer/internal/session"
	"github.com/iksnae/chat-composer/internal/stream"
)

// Options wires the composer to its collaborators
type Options struct {
	Mentions       autocomplete.MentionLookup
	Suggestions    autocomplete.SuggestionLookup
	MentionLimit   int
	DropdownHeight int
	FragmentDelay  time.Duration
	SettleDelay    time.Duration
}

// Model is the bubbletea model of the composer
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	store      *session.Store
	reconciler *stream.Reconciler
	engine     *autocomplete.Engine
	events     chan stream.Event

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	dropdownHeight int
	width, height  int
	streaming      bool
	status         string
	err            error
}

// New builds the composer model over store
func New(ctx context.Context, store *session.Store, opts Options) Model {
	ctx, cancel := context.WithCancel(ctx)

	if opts.DropdownHeight <= 0 {
		opts.DropdownHeight = autocomplete.DefaultDropdownHeight
	}

	// Fragments only trigger redraws; the store is the source of truth, so a
	// full buffer drops the wake-up instead of stalling the reply.
	events := make(chan stream.Event, 64)
	rec := stream.NewReconciler(store,
		stream.WithFragmentDelay(opts.FragmentDelay),
		stream.WithSettleDelay(opts.SettleDelay),
		stream.WithObserver(func(ev stream.Event) {
			select {
			case events <- ev:
			default:
			}
		}),
	)

	input := textinput.New()
	input.Placeholder = "Message... (@ to mention)"
	input.Prompt = "› "
	input.CharLimit = 4000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = assistantLabelStyle

	m := Model{
		ctx:        ctx,
		cancel:     cancel,
		store:      store,
		reconciler: rec,
		engine: autocomplete.NewEngine(opts.Mentions, opts.Suggestions,
			autocomplete.WithMentionLimit(opts.MentionLimit),
			autocomplete.WithDropdownHeight(opts.DropdownHeight)),
		events:         events,
		input:          input,
		viewport:       viewport.New(80, 20),
		spinner:        sp,
		dropdownHeight: opts.DropdownHeight,
	}
	m.refreshTranscript()
	return m
}

// Init starts the cursor blink, the spinner and the fragment listener
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForEvent(m.events))
}

// Run starts the composer on the terminal and blocks until it exits
func Run(ctx context.Context, store *session.Store, opts Options) error {
	m := New(ctx, store, opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
