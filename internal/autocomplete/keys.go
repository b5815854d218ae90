package autocomplete

// Key is a composer key press as seen by the engine
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
)

// ParseKey maps terminal key names ("up", "down", "enter", "esc") to keys
func ParseKey(name string) Key {
	switch name {
	case "up":
		return KeyUp
	case "down":
		return KeyDown
	case "enter":
		return KeyEnter
	case "esc", "escape":
		return KeyEscape
	default:
		return KeyOther
	}
}

// Action tells the composer what a key press resolved to
type Action int

const (
	// ActionPassThrough means the key should edit the text as usual
	ActionPassThrough Action = iota
	// ActionNavigate means the highlight moved; the key is consumed
	ActionNavigate
	// ActionCommit means a candidate was spliced in; see Outcome.Text
	ActionCommit
	// ActionSubmit means the message should be sent
	ActionSubmit
	// ActionDismiss means the dropdown was closed; the key is consumed
	ActionDismiss
)

func (a Action) String() string {
	switch a {
	case ActionNavigate:
		return "navigate"
	case ActionCommit:
		return "commit"
	case ActionSubmit:
		return "submit"
	case ActionDismiss:
		return "dismiss"
	default:
		return "pass-through"
	}
}

// Outcome is the result of HandleKey. Text and Cursor are set on ActionCommit.
type Outcome struct {
	Action Action
	Text   string
	Cursor int
}
