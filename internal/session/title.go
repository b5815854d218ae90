package session

const (
	// TitleLimit is the number of characters kept from the first user message
	TitleLimit = 50

	ellipsis = "..."
)

// DeriveTitle builds a session title from the first user message
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= TitleLimit {
		return content
	}
	return string(runes[:TitleLimit]) + ellipsis
}
