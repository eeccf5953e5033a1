package wizard

import (
	"strings"

	"github.com/mark3labs/chainform/internal/tui/theme"
)

// renderHintBar renders a hint bar with the given key-description pairs.
// Example: renderHintBar("tab", "next", "ctrl+s", "submit")
// Returns: "tab next • ctrl+s submit"
func renderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		b.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return b.String()
}

// renderFieldError renders a validation message under a field, or nothing.
func renderFieldError(msg string) string {
	if msg == "" {
		return ""
	}
	return theme.Current().S().FieldError.Render("✗ " + msg)
}
