package wizard

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/chainform/internal/tui/theme"
)

// Selector is a horizontal single-choice list. The cursor moves with ←/→ and
// enter or space picks the option under it. A selector built with
// selectOnMove picks on every move, which suits two-way toggles.
type Selector struct {
	options      []string
	cursor       int
	selectOnMove bool
}

// NewSelector creates a selector over options with the cursor on the first one.
func NewSelector(selectOnMove bool, options ...string) *Selector {
	return &Selector{options: options, selectOnMove: selectOnMove}
}

// Cursor returns the option under the cursor.
func (s *Selector) Cursor() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.cursor]
}

// MoveTo puts the cursor on v if it is one of the options.
func (s *Selector) MoveTo(v string) {
	for i, opt := range s.options {
		if opt == v {
			s.cursor = i
			return
		}
	}
}

// Update handles a key and reports the picked option, if any.
func (s *Selector) Update(msg tea.KeyPressMsg) (string, bool) {
	if len(s.options) == 0 {
		return "", false
	}

	switch msg.String() {
	case "left", "h":
		s.cursor = (s.cursor - 1 + len(s.options)) % len(s.options)
		return s.Cursor(), s.selectOnMove
	case "right", "l":
		s.cursor = (s.cursor + 1) % len(s.options)
		return s.Cursor(), s.selectOnMove
	case "enter", "space":
		return s.Cursor(), true
	}
	return "", false
}

// View renders the options, marking the selected one and, when focused, the cursor.
func (s *Selector) View(selected string, focused bool) string {
	st := theme.Current().S()
	parts := make([]string, 0, len(s.options))
	for i, opt := range s.options {
		mark := "○ "
		style := st.Option
		if opt == selected {
			mark = "● "
			style = st.OptionSelected
		}
		if focused && i == s.cursor {
			style = style.Inherit(st.OptionCursor)
		}
		parts = append(parts, style.Render(mark+opt))
	}
	return strings.Join(parts, "   ")
}
