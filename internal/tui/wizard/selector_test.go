package wizard

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"
)

func TestSelector_Wraps(t *testing.T) {
	s := NewSelector(false, "a", "b", "c")

	v, ok := s.Update(tea.KeyPressMsg{Text: "left"})
	require.False(t, ok)
	require.Equal(t, "c", v)

	s.Update(tea.KeyPressMsg{Text: "right"})
	require.Equal(t, "a", s.Cursor())

	v, ok = s.Update(tea.KeyPressMsg{Text: "enter"})
	require.True(t, ok)
	require.Equal(t, "a", v)
}

func TestSelector_SelectOnMove(t *testing.T) {
	s := NewSelector(true, "Basic", "Advanced")

	v, ok := s.Update(tea.KeyPressMsg{Text: "right"})
	require.True(t, ok)
	require.Equal(t, "Advanced", v)

	_, ok = s.Update(tea.KeyPressMsg{Text: "x"})
	require.False(t, ok)
}

func TestSelector_MoveTo(t *testing.T) {
	s := NewSelector(false, "Low", "Normal", "High")
	s.MoveTo("High")
	require.Equal(t, "High", s.Cursor())

	s.MoveTo("Unknown")
	require.Equal(t, "High", s.Cursor())
}

func TestSlideBudget(t *testing.T) {
	v, ok := slideBudget(nil, tea.KeyPressMsg{Text: "enter"})
	require.True(t, ok)
	require.Equal(t, 0, v)

	cur := 4900
	v, _ = slideBudget(&cur, tea.KeyPressMsg{Text: "right"})
	require.Equal(t, 5000, v)

	cur = 5000
	v, _ = slideBudget(&cur, tea.KeyPressMsg{Text: "right"})
	require.Equal(t, 5000, v)

	_, ok = slideBudget(&cur, tea.KeyPressMsg{Text: "x"})
	require.False(t, ok)
}

func TestSubmitButton(t *testing.T) {
	require.Equal(t, ButtonDisabled, SubmitButton("Submit", false, true).State)
	require.Equal(t, ButtonFocused, SubmitButton("Submit", true, true).State)
	require.Equal(t, ButtonNormal, SubmitButton("Submit", true, false).State)
}
