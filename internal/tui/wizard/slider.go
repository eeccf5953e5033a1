package wizard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/mark3labs/chainform/internal/form"
	"github.com/mark3labs/chainform/internal/tui/theme"
)

// sliderWidth is the number of cells in the budget track
const sliderWidth = 25

// slideBudget works out the budget after a key press on the slider. An unset
// budget is shown as the minimum; moving it or pressing enter makes it a value.
func slideBudget(current *int, msg tea.KeyPressMsg) (int, bool) {
	v := form.BudgetMin
	if current != nil {
		v = *current
	}

	switch msg.String() {
	case "left", "h":
		return max(form.BudgetMin, v-form.BudgetStep), true
	case "right", "l":
		return min(form.BudgetMax, v+form.BudgetStep), true
	case "home":
		return form.BudgetMin, true
	case "end":
		return form.BudgetMax, true
	case "enter", "space":
		return v, true
	}
	return 0, false
}

// renderSlider draws the budget track with its value. Unset budgets read as the
// minimum with a hint that no value is chosen yet.
func renderSlider(budget *int, focused bool) string {
	s := theme.Current().S()

	v := form.BudgetMin
	if budget != nil {
		v = *budget
	}

	filled := (v - form.BudgetMin) * sliderWidth / (form.BudgetMax - form.BudgetMin)
	track := s.SliderFill.Render(strings.Repeat("━", filled)) +
		s.SliderTrack.Render(strings.Repeat("─", sliderWidth-filled))

	label := s.Value.Render(fmt.Sprintf("$%d", v))
	if budget == nil {
		label += " " + s.Label.Render("(not set)")
	}

	handle := "●"
	if focused {
		handle = s.OptionSelected.Render("●")
	}
	return fmt.Sprintf("%s %s %s", track, handle, label)
}
