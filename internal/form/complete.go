package form

import "strings"

// IsComplete reports whether submission should be enabled. It produces no messages,
// but it accepts exactly the states Validate accepts.
func IsComplete(s State) bool {
	switch s.Mode {
	case ModeBasic:
		if strings.TrimSpace(s.Topic) == "" {
			return false
		}
	case ModeAdvanced:
		if !s.Category.Valid() {
			return false
		}
	default:
		return false
	}

	p := Resolve(s)
	switch {
	case p.Date:
		return s.ChosenDate != "" && s.HasBudget() && BudgetInRange(*s.Budget)
	case p.Time:
		return s.ChosenTime != "" && s.Urgency.Valid()
	default:
		return false
	}
}
