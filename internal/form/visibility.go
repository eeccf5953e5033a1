package form

// Visibility says which inputs a renderer should present for a state.
type Visibility struct {
	Topic      bool
	Category   bool
	Scheduler  bool // step 3 is shown
	ChosenDate bool
	ChosenTime bool
	Allocation bool // step 4 is shown
	Budget     bool
	Urgency    bool
}

// Visible works out the shown inputs. Step 3 appears once step 2 holds a value and
// step 4 once step 3 does. Before the path is known the time branch is offered.
func Visible(s State) Visibility {
	p := Resolve(s)
	v := Visibility{
		Topic:    s.Mode == ModeBasic,
		Category: s.Mode == ModeAdvanced,
	}

	switch s.Mode {
	case ModeBasic:
		v.Scheduler = s.Topic != ""
	case ModeAdvanced:
		v.Scheduler = s.Category != ""
	}
	if !v.Scheduler {
		return v
	}

	v.ChosenDate = p.Date
	v.ChosenTime = !p.Date
	v.Allocation = s.ChosenDate != "" || s.ChosenTime != ""
	if v.Allocation {
		v.Budget = p.Date
		v.Urgency = !p.Date
	}
	return v
}

// Step returns the number of the furthest step currently shown, from 1 to 4.
func (v Visibility) Step() int {
	switch {
	case v.Allocation:
		return 4
	case v.Scheduler:
		return 3
	default:
		return 2
	}
}
