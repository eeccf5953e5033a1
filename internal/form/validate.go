package form

import "strings"

// Validation messages, keyed by the rule that produces them
const (
	MsgModeRequired     = "Mode is required"
	MsgTopicRequired    = "Topic is required for Basic mode"
	MsgCategoryRequired = "Category is required for Advanced mode"
	MsgCategoryUnknown  = "Category must be one of: Schedule, Realtime, Analytics"
	MsgDateForTopic     = `Date is required when topic contains "date"`
	MsgTimeForTopic     = `Time is required when topic does not contain "date"`
	MsgDateForSchedule  = "Date is required for Schedule category"
	MsgTimeForRealtime  = "Time is required for Realtime and Analytics categories"
	MsgBudgetRequired   = "Budget is required when on date path"
	MsgBudgetOutOfRange = "Budget must be between 0 and 5000 in steps of 100"
	MsgUrgencyRequired  = "Urgency is required when on time path"
	MsgUrgencyUnknown   = "Urgency must be one of: Low, Normal, High"
)

// Validate runs every applicable rule and returns the errors found. Rules do not
// short-circuit each other, so one call reports all problems at once.
func Validate(s State) Errors {
	errs := Errors{}

	if !s.Mode.Valid() {
		errs[FieldMode] = MsgModeRequired
	}

	switch s.Mode {
	case ModeBasic:
		if strings.TrimSpace(s.Topic) == "" {
			errs[FieldTopic] = MsgTopicRequired
		}
		if s.Topic != "" {
			if topicWantsDate(s.Topic) {
				if s.ChosenDate == "" {
					errs[FieldChosenDate] = MsgDateForTopic
				}
			} else if s.ChosenTime == "" {
				errs[FieldChosenTime] = MsgTimeForTopic
			}
		}

	case ModeAdvanced:
		switch {
		case s.Category == "":
			errs[FieldCategory] = MsgCategoryRequired
		case !s.Category.Valid():
			errs[FieldCategory] = MsgCategoryUnknown
		case s.Category == CategorySchedule:
			if s.ChosenDate == "" {
				errs[FieldChosenDate] = MsgDateForSchedule
			}
		default:
			if s.ChosenTime == "" {
				errs[FieldChosenTime] = MsgTimeForRealtime
			}
		}
	}

	p := Resolve(s)
	if p.Date {
		switch {
		case !s.HasBudget():
			errs[FieldBudget] = MsgBudgetRequired
		case !BudgetInRange(*s.Budget):
			errs[FieldBudget] = MsgBudgetOutOfRange
		}
	}
	if p.Time {
		switch {
		case s.Urgency == "":
			errs[FieldUrgency] = MsgUrgencyRequired
		case !s.Urgency.Valid():
			errs[FieldUrgency] = MsgUrgencyUnknown
		}
	}

	return errs
}
