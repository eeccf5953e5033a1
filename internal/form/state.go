// Package form holds the chained form's state and the pure functions that decide
// which steps are shown, whether the form validates and what gets submitted.
package form

import (
	"errors"
	"slices"
)

// Mode selects which step-2 field is active.
type Mode string

const (
	ModeBasic    Mode = "Basic"
	ModeAdvanced Mode = "Advanced"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m == ModeBasic || m == ModeAdvanced
}

// Category is the step-2 choice in Advanced mode.
type Category string

const (
	CategorySchedule  Category = "Schedule"
	CategoryRealtime  Category = "Realtime"
	CategoryAnalytics Category = "Analytics"
)

// Categories lists the selectable categories in display order.
var Categories = []Category{CategorySchedule, CategoryRealtime, CategoryAnalytics}

// Valid reports whether c is a known, non-empty category.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Urgency is the step-4 choice on the time path.
type Urgency string

const (
	UrgencyLow    Urgency = "Low"
	UrgencyNormal Urgency = "Normal"
	UrgencyHigh   Urgency = "High"
)

// Urgencies lists the selectable urgency levels in display order.
var Urgencies = []Urgency{UrgencyLow, UrgencyNormal, UrgencyHigh}

// Valid reports whether u is a known, non-empty urgency.
func (u Urgency) Valid() bool {
	return slices.Contains(Urgencies, u)
}

// Budget slider bounds shared with the presentation layer.
const (
	BudgetMin  = 0
	BudgetMax  = 5000
	BudgetStep = 100
)

// BudgetInRange reports whether v sits on the slider's grid.
func BudgetInRange(v int) bool {
	return v >= BudgetMin && v <= BudgetMax && v%BudgetStep == 0
}

// Field names one input of the form. The string values double as error-map keys
// and payload keys.
type Field string

const (
	FieldMode       Field = "mode"
	FieldTopic      Field = "topic"
	FieldCategory   Field = "category"
	FieldChosenDate Field = "choose_date"
	FieldChosenTime Field = "choose_time"
	FieldBudget     Field = "budget"
	FieldUrgency    Field = "urgency"
)

// Fields lists every field in step order.
var Fields = []Field{
	FieldMode, FieldTopic, FieldCategory,
	FieldChosenDate, FieldChosenTime,
	FieldBudget, FieldUrgency,
}

var (
	// ErrUnknownField is returned when a field name is not part of the form
	ErrUnknownField = errors.New("unknown form field")

	// ErrInvalidValue is returned when a value does not fit the field it is set on
	ErrInvalidValue = errors.New("invalid value for field")
)

// State is the complete set of values collected by the wizard. Inactive branches
// may hold stale values; Resolve, Validate and BuildPayload never let them leak.
type State struct {
	Mode       Mode
	Topic      string
	Category   Category
	ChosenDate string
	ChosenTime string
	Budget     *int // nil until the user sets it; 0 is a real value
	Urgency    Urgency
}

// New returns the state the wizard starts with.
func New() State {
	return State{Mode: ModeBasic}
}

// HasBudget reports whether a budget has been set, including zero.
func (s State) HasBudget() bool {
	return s.Budget != nil
}

// BudgetValue returns the budget, or 0 when it has not been set.
func (s State) BudgetValue() int {
	if s.Budget == nil {
		return 0
	}
	return *s.Budget
}

// Errors maps invalid fields to a human-readable message. A missing key means the
// field is currently valid, not necessarily filled.
type Errors map[Field]string

// Valid reports whether no field has an error.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Keys returns the fields with errors in step order.
func (e Errors) Keys() []Field {
	var res []Field
	for _, f := range Fields {
		if _, ok := e[f]; ok {
			res = append(res, f)
		}
	}
	return res
}

// Without returns a copy of e with f removed.
func (e Errors) Without(f Field) Errors {
	if _, ok := e[f]; !ok {
		return e
	}
	res := make(Errors, len(e))
	for k, v := range e {
		if k != f {
			res[k] = v
		}
	}
	return res
}
