package form

import "fmt"

// Dependents maps each pivot field to the fields it invalidates when it changes.
var Dependents = map[Field][]Field{
	FieldMode: {
		FieldTopic, FieldCategory,
		FieldChosenDate, FieldChosenTime,
		FieldBudget, FieldUrgency,
	},
	FieldTopic: {
		FieldChosenDate, FieldChosenTime,
		FieldBudget, FieldUrgency,
	},
	FieldCategory: {
		FieldChosenDate, FieldChosenTime,
		FieldBudget, FieldUrgency,
	},
}

// IsPivot reports whether changing f clears downstream fields.
func IsPivot(f Field) bool {
	_, ok := Dependents[f]
	return ok
}

// SetField returns a copy of s with field set to value. Setting a pivot to a new
// value also clears every field in Dependents[field]. The reported bool is true
// when that cascade ran.
//
// Accepted value types: Mode or string for mode, string for topic and the date and
// time fields, Category or string for category, Urgency or string for urgency, and
// int, *int or nil for budget. The empty string clears category and urgency.
func SetField(s State, field Field, value any) (State, bool, error) {
	next := s
	switch field {
	case FieldMode:
		m, err := asMode(value)
		if err != nil {
			return s, false, err
		}
		next.Mode = m
	case FieldTopic:
		v, err := asString(field, value)
		if err != nil {
			return s, false, err
		}
		next.Topic = v
	case FieldCategory:
		c, err := asCategory(value)
		if err != nil {
			return s, false, err
		}
		next.Category = c
	case FieldChosenDate:
		v, err := asString(field, value)
		if err != nil {
			return s, false, err
		}
		next.ChosenDate = v
	case FieldChosenTime:
		v, err := asString(field, value)
		if err != nil {
			return s, false, err
		}
		next.ChosenTime = v
	case FieldBudget:
		b, err := asBudget(value)
		if err != nil {
			return s, false, err
		}
		next.Budget = b
	case FieldUrgency:
		u, err := asUrgency(value)
		if err != nil {
			return s, false, err
		}
		next.Urgency = u
	default:
		return s, false, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	if !IsPivot(field) || s.Get(field) == next.Get(field) {
		return next, false, nil
	}
	return next.clear(Dependents[field]...), true, nil
}

// clear resets the given fields to their empty values.
func (s State) clear(fields ...Field) State {
	for _, f := range fields {
		switch f {
		case FieldTopic:
			s.Topic = ""
		case FieldCategory:
			s.Category = ""
		case FieldChosenDate:
			s.ChosenDate = ""
		case FieldChosenTime:
			s.ChosenTime = ""
		case FieldBudget:
			s.Budget = nil
		case FieldUrgency:
			s.Urgency = ""
		}
	}
	return s
}

// Get returns the value of a text-valued field. Budget has no text form and
// yields the empty string.
func (s State) Get(f Field) string {
	switch f {
	case FieldMode:
		return string(s.Mode)
	case FieldTopic:
		return s.Topic
	case FieldCategory:
		return string(s.Category)
	case FieldChosenDate:
		return s.ChosenDate
	case FieldChosenTime:
		return s.ChosenTime
	case FieldUrgency:
		return string(s.Urgency)
	}
	return ""
}

func asString(f Field, value any) (string, error) {
	v, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, f, value)
	}
	return v, nil
}

func asMode(value any) (Mode, error) {
	var m Mode
	switch v := value.(type) {
	case Mode:
		m = v
	case string:
		m = Mode(v)
	default:
		return "", fmt.Errorf("%w: mode expects a Mode, got %T", ErrInvalidValue, value)
	}
	if !m.Valid() {
		return "", fmt.Errorf("%w: mode %q", ErrInvalidValue, m)
	}
	return m, nil
}

func asCategory(value any) (Category, error) {
	var c Category
	switch v := value.(type) {
	case Category:
		c = v
	case string:
		c = Category(v)
	default:
		return "", fmt.Errorf("%w: category expects a Category, got %T", ErrInvalidValue, value)
	}
	if c != "" && !c.Valid() {
		return "", fmt.Errorf("%w: category %q", ErrInvalidValue, c)
	}
	return c, nil
}

func asUrgency(value any) (Urgency, error) {
	var u Urgency
	switch v := value.(type) {
	case Urgency:
		u = v
	case string:
		u = Urgency(v)
	default:
		return "", fmt.Errorf("%w: urgency expects an Urgency, got %T", ErrInvalidValue, value)
	}
	if u != "" && !u.Valid() {
		return "", fmt.Errorf("%w: urgency %q", ErrInvalidValue, u)
	}
	return u, nil
}

func asBudget(value any) (*int, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		if !BudgetInRange(v) {
			return nil, fmt.Errorf("%w: budget %d outside %d..%d step %d",
				ErrInvalidValue, v, BudgetMin, BudgetMax, BudgetStep)
		}
		return &v, nil
	case *int:
		if v == nil {
			return nil, nil
		}
		return asBudget(*v)
	default:
		return nil, fmt.Errorf("%w: budget expects an int, got %T", ErrInvalidValue, value)
	}
}
