package form_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mark3labs/chainform/internal/form"
)

func filled() form.State {
	return form.State{
		Mode:       form.ModeBasic,
		Topic:      "date reminder",
		Category:   form.CategoryRealtime,
		ChosenDate: "2024-01-15",
		ChosenTime: "14:30",
		Budget:     budget(1000),
		Urgency:    form.UrgencyHigh,
	}
}

func TestSetFieldDoesNotMutateInput(t *testing.T) {
	s := filled()
	next, _, err := form.SetField(s, form.FieldChosenDate, "2025-02-01")
	require.NoError(t, err)
	require.Equal(t, "2024-01-15", s.ChosenDate)
	require.Equal(t, "2025-02-01", next.ChosenDate)
}

func TestSetFieldModeClearsEverything(t *testing.T) {
	next, cascaded, err := form.SetField(filled(), form.FieldMode, form.ModeAdvanced)
	require.NoError(t, err)
	require.True(t, cascaded)
	require.Equal(t, form.State{Mode: form.ModeAdvanced}, next)
}

func TestSetFieldPivotsClearDownstream(t *testing.T) {
	for _, pivot := range []form.Field{form.FieldTopic, form.FieldCategory} {
		t.Run(string(pivot), func(t *testing.T) {
			s := filled()
			var value any = "another topic"
			if pivot == form.FieldCategory {
				value = form.CategorySchedule
			}

			next, cascaded, err := form.SetField(s, pivot, value)
			require.NoError(t, err)
			require.True(t, cascaded)
			require.Equal(t, form.ModeBasic, next.Mode)
			require.Empty(t, next.ChosenDate)
			require.Empty(t, next.ChosenTime)
			require.Nil(t, next.Budget)
			require.Empty(t, next.Urgency)
		})
	}
}

func TestSetFieldUnchangedPivotKeepsDownstream(t *testing.T) {
	s := filled()
	next, cascaded, err := form.SetField(s, form.FieldTopic, s.Topic)
	require.NoError(t, err)
	require.False(t, cascaded)
	require.Equal(t, s, next)
}

func TestSetFieldNonPivotOnlyTouchesField(t *testing.T) {
	s := filled()
	next, cascaded, err := form.SetField(s, form.FieldUrgency, "Low")
	require.NoError(t, err)
	require.False(t, cascaded)
	require.Equal(t, form.UrgencyLow, next.Urgency)
	require.Equal(t, s.Topic, next.Topic)
	require.Equal(t, s.ChosenDate, next.ChosenDate)
	require.Equal(t, s.Budget, next.Budget)
}

func TestSetFieldBudget(t *testing.T) {
	s := form.New()

	next, _, err := form.SetField(s, form.FieldBudget, 0)
	require.NoError(t, err)
	require.True(t, next.HasBudget())
	require.Equal(t, 0, next.BudgetValue())

	next, _, err = form.SetField(next, form.FieldBudget, nil)
	require.NoError(t, err)
	require.False(t, next.HasBudget())

	_, _, err = form.SetField(s, form.FieldBudget, 5100)
	require.ErrorIs(t, err, form.ErrInvalidValue)

	_, _, err = form.SetField(s, form.FieldBudget, 150)
	require.ErrorIs(t, err, form.ErrInvalidValue)
}

func TestSetFieldRejectsBadValues(t *testing.T) {
	s := form.New()

	tests := []struct {
		name  string
		field form.Field
		value any
		want  error
	}{
		{"unknown mode", form.FieldMode, "Expert", form.ErrInvalidValue},
		{"mode as int", form.FieldMode, 1, form.ErrInvalidValue},
		{"unknown category", form.FieldCategory, "Other", form.ErrInvalidValue},
		{"unknown urgency", form.FieldUrgency, "Urgent", form.ErrInvalidValue},
		{"topic as int", form.FieldTopic, 7, form.ErrInvalidValue},
		{"budget as string", form.FieldBudget, "100", form.ErrInvalidValue},
		{"unknown field", form.Field("color"), "red", form.ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, cascaded, err := form.SetField(s, tt.field, tt.value)
			require.ErrorIs(t, err, tt.want)
			require.False(t, cascaded)
			require.Equal(t, s, next)
		})
	}
}

func TestDependentsTable(t *testing.T) {
	require.True(t, form.IsPivot(form.FieldMode))
	require.True(t, form.IsPivot(form.FieldTopic))
	require.True(t, form.IsPivot(form.FieldCategory))
	require.False(t, form.IsPivot(form.FieldChosenDate))
	require.False(t, form.IsPivot(form.FieldBudget))

	require.ElementsMatch(t, []form.Field{
		form.FieldTopic, form.FieldCategory, form.FieldChosenDate,
		form.FieldChosenTime, form.FieldBudget, form.FieldUrgency,
	}, form.Dependents[form.FieldMode])
	require.Equal(t, form.Dependents[form.FieldTopic], form.Dependents[form.FieldCategory])
}

func TestVisible(t *testing.T) {
	v := form.Visible(form.New())
	require.True(t, v.Topic)
	require.False(t, v.Category)
	require.False(t, v.Scheduler)
	require.Equal(t, 2, v.Step())

	v = form.Visible(form.State{Mode: form.ModeAdvanced, Category: form.CategorySchedule})
	require.True(t, v.Category)
	require.True(t, v.Scheduler)
	require.True(t, v.ChosenDate)
	require.False(t, v.Allocation)
	require.Equal(t, 3, v.Step())

	v = form.Visible(form.State{
		Mode: form.ModeBasic, Topic: "quick note", ChosenTime: "14:30",
	})
	require.True(t, v.ChosenTime)
	require.True(t, v.Urgency)
	require.False(t, v.Budget)
	require.Equal(t, 4, v.Step())
}
