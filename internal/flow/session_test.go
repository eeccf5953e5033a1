package flow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mark3labs/chainform/internal/flow"
	"github.com/mark3labs/chainform/internal/form"
	"github.com/mark3labs/chainform/internal/submit"
)

type stubTransport struct {
	payloads []form.Payload
	res      *submit.Response
	err      error
}

func (s *stubTransport) Submit(
	_ context.Context, p form.Payload,
) (*submit.Response, error) {
	s.payloads = append(s.payloads, p)
	return s.res, s.err
}

type silentErr struct{}

func (silentErr) Error() string { return "" }

func fillTimePath(t *testing.T, s *flow.Session) {
	t.Helper()
	require.NoError(t, s.Set(form.FieldTopic, "quick note"))
	require.NoError(t, s.Set(form.FieldChosenTime, "14:30"))
	require.NoError(t, s.Set(form.FieldUrgency, form.UrgencyHigh))
}

func TestSessionDefaults(t *testing.T) {
	s := flow.NewSession()
	require.Equal(t, flow.PhaseIdle, s.Phase())
	require.Equal(t, form.New(), s.State())
	require.Nil(t, s.Result())
	require.Empty(t, s.Errors())
	require.False(t, s.CanSubmit())
	require.Equal(t, flow.LabelSubmit, s.SubmitLabel())
	require.True(t, s.Path().Undetermined())
}

func TestSessionValidationFailureReturnsToIdle(t *testing.T) {
	s := flow.NewSession()
	tr := &stubTransport{}

	err := s.Submit(context.Background(), tr)
	require.ErrorIs(t, err, flow.ErrNotValid)
	require.Equal(t, flow.PhaseIdle, s.Phase())
	require.Equal(t, form.MsgTopicRequired, s.Errors()[form.FieldTopic])
	require.Empty(t, tr.payloads, "transport must not be called")
}

func TestSessionSuccess(t *testing.T) {
	s := flow.NewSession()
	fillTimePath(t, s)
	require.True(t, s.CanSubmit())

	tr := &stubTransport{res: &submit.Response{Status: "ok", ID: "id-1"}}
	require.NoError(t, s.Submit(context.Background(), tr))

	require.Equal(t, flow.PhaseSucceeded, s.Phase())
	require.Equal(t, flow.Success{ID: "id-1"}, s.Result())
	require.Empty(t, s.Errors())
	require.Len(t, tr.payloads, 1)
	require.Equal(t, form.Payload{
		Mode:       form.ModeBasic,
		Topic:      "quick note",
		ChosenTime: "14:30",
		Urgency:    form.UrgencyHigh,
	}, tr.payloads[0])
}

func TestSessionFailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "structured detail",
			err:  &submit.HTTPError{StatusCode: 422, Detail: "Topic is required"},
			want: "Topic is required",
		},
		{
			name: "transport message",
			err:  errors.New("connection refused"),
			want: "connection refused",
		},
		{
			name: "nothing usable",
			err:  silentErr{},
			want: submit.FallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flow.NewSession()
			fillTimePath(t, s)

			require.NoError(t, s.Submit(context.Background(), &stubTransport{err: tt.err}))
			require.Equal(t, flow.PhaseFailed, s.Phase())
			require.Equal(t, flow.Failure{Message: tt.want}, s.Result())
		})
	}
}

func TestSessionSingleInFlight(t *testing.T) {
	s := flow.NewSession()
	fillTimePath(t, s)

	_, err := s.Begin()
	require.NoError(t, err)
	require.Equal(t, flow.PhaseSubmitting, s.Phase())
	require.Equal(t, flow.LabelSubmitting, s.SubmitLabel())
	require.False(t, s.CanSubmit())

	_, err = s.Begin()
	require.ErrorIs(t, err, flow.ErrSubmitInFlight)

	require.NoError(t, s.Finish(&submit.Response{ID: "x"}, nil))
	require.ErrorIs(t, s.Finish(&submit.Response{ID: "y"}, nil), flow.ErrNotSubmitting)
	require.Equal(t, flow.Success{ID: "x"}, s.Result())
}

func TestSessionResultsAreReplaced(t *testing.T) {
	s := flow.NewSession()
	fillTimePath(t, s)

	require.NoError(t, s.Submit(context.Background(), &stubTransport{err: errors.New("down")}))
	require.Equal(t, flow.Failure{Message: "down"}, s.Result())

	require.NoError(t, s.Submit(context.Background(), &stubTransport{
		res: &submit.Response{ID: "second"},
	}))
	require.Equal(t, flow.Success{ID: "second"}, s.Result())
}

func TestSessionModeChangeClearsEverything(t *testing.T) {
	s := flow.NewSession()
	require.NoError(t, s.Set(form.FieldTopic, "date reminder"))
	require.NoError(t, s.Set(form.FieldChosenDate, "2024-01-15"))
	require.NoError(t, s.Set(form.FieldBudget, 1000))
	require.NoError(t, s.Submit(context.Background(), &stubTransport{err: errors.New("down")}))
	require.NotNil(t, s.Result())

	// Leave an error behind as well
	require.NoError(t, s.Set(form.FieldBudget, nil))
	require.ErrorIs(t, s.Submit(context.Background(), &stubTransport{}), flow.ErrNotValid)
	require.NotEmpty(t, s.Errors())

	require.NoError(t, s.Set(form.FieldMode, form.ModeAdvanced))
	require.Equal(t, form.State{Mode: form.ModeAdvanced}, s.State())
	require.Empty(t, s.Errors())
	require.Nil(t, s.Result())
	require.Equal(t, flow.PhaseIdle, s.Phase())
}

func TestSessionEditClearsOwnError(t *testing.T) {
	s := flow.NewSession()
	require.NoError(t, s.Set(form.FieldTopic, "quick note"))
	require.ErrorIs(t, s.Submit(context.Background(), &stubTransport{}), flow.ErrNotValid)
	require.Contains(t, s.Errors(), form.FieldChosenTime)
	require.Contains(t, s.Errors(), form.FieldUrgency)

	require.NoError(t, s.Set(form.FieldChosenTime, "10:00"))
	require.NotContains(t, s.Errors(), form.FieldChosenTime)
	require.Contains(t, s.Errors(), form.FieldUrgency)
}

func TestSessionEditAfterSuccessReturnsToIdle(t *testing.T) {
	s := flow.NewSession()
	fillTimePath(t, s)
	require.NoError(t, s.Submit(context.Background(), &stubTransport{
		res: &submit.Response{ID: "id-1"},
	}))

	require.NoError(t, s.Set(form.FieldUrgency, form.UrgencyLow))
	require.Equal(t, flow.PhaseIdle, s.Phase())
	require.Equal(t, flow.Success{ID: "id-1"}, s.Result())
}

func TestSessionRejectsBadValue(t *testing.T) {
	s := flow.NewSession()
	require.ErrorIs(t, s.Set(form.FieldUrgency, "Urgent"), form.ErrInvalidValue)
	require.Empty(t, s.State().Urgency)
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "idle", flow.PhaseIdle.String())
	require.Equal(t, "validating", flow.PhaseValidating.String())
	require.Equal(t, "submitting", flow.PhaseSubmitting.String())
	require.Equal(t, "succeeded", flow.PhaseSucceeded.String())
	require.Equal(t, "failed", flow.PhaseFailed.String())
	require.Equal(t, "unknown", flow.Phase(42).String())
}
