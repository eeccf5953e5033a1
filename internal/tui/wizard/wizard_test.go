package wizard

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
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

func (s *stubTransport) Submit(_ context.Context, p form.Payload) (*submit.Response, error) {
	s.payloads = append(s.payloads, p)
	return s.res, s.err
}

func press(m *WizardModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(tea.KeyPressMsg{Text: k})
	}
	return cmd
}

// runSubmit executes the submission command and feeds its result back.
func runSubmit(t *testing.T, m *WizardModel, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(SubmittedMsg)
	require.True(t, ok, "expected SubmittedMsg, got %T", msg)
	m.Update(msg)
}

func TestWizard_StartsOnModeWithBasic(t *testing.T) {
	m := NewWizard(context.Background(), &stubTransport{})

	require.Equal(t, ctrlMode, m.focus)
	require.Equal(t, form.ModeBasic, m.session.State().Mode)
	require.Equal(t, []control{ctrlMode, ctrlTopic, ctrlSubmit}, m.controls())
	require.False(t, m.session.CanSubmit())
}

func TestWizard_DatePathSubmission(t *testing.T) {
	tr := &stubTransport{res: &submit.Response{Status: "ok", ID: "abc-123"}}
	m := NewWizard(context.Background(), tr)

	press(m, "tab")
	require.Equal(t, ctrlTopic, m.focus)

	press(m, "choose date")
	require.Equal(t, "choose date", m.session.State().Topic)
	require.Equal(t, []control{ctrlMode, ctrlTopic, ctrlDate, ctrlSubmit}, m.controls())

	press(m, "tab", "2024-01-15")
	require.Equal(t, "2024-01-15", m.session.State().ChosenDate)
	require.Contains(t, m.controls(), ctrlBudget)

	press(m, "tab")
	require.Equal(t, ctrlBudget, m.focus)
	require.False(t, m.session.State().HasBudget())

	press(m, "enter")
	require.True(t, m.session.State().HasBudget())
	require.Equal(t, 0, m.session.State().BudgetValue())
	require.True(t, m.session.CanSubmit())

	cmd := press(m, "ctrl+s")
	require.Equal(t, flow.PhaseSubmitting, m.session.Phase())
	require.Equal(t, flow.LabelSubmitting, m.session.SubmitLabel())

	runSubmit(t, m, cmd)
	require.Equal(t, flow.PhaseSucceeded, m.session.Phase())
	require.Equal(t, flow.Success{ID: "abc-123"}, m.session.Result())

	require.Len(t, tr.payloads, 1)
	budget := 0
	require.Equal(t, form.Payload{
		Mode:       form.ModeBasic,
		Topic:      "choose date",
		ChosenDate: "2024-01-15",
		Budget:     &budget,
	}, tr.payloads[0])

	require.Contains(t, m.renderBody(), "abc-123")
}

func TestWizard_ModeToggleClearsDownstream(t *testing.T) {
	m := NewWizard(context.Background(), &stubTransport{})

	press(m, "tab", "meeting", "tab", "10:30")
	require.Equal(t, "10:30", m.session.State().ChosenTime)
	require.Equal(t, "10:30", m.time.Value())

	press(m, "shift+tab", "shift+tab")
	require.Equal(t, ctrlMode, m.focus)

	press(m, "right")
	st := m.session.State()
	require.Equal(t, form.ModeAdvanced, st.Mode)
	require.Empty(t, st.Topic)
	require.Empty(t, st.ChosenTime)
	require.Empty(t, m.topic.Value())
	require.Empty(t, m.time.Value())
	require.Equal(t, []control{ctrlMode, ctrlCategory, ctrlSubmit}, m.controls())
}

func TestWizard_CategoryNeedsExplicitPick(t *testing.T) {
	m := NewWizard(context.Background(), &stubTransport{})

	press(m, "right", "tab")
	require.Equal(t, ctrlCategory, m.focus)

	press(m, "right")
	require.Empty(t, m.session.State().Category)

	press(m, "enter")
	require.Equal(t, form.CategoryRealtime, m.session.State().Category)
	require.Contains(t, m.controls(), ctrlTime)
}

func TestWizard_BudgetSlider(t *testing.T) {
	m := NewWizard(context.Background(), &stubTransport{})
	press(m, "right", "tab", "enter", "tab", "2024-03-01", "tab")
	require.Equal(t, form.CategorySchedule, m.session.State().Category)
	require.Equal(t, ctrlBudget, m.focus)

	press(m, "left")
	require.Equal(t, 0, m.session.State().BudgetValue())
	require.True(t, m.session.State().HasBudget())

	press(m, "right", "right", "right")
	require.Equal(t, 300, m.session.State().BudgetValue())

	press(m, "end", "right")
	require.Equal(t, form.BudgetMax, m.session.State().BudgetValue())
}

func TestWizard_SubmitIncompleteShowsErrors(t *testing.T) {
	tr := &stubTransport{}
	m := NewWizard(context.Background(), tr)

	cmd := press(m, "ctrl+s")
	require.Nil(t, cmd)
	require.Equal(t, flow.PhaseIdle, m.session.Phase())
	require.Equal(t, form.MsgTopicRequired, m.session.Errors()[form.FieldTopic])
	require.Empty(t, tr.payloads)
	require.Contains(t, m.renderBody(), form.MsgTopicRequired)

	press(m, "tab", "x")
	require.Empty(t, m.session.Errors())
}

func TestWizard_FailureShowsMessage(t *testing.T) {
	tr := &stubTransport{err: errors.New("connection refused")}
	m := NewWizard(context.Background(), tr)

	press(m, "tab", "meeting", "tab", "09:00", "tab", "enter")
	require.Equal(t, form.UrgencyLow, m.session.State().Urgency)

	press(m, "tab")
	require.Equal(t, ctrlSubmit, m.focus)

	runSubmit(t, m, press(m, "enter"))
	require.Equal(t, flow.PhaseFailed, m.session.Phase())
	require.Equal(t, flow.Failure{Message: "connection refused"}, m.session.Result())
	require.Contains(t, m.renderBody(), "connection refused")
}

func TestWizard_EditsFrozenWhileSubmitting(t *testing.T) {
	m := NewWizard(context.Background(), &stubTransport{res: &submit.Response{ID: "1"}})
	press(m, "tab", "meeting", "tab", "09:00", "tab", "enter")

	cmd := press(m, "ctrl+s")
	require.NotNil(t, cmd)
	require.Nil(t, press(m, "ctrl+s"))

	press(m, "right")
	require.Equal(t, form.UrgencyLow, m.session.State().Urgency)
}

func TestWizard_EscCancels(t *testing.T) {
	m := NewWizard(context.Background(), &stubTransport{})

	cmd := press(m, "esc")
	require.NotNil(t, cmd)
	require.True(t, m.cancelled)
}

func TestWizard_EscAfterSuccessIsNotCancel(t *testing.T) {
	m := NewWizard(context.Background(), &stubTransport{res: &submit.Response{ID: "42"}})
	press(m, "tab", "meeting", "tab", "09:00", "tab", "enter")
	runSubmit(t, m, press(m, "ctrl+s"))

	press(m, "esc")
	require.False(t, m.cancelled)
}

func TestWizard_FocusWraps(t *testing.T) {
	m := NewWizard(context.Background(), &stubTransport{})

	press(m, "shift+tab")
	require.Equal(t, ctrlSubmit, m.focus)

	press(m, "tab")
	require.Equal(t, ctrlMode, m.focus)
}

func TestWizard_ViewRenders(t *testing.T) {
	m := NewWizard(context.Background(), &stubTransport{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	v := m.View()
	require.True(t, v.AltScreen)
	require.NotNil(t, v.Content)
}
