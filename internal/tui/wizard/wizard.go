package wizard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/mark3labs/chainform/internal/flow"
	"github.com/mark3labs/chainform/internal/form"
	"github.com/mark3labs/chainform/internal/logger"
	"github.com/mark3labs/chainform/internal/submit"
	"github.com/mark3labs/chainform/internal/tui/theme"
)

// control identifies one focusable element. The order matches the layout.
type control int

const (
	ctrlMode control = iota
	ctrlTopic
	ctrlCategory
	ctrlDate
	ctrlTime
	ctrlBudget
	ctrlUrgency
	ctrlSubmit
)

// ErrCancelled is returned by Run when the user leaves without submitting.
var ErrCancelled = errors.New("wizard cancelled by user")

// WizardModel is the BubbleTea model for the chained form. It renders the steps
// the session makes visible and routes key presses into session edits.
type WizardModel struct {
	ctx       context.Context
	session   *flow.Session
	transport submit.Transport

	focus     control
	cancelled bool
	width     int
	height    int

	mode     *Selector
	category *Selector
	urgency  *Selector
	topic    textinput.Model
	date     textinput.Model
	time     textinput.Model
	buttons  *ButtonBar
}

// NewWizard creates a wizard over a fresh session that submits through t.
func NewWizard(ctx context.Context, t submit.Transport) *WizardModel {
	categories := make([]string, len(form.Categories))
	for i, c := range form.Categories {
		categories[i] = string(c)
	}
	urgencies := make([]string, len(form.Urgencies))
	for i, u := range form.Urgencies {
		urgencies[i] = string(u)
	}

	m := &WizardModel{
		ctx:       ctx,
		session:   flow.NewSession(),
		transport: t,
		focus:     ctrlMode,
		width:     80,
		height:    24,
		mode:      NewSelector(true, string(form.ModeBasic), string(form.ModeAdvanced)),
		category:  NewSelector(false, categories...),
		urgency:   NewSelector(false, urgencies...),
		topic:     newInput("Enter a topic..."),
		date:      newInput("YYYY-MM-DD"),
		time:      newInput("HH:MM"),
		buttons:   NewButtonBar(nil),
	}
	m.mode.MoveTo(string(m.session.State().Mode))
	return m
}

func newInput(placeholder string) textinput.Model {
	t := theme.Current()
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})
	in.SetWidth(40)
	return in
}

// Run starts a standalone BubbleTea program for the wizard and returns the
// session once the user quits. ErrCancelled is returned when nothing was
// submitted successfully.
func Run(ctx context.Context, t submit.Transport) (*flow.Session, error) {
	m := NewWizard(ctx, t)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	wiz, ok := finalModel.(*WizardModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if wiz.cancelled {
		return wiz.session, ErrCancelled
	}
	return wiz.session, nil
}

// Session returns the session the wizard edits.
func (m *WizardModel) Session() *flow.Session {
	return m.session
}

// Init initializes the wizard model.
func (m *WizardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SubmittedMsg:
		if err := m.session.Finish(msg.Response, msg.Err); err != nil {
			logger.Warn("Dropped submission result: %v", err)
		}
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	return m, m.forwardToInput(msg)
}

func (m *WizardModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		// Leaving after a successful submission is not a cancellation
		_, ok := m.session.Result().(flow.Success)
		m.cancelled = !ok
		return tea.Quit
	case "tab", "down":
		return m.moveFocus(1)
	case "shift+tab", "up":
		return m.moveFocus(-1)
	case "ctrl+s":
		return m.submit()
	}

	// Edits are frozen while a submission is in flight
	if m.session.Phase() == flow.PhaseSubmitting {
		return nil
	}

	st := m.session.State()
	switch m.focus {
	case ctrlMode:
		if v, ok := m.mode.Update(msg); ok {
			m.set(form.FieldMode, v)
		}
	case ctrlCategory:
		if v, ok := m.category.Update(msg); ok {
			m.set(form.FieldCategory, v)
		}
	case ctrlUrgency:
		if v, ok := m.urgency.Update(msg); ok {
			m.set(form.FieldUrgency, v)
		}
	case ctrlBudget:
		if v, ok := slideBudget(st.Budget, msg); ok {
			m.set(form.FieldBudget, v)
		}
	case ctrlSubmit:
		if msg.String() == "enter" || msg.String() == "space" {
			return m.submit()
		}
	case ctrlTopic, ctrlDate, ctrlTime:
		if msg.String() == "enter" {
			return m.moveFocus(1)
		}
		return m.forwardToInput(msg)
	}
	return nil
}

// forwardToInput passes msg to the focused text input and mirrors its value
// into the session.
func (m *WizardModel) forwardToInput(msg tea.Msg) tea.Cmd {
	var (
		cmd   tea.Cmd
		field form.Field
		value string
	)
	switch m.focus {
	case ctrlTopic:
		m.topic, cmd = m.topic.Update(msg)
		field, value = form.FieldTopic, m.topic.Value()
	case ctrlDate:
		m.date, cmd = m.date.Update(msg)
		field, value = form.FieldChosenDate, m.date.Value()
	case ctrlTime:
		m.time, cmd = m.time.Update(msg)
		field, value = form.FieldChosenTime, m.time.Value()
	default:
		return nil
	}

	if m.session.Phase() != flow.PhaseSubmitting && value != m.session.State().Get(field) {
		m.set(field, value)
	}
	return cmd
}

// set applies one edit to the session and brings the widgets back in line with
// whatever the edit cleared.
func (m *WizardModel) set(field form.Field, value any) {
	if err := m.session.Set(field, value); err != nil {
		logger.Warn("Rejected edit of %s: %v", field, err)
		return
	}

	st := m.session.State()
	syncInput(&m.topic, st.Topic)
	syncInput(&m.date, st.ChosenDate)
	syncInput(&m.time, st.ChosenTime)
	if st.Category != "" {
		m.category.MoveTo(string(st.Category))
	}
	if st.Urgency != "" {
		m.urgency.MoveTo(string(st.Urgency))
	}
	m.clampFocus()
}

func syncInput(in *textinput.Model, v string) {
	if in.Value() != v {
		in.SetValue(v)
	}
}

// submit validates the form and, if it passes, sends it in the background.
func (m *WizardModel) submit() tea.Cmd {
	payload, err := m.session.Begin()
	if err != nil {
		logger.Debug("Submit refused: %v", err)
		return nil
	}

	ctx, t := m.ctx, m.transport
	return func() tea.Msg {
		res, err := t.Submit(ctx, payload)
		return SubmittedMsg{Response: res, Err: err}
	}
}

// controls lists the focusable elements for the current state in layout order.
func (m *WizardModel) controls() []control {
	v := m.session.Visible()
	ctrls := []control{ctrlMode}
	if v.Topic {
		ctrls = append(ctrls, ctrlTopic)
	}
	if v.Category {
		ctrls = append(ctrls, ctrlCategory)
	}
	if v.ChosenDate {
		ctrls = append(ctrls, ctrlDate)
	}
	if v.ChosenTime {
		ctrls = append(ctrls, ctrlTime)
	}
	if v.Budget {
		ctrls = append(ctrls, ctrlBudget)
	}
	if v.Urgency {
		ctrls = append(ctrls, ctrlUrgency)
	}
	return append(ctrls, ctrlSubmit)
}

func (m *WizardModel) moveFocus(delta int) tea.Cmd {
	ctrls := m.controls()
	i := slices.Index(ctrls, m.focus)
	if i < 0 {
		i = 0
	}
	m.focus = ctrls[(i+delta+len(ctrls))%len(ctrls)]
	return m.applyFocus()
}

// clampFocus moves focus to the nearest earlier control when the focused one
// has been hidden.
func (m *WizardModel) clampFocus() {
	ctrls := m.controls()
	if slices.Contains(ctrls, m.focus) {
		return
	}
	next := ctrlMode
	for _, c := range ctrls {
		if c < m.focus {
			next = c
		}
	}
	m.focus = next
	m.applyFocus()
}

func (m *WizardModel) applyFocus() tea.Cmd {
	m.topic.Blur()
	m.date.Blur()
	m.time.Blur()

	switch m.focus {
	case ctrlTopic:
		return m.topic.Focus()
	case ctrlDate:
		return m.date.Focus()
	case ctrlTime:
		return m.time.Focus()
	}
	return nil
}

// View renders the wizard UI.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	content := m.renderModal(m.renderBody())

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderBody renders every visible step, the result panel and the buttons.
func (m *WizardModel) renderBody() string {
	s := theme.Current().S()
	st := m.session.State()
	v := m.session.Visible()
	errs := m.session.Errors()

	var sections []string
	field := func(ctrl control, label, body string, f form.Field) {
		labelStyle := s.Label
		if m.focus == ctrl {
			labelStyle = s.LabelFocused
		}
		lines := []string{labelStyle.Render(label), body}
		if e := renderFieldError(errs[f]); e != "" {
			lines = append(lines, e)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	sections = append(sections, s.SectionTitle.Render("1. Mode"))
	field(ctrlMode, "Mode", m.mode.View(string(st.Mode), m.focus == ctrlMode), form.FieldMode)

	sections = append(sections, s.SectionTitle.Render("2. Details"))
	if v.Topic {
		field(ctrlTopic, "Topic", m.topic.View(), form.FieldTopic)
	}
	if v.Category {
		field(ctrlCategory, "Category",
			m.category.View(string(st.Category), m.focus == ctrlCategory), form.FieldCategory)
	}

	if v.Scheduler {
		sections = append(sections, s.SectionTitle.Render("3. Scheduler"))
		if v.ChosenDate {
			field(ctrlDate, "Date", m.date.View(), form.FieldChosenDate)
		}
		if v.ChosenTime {
			field(ctrlTime, "Time", m.time.View(), form.FieldChosenTime)
		}
	}

	if v.Allocation {
		sections = append(sections, s.SectionTitle.Render("4. Allocation"))
		if v.Budget {
			field(ctrlBudget, "Budget", renderSlider(st.Budget, m.focus == ctrlBudget), form.FieldBudget)
		}
		if v.Urgency {
			field(ctrlUrgency, "Urgency",
				m.urgency.View(string(st.Urgency), m.focus == ctrlUrgency), form.FieldUrgency)
		}
	}

	if r := m.renderResult(); r != "" {
		sections = append(sections, r)
	}

	m.buttons.SetWidth(m.modalWidth() - 6)
	m.buttons.SetButtons([]Button{
		SubmitButton(m.session.SubmitLabel(), m.session.CanSubmit(), m.focus == ctrlSubmit),
	})
	sections = append(sections, m.buttons.Render())
	sections = append(sections, renderHintBar(
		"tab", "next",
		"←→", "choose",
		"ctrl+s", "submit",
		"esc", "quit",
	))

	return strings.Join(sections, "\n\n")
}

func (m *WizardModel) renderResult() string {
	s := theme.Current().S()
	switch r := m.session.Result().(type) {
	case flow.Success:
		return s.ResultSuccess.Render("Success!") + "\n" +
			s.Value.Render("Submission ID: "+r.ID)
	case flow.Failure:
		return s.ResultError.Render("Error") + "\n" + s.Value.Render(r.Message)
	}
	return ""
}

// modalWidth keeps the modal readable on both narrow and wide terminals.
func (m *WizardModel) modalWidth() int {
	return min(max(m.width-10, 60), 100)
}

// renderModal wraps the body in a modal container with a step title.
func (m *WizardModel) renderModal(body string) string {
	s := theme.Current().S()

	title := fmt.Sprintf("Chained Form - Step %d of 4", m.session.Visible().Step())
	content := s.ModalTitle.Render(title) + "\n\n" + body

	modal := s.ModalContainer.Width(m.modalWidth()).Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
