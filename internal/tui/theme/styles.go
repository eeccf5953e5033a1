package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style

	// Modal
	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style

	// Form fields
	SectionTitle   lipgloss.Style
	Label          lipgloss.Style
	LabelFocused   lipgloss.Style
	Value          lipgloss.Style
	Option         lipgloss.Style
	OptionCursor   lipgloss.Style
	OptionSelected lipgloss.Style
	FieldError     lipgloss.Style
	SliderFill     lipgloss.Style
	SliderTrack    lipgloss.Style

	// Submission result
	ResultSuccess lipgloss.Style
	ResultError   lipgloss.Style

	// Buttons
	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	// Hint bar
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style
}
