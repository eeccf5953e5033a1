package form

// Payload is the body sent to the submission endpoint. Only fields relevant to the
// active branches are present.
type Payload struct {
	Mode       Mode     `json:"mode"`
	Topic      string   `json:"topic,omitempty"`
	Category   Category `json:"category,omitempty"`
	ChosenDate string   `json:"choose_date,omitempty"`
	ChosenTime string   `json:"choose_time,omitempty"`
	Budget     *int     `json:"budget,omitempty"`
	Urgency    Urgency  `json:"urgency,omitempty"`
}

// BuildPayload filters s down to what gets submitted. Topic and category follow the
// mode; the remaining fields are included whenever they hold a value, and a budget
// of 0 counts as a value.
func BuildPayload(s State) Payload {
	p := Payload{
		Mode:       s.Mode,
		ChosenDate: s.ChosenDate,
		ChosenTime: s.ChosenTime,
		Urgency:    s.Urgency,
	}
	if s.Mode == ModeBasic {
		p.Topic = s.Topic
	}
	if s.Mode == ModeAdvanced {
		p.Category = s.Category
	}
	if s.Budget != nil {
		b := *s.Budget
		p.Budget = &b
	}
	return p
}
