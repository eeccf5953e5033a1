package form

import "strings"

// dateKeyword switches a Basic-mode topic onto the date path
const dateKeyword = "date"

// Path reports which branch of steps 3 and 4 is active. At most one of Date and
// Time is true; both false means not enough upstream input exists yet.
type Path struct {
	Date bool
	Time bool
}

// Undetermined reports whether neither branch is active yet.
func (p Path) Undetermined() bool {
	return !p.Date && !p.Time
}

// String names the active branch.
func (p Path) String() string {
	switch {
	case p.Date:
		return "date"
	case p.Time:
		return "time"
	default:
		return "undetermined"
	}
}

// Resolve derives the active path from the current state. It is recomputed on every
// call and holds no memory of earlier results.
func Resolve(s State) Path {
	switch s.Mode {
	case ModeBasic:
		if s.Topic == "" {
			return Path{}
		}
		if topicWantsDate(s.Topic) {
			return Path{Date: true}
		}
		return Path{Time: true}
	case ModeAdvanced:
		switch s.Category {
		case CategorySchedule:
			return Path{Date: true}
		case CategoryRealtime, CategoryAnalytics:
			return Path{Time: true}
		}
	}
	return Path{}
}

func topicWantsDate(topic string) bool {
	return strings.Contains(strings.ToLower(topic), dateKeyword)
}
