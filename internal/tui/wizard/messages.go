package wizard

import "github.com/mark3labs/chainform/internal/submit"

// SubmittedMsg carries the transport's answer for the submission in flight.
type SubmittedMsg struct {
	Response *submit.Response
	Err      error
}
