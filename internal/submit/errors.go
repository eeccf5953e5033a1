package submit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// FallbackMessage is shown when a failure carries no usable text at all
const FallbackMessage = "An unexpected error occurred"

// HTTPError describes a response with a non-2xx status. Detail holds the
// structured message the server supplied, if any.
type HTTPError struct {
	StatusCode int
	Detail     string
	Body       []byte
}

func newHTTPError(status int, body []byte) *HTTPError {
	return &HTTPError{
		StatusCode: status,
		Detail:     extractDetail(body),
		Body:       body,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %d", ErrHTTPStatus, e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return ErrHTTPStatus
}

// FailureMessage picks the richest text available for a failed submission: the
// server's structured detail, then the error's own text, then FallbackMessage.
func FailureMessage(err error) string {
	if err == nil {
		return FallbackMessage
	}
	var herr *HTTPError
	if errors.As(err, &herr) && herr.Detail != "" {
		return herr.Detail
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}

// extractDetail reads "detail" from an error body. It may be a plain string or a
// list of validation entries carrying "msg". A top-level "error" string is used
// when no detail is present.
func extractDetail(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	doc := gjson.ParseBytes(body)

	detail := doc.Get("detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsArray():
		var msgs []string
		detail.ForEach(func(_, entry gjson.Result) bool {
			if entry.Type == gjson.String {
				msgs = append(msgs, entry.String())
			} else if msg := entry.Get("msg"); msg.Type == gjson.String {
				msgs = append(msgs, msg.String())
			}
			return true
		})
		return strings.Join(msgs, "; ")
	}

	if e := doc.Get("error"); e.Type == gjson.String {
		return e.String()
	}
	return ""
}
