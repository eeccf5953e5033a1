package nats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding accepted submissions
	StreamName = "chainform_submissions"

	subjectRoot = "chainform.submission"

	// retention for recorded submissions
	retention = 90 * 24 * time.Hour
)

// SubjectForMode returns the subject a submission in the given mode is
// published on. Example: "chainform.submission.basic"
func SubjectForMode(mode string) string {
	m := strings.ToLower(strings.TrimSpace(mode))
	if m == "" {
		m = "unknown"
	}
	return fmt.Sprintf("%s.%s", subjectRoot, m)
}

// SubjectAll matches submissions of every mode.
func SubjectAll() string {
	return subjectRoot + ".>"
}

// SetupStream creates or updates the submissions stream.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: []string{SubjectAll()},
		Storage:  jetstream.FileStorage,
		MaxAge:   retention,
	})
}
