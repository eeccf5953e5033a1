// Package ledger records accepted submissions. The JetStream ledger appends each
// record to a stream and replays the stream to list them.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/mark3labs/chainform/internal/form"
	"github.com/mark3labs/chainform/internal/logger"
	"github.com/mark3labs/chainform/internal/nats"
)

// Record is one accepted submission.
type Record struct {
	ID         string       `json:"id"`
	ReceivedAt time.Time    `json:"received_at"`
	Payload    form.Payload `json:"form_data"`
}

// Recorder stores and lists accepted submissions.
type Recorder interface {
	Record(context.Context, Record) error
	List(context.Context) ([]Record, error)
}

// JetStream is a Recorder backed by a JetStream stream.
type JetStream struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

var (
	_ Recorder = (*JetStream)(nil)
	_ Recorder = (*Memory)(nil)
)

// NewJetStream sets up the submissions stream and returns a ledger over it.
func NewJetStream(ctx context.Context, js jetstream.JetStream) (*JetStream, error) {
	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		return nil, fmt.Errorf("setting up submissions stream: %w", err)
	}
	return &JetStream{js: js, stream: stream}, nil
}

// Record appends a submission to the stream.
func (l *JetStream) Record(ctx context.Context, rec Record) error {
	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	subject := nats.SubjectForMode(string(rec.Payload.Mode))
	ack, err := l.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish submission %s to %s: %v", rec.ID, subject, err)
		return fmt.Errorf("publishing record: %w", err)
	}

	logger.Debug("Recorded submission %s: seq=%d", rec.ID, ack.Sequence)
	return nil
}

// List replays the stream from the beginning and returns records in the order
// they were accepted. Malformed entries are skipped.
func (l *JetStream) List(ctx context.Context) ([]Record, error) {
	consumer, err := l.stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{nats.SubjectAll()},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}

	info, err := l.stream.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading stream info: %w", err)
	}
	remaining := int(info.State.Msgs)

	var res []Record
	const batchSize = 500
	malformed := 0
	for remaining > 0 {
		msgs, err := consumer.FetchNoWait(min(batchSize, remaining))
		if err != nil {
			return nil, fmt.Errorf("fetching records: %w", err)
		}

		got := 0
		for msg := range msgs.Messages() {
			got++
			var rec Record
			if err := json.Unmarshal(msg.Data(), &rec); err != nil {
				malformed++
				continue
			}
			res = append(res, rec)
		}
		if err := msgs.Error(); err != nil {
			return nil, fmt.Errorf("fetching records: %w", err)
		}
		if got == 0 {
			break
		}
		remaining -= got
	}

	if malformed > 0 {
		logger.Warn("Skipped %d malformed submission records", malformed)
	}
	return res, nil
}

// Memory is an in-process Recorder, used when the ledger is disabled.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{}
}

// Record stores a copy of rec.
func (m *Memory) Record(_ context.Context, rec Record) error {
	if rec.ReceivedAt.IsZero() {
		rec.ReceivedAt = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// List returns the stored records in insertion order.
func (m *Memory) List(context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.records), nil
}
