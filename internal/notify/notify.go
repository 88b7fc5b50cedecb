// Package notify announces regenerated indexes to downstream consumers.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "blogindex.generated"

// Event is published after an index has been written.
type Event struct {
	RunID       string    `json:"run_id"`
	DataFile    string    `json:"data_file"`
	Documents   int       `json:"documents"`
	Latest      string    `json:"latest,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Publisher delivers Events. Callers treat failures as warnings.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher discards events.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }

// conn is the subset of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Close()
}

// NATSPublisher publishes events as JSON on a core NATS subject.
type NATSPublisher struct {
	conn    conn
	subject string
	flush   time.Duration
}

// NewNATSPublisher connects to url.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("blogindex"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryNotify, "connect to NATS").
			WithContext("url", url).
			Build()
	}
	slog.Info("NATS publisher connected", "url", url, "subject", subjectOrDefault(subject))
	return newNATSPublisher(nc, subject), nil
}

func newNATSPublisher(c conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: c, subject: subjectOrDefault(subject), flush: 2 * time.Second}
}

func subjectOrDefault(subject string) string {
	if subject == "" {
		return DefaultSubject
	}
	return subject
}

// Publish sends event and waits for the server to acknowledge the flush.
func (p *NATSPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNotify, "encode event").Build()
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNotify, "publish event").
			WithContext("subject", p.subject).
			Build()
	}
	timeout := p.flush
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := p.conn.FlushTimeout(timeout); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNotify, "flush event").
			WithContext("subject", p.subject).
			Build()
	}
	slog.Debug("Published index event", "subject", p.subject, "run_id", event.RunID)
	return nil
}

// Close closes the NATS connection.
func (p *NATSPublisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
