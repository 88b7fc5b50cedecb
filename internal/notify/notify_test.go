package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/blogindex/internal/foundation/errors"
)

type fakeConn struct {
	subject  string
	data     []byte
	pubErr   error
	flushErr error
	flushed  time.Duration
	closed   bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return f.pubErr
}

func (f *fakeConn) FlushTimeout(d time.Duration) error {
	f.flushed = d
	return f.flushErr
}

func (f *fakeConn) Close() { f.closed = true }

func TestNATSPublisher_PublishesJSON(t *testing.T) {
	fc := &fakeConn{}
	p := newNATSPublisher(fc, "")

	ev := Event{
		RunID:       "run-1",
		DataFile:    "public/blog_data.json",
		Documents:   2,
		Latest:      "Welcome",
		GeneratedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.Publish(context.Background(), ev))

	assert.Equal(t, DefaultSubject, fc.subject)
	var got Event
	require.NoError(t, json.Unmarshal(fc.data, &got))
	assert.Equal(t, ev, got)
	assert.Equal(t, 2*time.Second, fc.flushed)

	require.NoError(t, p.Close())
	assert.True(t, fc.closed)
}

func TestNATSPublisher_ContextDeadlineBoundsFlush(t *testing.T) {
	fc := &fakeConn{}
	p := newNATSPublisher(fc, "custom.subject")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Publish(ctx, Event{RunID: "r"}))

	assert.Equal(t, "custom.subject", fc.subject)
	assert.LessOrEqual(t, fc.flushed, 100*time.Millisecond)
}

func TestNATSPublisher_Errors(t *testing.T) {
	p := newNATSPublisher(&fakeConn{pubErr: errors.New("no route")}, "s")
	err := p.Publish(context.Background(), Event{})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotify))

	p = newNATSPublisher(&fakeConn{flushErr: errors.New("timeout")}, "s")
	err = p.Publish(context.Background(), Event{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flush event")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, newNATSPublisher(&fakeConn{}, "s").Publish(ctx, Event{}), context.Canceled)
}

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotify))
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
