package omp

import (
	"context"
	"testing"
	"time"
)

// mockSession scripts one response document per request, in order. Reads
// deliver the queued response in chunks of at most chunkSize bytes (the
// whole response when zero); an exhausted script reads as a clean close.
type mockSession struct {
	responses []string
	requests  []string
	pending   []byte
	chunkSize int
	closed    bool
}

func (m *mockSession) Send(ctx context.Context, data []byte) error {
	m.requests = append(m.requests, string(data))
	if n := len(m.requests); n <= len(m.responses) {
		m.pending = append(m.pending, m.responses[n-1]...)
	}
	return nil
}

func (m *mockSession) Receive(ctx context.Context, buf []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(m.pending) == 0 {
		return 0, nil
	}
	n := len(m.pending)
	if m.chunkSize > 0 && n > m.chunkSize {
		n = m.chunkSize
	}
	n = copy(buf, m.pending[:n])
	m.pending = m.pending[n:]
	return n, nil
}

func (m *mockSession) Close() error {
	m.closed = true
	return nil
}

// lastRequest returns the most recent request document.
func (m *mockSession) lastRequest(t *testing.T) string {
	t.Helper()
	if len(m.requests) == 0 {
		t.Fatal("no request was sent")
	}
	return m.requests[len(m.requests)-1]
}

// newTestClient wires a client to a scripted session with an instant,
// counting sleeper.
func newTestClient(responses ...string) (*Client, *mockSession, *int) {
	sess := &mockSession{responses: responses}
	c := NewClient(sess)
	sleeps := new(int)
	c.sleep = func(ctx context.Context, _ time.Duration) error {
		*sleeps++
		return ctx.Err()
	}
	return c, sess, sleeps
}
