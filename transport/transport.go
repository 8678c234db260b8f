package transport

import (
	"context"
	"errors"
)

// Session is one established, encrypted connection to the manager.
//
// Both primitives block until the transport completes them. Receive returns
// the number of bytes placed in buf; zero with a nil error means the peer
// closed the stream cleanly.
type Session interface {
	// Send transmits the whole buffer.
	Send(ctx context.Context, data []byte) error

	// Receive reads up to len(buf) bytes into buf.
	Receive(ctx context.Context, buf []byte) (int, error)

	// Close tears down the session.
	Close() error
}

// Transient receive conditions. Both mean "retry the same call"; neither is
// a failure.
var (
	// ErrInterrupted reports a receive interrupted before any data arrived.
	ErrInterrupted = errors.New("transport: receive interrupted")

	// ErrRenegotiate reports that the transport wants to renegotiate the
	// session before more data can be read.
	ErrRenegotiate = errors.New("transport: session renegotiation requested")
)

// IsTransient reports whether err means the same call should be retried
// immediately.
func IsTransient(err error) bool {
	return errors.Is(err, ErrInterrupted) || errors.Is(err, ErrRenegotiate)
}
