package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"time"
)

// dialConfig holds TLS session settings.
type dialConfig struct {
	timeout   time.Duration
	insecure  bool
	tlsConfig *tls.Config
}

// DialOption configures Dial.
type DialOption func(*dialConfig)

// WithTimeout sets the connect timeout.
func WithTimeout(d time.Duration) DialOption {
	return func(c *dialConfig) { c.timeout = d }
}

// WithInsecureSkipVerify skips certificate verification.
// WARNING: Only use for testing.
func WithInsecureSkipVerify() DialOption {
	return func(c *dialConfig) { c.insecure = true }
}

// WithTLSConfig supplies a complete TLS configuration. Options applied after
// this one still modify it.
func WithTLSConfig(cfg *tls.Config) DialOption {
	return func(c *dialConfig) { c.tlsConfig = cfg }
}

// TLSSession is a Session over a TLS connection.
type TLSSession struct {
	conn *tls.Conn
}

// Dial connects to addr (host:port) and completes the TLS handshake.
func Dial(addr string, opts ...DialOption) (*TLSSession, error) {
	cfg := dialConfig{timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}

	tlsCfg := cfg.tlsConfig
	if tlsCfg == nil {
		tlsCfg = &tls.Config{}
	} else {
		tlsCfg = tlsCfg.Clone()
	}
	if cfg.insecure {
		tlsCfg.InsecureSkipVerify = true
	}

	dialer := &net.Dialer{Timeout: cfg.timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", addr, err)
	}
	return &TLSSession{conn: conn}, nil
}

// Send writes the whole buffer to the connection.
func (s *TLSSession) Send(ctx context.Context, data []byte) error {
	if err := s.applyDeadline(ctx, s.conn.SetWriteDeadline); err != nil {
		return err
	}
	if _, err := s.conn.Write(data); err != nil {
		return fmt.Errorf("transport: send: %w", err)
	}
	return nil
}

// Receive reads up to len(buf) bytes. A clean close by the peer is reported
// as zero bytes with a nil error.
func (s *TLSSession) Receive(ctx context.Context, buf []byte) (int, error) {
	if err := s.applyDeadline(ctx, s.conn.SetReadDeadline); err != nil {
		return 0, err
	}
	n, err := s.conn.Read(buf)
	if err == io.EOF {
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("transport: receive: %w", err)
	}
	return n, nil
}

// Close tears down the connection.
func (s *TLSSession) Close() error {
	return s.conn.Close()
}

func (s *TLSSession) applyDeadline(ctx context.Context, set func(time.Time) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return set(deadline)
	}
	return set(time.Time{})
}
