package omp

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/pkjmesra/go-omp/entity"
	ilog "github.com/pkjmesra/go-omp/internal/log"
	"github.com/pkjmesra/go-omp/transport"
)

const defaultPollInterval = time.Second

// Client drives one manager session. It owns the session's entity reader and
// therefore its receive buffer; clients for different sessions share nothing.
//
// A Client is not safe for concurrent use: the protocol permits exactly one
// outstanding request per session.
type Client struct {
	sess         transport.Session
	reader       *entity.Reader
	logger       *slog.Logger
	pollInterval time.Duration
	sleep        func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Request and response documents are logged at
// debug level with credentials redacted.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithPollInterval sets the delay between status polls in the wait
// operations. The default is one second.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// NewClient creates a client over an established session.
func NewClient(sess transport.Session, opts ...Option) *Client {
	c := &Client{
		sess:         sess,
		pollInterval: defaultPollInterval,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = slog.New(ilog.NewRedactingHandler(c.logger.Handler()))
	c.reader = entity.NewReader(sess, entity.WithLogger(c.logger))
	return c
}

// sleepContext waits for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// send transmits one request document.
//
// Field values interpolated by callers are sent verbatim: no XML escaping is
// applied, for byte-exact wire compatibility with managers that were driven
// by the original client. Values containing markup characters are the
// caller's responsibility.
func (c *Client) send(ctx context.Context, req string) error {
	c.logger.Debug("=> request", "xml", req)
	if err := c.sess.Send(ctx, []byte(req)); err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	return nil
}

// roundTrip sends req and reads the single response document.
func (c *Client) roundTrip(ctx context.Context, req string) (*entity.Entity, error) {
	if err := c.send(ctx, req); err != nil {
		return nil, err
	}
	resp, err := c.reader.ReadEntity(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("<= response", "name", resp.Name)
	return resp, nil
}

// command runs one fire-and-check operation: send, read one response, verify
// the status class.
func (c *Client) command(ctx context.Context, req string) error {
	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return err
	}
	_, err = checkStatus(resp)
	return err
}

// query runs one retrieval operation and hands the whole response tree to
// the caller.
func (c *Client) query(ctx context.Context, req string) (*entity.Entity, error) {
	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := checkStatus(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// checkStatus validates the status attribute of a response. The first digit
// selects the class; '2' is success. The numeric code is returned either
// way, inside a StatusError for non-success classes.
func checkStatus(resp *entity.Entity) (int, error) {
	status, ok := resp.Attribute("status")
	if !ok || status == "" {
		return 0, ErrStatusMissing
	}
	code, err := strconv.Atoi(status)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrStatusMissing, status)
	}
	if status[0] == '2' {
		return code, nil
	}
	return code, &StatusError{Status: status, Code: code}
}
