package entity

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pkjmesra/go-omp/transport"
)

// receiveBufferSize is the capacity of the per-reader receive buffer. Large
// enough that typical responses arrive in very few reads; correctness does
// not depend on it.
const receiveBufferSize = 1 << 20

// Reader reads entity trees from a transport session, one tree per call.
//
// Each Reader owns its receive buffer and decoder; readers for different
// sessions share no state. A Reader is not safe for concurrent use, matching
// the strict half-duplex request/response discipline of the protocol.
type Reader struct {
	src     *sessionReader
	dec     *xml.Decoder
	logger  *slog.Logger
	raw     bytes.Buffer // received but not yet discarded bytes
	rawBase int64        // input offset of raw's first byte
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(logger *slog.Logger) ReaderOption {
	return func(r *Reader) { r.logger = logger }
}

// NewReader creates a Reader over sess.
func NewReader(sess transport.Session, opts ...ReaderOption) *Reader {
	r := &Reader{
		src: &sessionReader{
			sess: sess,
			buf:  make([]byte, receiveBufferSize),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.src.logger = r.logger
	r.src.tee = &r.raw
	r.dec = xml.NewDecoder(r.src)
	return r
}

// ReadEntity reads bytes from the session until one complete top-level
// element has been parsed and returns the tree.
func (r *Reader) ReadEntity(ctx context.Context) (*Entity, error) {
	ent, _, err := r.read(ctx, false)
	return ent, err
}

// ReadEntityAndText is ReadEntity plus the raw bytes consumed for the
// document, for callers that archive or compare the literal response.
func (r *Reader) ReadEntityAndText(ctx context.Context) (*Entity, string, error) {
	return r.read(ctx, true)
}

func (r *Reader) read(ctx context.Context, wantText bool) (*Entity, string, error) {
	r.src.ctx = ctx
	r.discardConsumed()

	b := NewBuilder(r.logger)
	for !b.Done() {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, "", r.tokenError(err)
		}
		if err := b.Feed(tok); err != nil {
			b.OnError(err)
			return nil, "", err
		}
	}

	var text string
	if wantText {
		n := r.dec.InputOffset() - r.rawBase
		text = string(r.raw.Bytes()[:n])
	}
	return b.Root(), text, nil
}

// tokenError classifies a decoder failure. The partially built tree is
// abandoned in every case.
func (r *Reader) tokenError(err error) error {
	if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrEndOfStream
	}
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		// The tokenizer reports a stream closed mid-token as a syntax
		// error; that is still an end-of-stream condition.
		if strings.Contains(syn.Msg, "unexpected EOF") {
			return ErrEndOfStream
		}
		return &ParseError{Err: err}
	}
	return fmt.Errorf("entity: read: %w", err)
}

// discardConsumed drops captured bytes the decoder has fully consumed, so
// the capture buffer holds at most one document plus decoder lookahead.
func (r *Reader) discardConsumed() {
	if n := r.dec.InputOffset() - r.rawBase; n > 0 {
		r.raw.Next(int(n))
		r.rawBase += n
	}
}

// sessionReader adapts the session receive primitive to io.Reader, refilling
// a fixed-capacity buffer in the exact order bytes arrive.
type sessionReader struct {
	sess   transport.Session
	ctx    context.Context
	logger *slog.Logger
	buf    []byte
	start  int // unread window into buf
	end    int
	tee    *bytes.Buffer
}

func (s *sessionReader) Read(p []byte) (int, error) {
	if s.start == s.end {
		for {
			n, err := s.sess.Receive(s.ctx, s.buf)
			if err != nil {
				if transport.IsTransient(err) {
					// Interrupted or renegotiating: retry the same read.
					s.logger.Debug("transient receive condition, retrying", "error", err)
					continue
				}
				if err == io.EOF {
					return 0, io.EOF
				}
				return 0, fmt.Errorf("receive: %w", err)
			}
			if n == 0 {
				// Clean close.
				return 0, io.EOF
			}
			s.start, s.end = 0, n
			s.tee.Write(s.buf[:n])
			break
		}
	}
	n := copy(p, s.buf[s.start:s.end])
	s.start += n
	return n, nil
}
