// Package log keeps credentials out of protocol logging. Request documents
// carry passwords in clear text inside <password> elements, and debug
// logging of wire traffic must never leak them.
package log

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys lists attribute keys whose values are always redacted.
// Matching is case-insensitive.
var sensitiveKeys = map[string]struct{}{
	"password": {},
	"pass":     {},
	"secret":   {},
	"token":    {},
	"cred":     {},
}

var passwordElement = regexp.MustCompile(`(?is)<password>.*?</password>`)

// RedactXML masks the content of credential-bearing elements in a protocol
// document.
func RedactXML(doc string) string {
	return passwordElement.ReplaceAllString(doc, "<password>[REDACTED]</password>")
}

// RedactingHandler is a slog.Handler that redacts sensitive attributes
// before passing records on.
type RedactingHandler struct {
	next slog.Handler
}

// NewRedactingHandler wraps next with credential redaction.
func NewRedactingHandler(next slog.Handler) *RedactingHandler {
	return &RedactingHandler{next: next}
}

// Enabled implements slog.Handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RedactingHandler) Handle(ctx context.Context, r slog.Record) error {
	var attrs []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, redactAttr(a))
		return true
	})

	clean := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	clean.AddAttrs(attrs...)
	return h.next.Handle(ctx, clean)
}

// WithAttrs implements slog.Handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(redacted)}
}

// WithGroup implements slog.Handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if _, ok := sensitiveKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, "[REDACTED]")
	}
	if a.Value.Kind() == slog.KindString {
		if s := a.Value.String(); strings.Contains(strings.ToLower(s), "<password>") {
			return slog.String(a.Key, RedactXML(s))
		}
	}
	return a
}
