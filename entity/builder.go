package entity

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
)

// Builder assembles an Entity tree from streaming parser events.
//
// The first element started becomes the root. Done reports true once the
// element matching the root closes; the builder accepts no further events
// after that. A Builder is single-use.
type Builder struct {
	stack  []*Entity
	root   *Entity
	done   bool
	logger *slog.Logger
}

// NewBuilder creates a builder. logger receives non-fatal diagnostics and
// may be nil.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Root returns the root entity, or nil before the first start event.
func (b *Builder) Root() *Entity { return b.root }

// Done reports whether the root element has closed.
func (b *Builder) Done() bool { return b.done }

// OnStart opens a new element. It becomes the root if none is open yet,
// otherwise a child of the innermost open element.
func (b *Builder) OnStart(name string, attrs []xml.Attr) {
	var ent *Entity
	if len(b.stack) == 0 {
		ent = New(name, "")
		b.root = ent
	} else {
		ent = b.stack[len(b.stack)-1].AddChild(name, "")
	}
	for _, a := range attrs {
		ent.SetAttribute(a.Name.Local, a.Value)
	}
	b.stack = append(b.stack, ent)
}

// OnText appends character data to the innermost open element. Tokenizers
// may deliver one logical run as several calls; text always concatenates.
func (b *Builder) OnText(text string) {
	if len(b.stack) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1]
	top.Text += text
}

// OnEnd closes the innermost open element. A name that does not match the
// element being closed indicates malformed input and fails the parse.
func (b *Builder) OnEnd(name string) error {
	if len(b.stack) == 0 {
		return &ParseError{Err: fmt.Errorf("end tag </%s> with no open element", name)}
	}
	top := b.stack[len(b.stack)-1]
	if top.Name != name {
		return &ParseError{Err: fmt.Errorf("element <%s> closed by </%s>", top.Name, name)}
	}
	b.stack = b.stack[:len(b.stack)-1]
	if top == b.root {
		b.done = true
	}
	return nil
}

// OnError logs a diagnostic. It never aborts the parse; the driver decides
// based on the tokenizer's own error.
func (b *Builder) OnError(err error) {
	b.logger.Debug("xml parse diagnostic", "error", err)
}

// Feed dispatches one decoder token to the event handlers. Comments,
// processing instructions, and directives are ignored.
func (b *Builder) Feed(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		b.OnStart(t.Name.Local, t.Attr)
	case xml.CharData:
		b.OnText(string(t))
	case xml.EndElement:
		return b.OnEnd(t.Name.Local)
	}
	return nil
}

// Parse reads exactly one entity tree from r.
func Parse(r io.Reader) (*Entity, error) {
	dec := xml.NewDecoder(r)
	b := NewBuilder(nil)
	for !b.Done() {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, ErrEndOfStream
			}
			b.OnError(err)
			return nil, &ParseError{Err: err}
		}
		if err := b.Feed(tok); err != nil {
			return nil, err
		}
	}
	return b.Root(), nil
}
