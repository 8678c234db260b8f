package entity

import (
	"errors"
	"fmt"
)

// ErrEndOfStream reports that the peer closed the stream before a complete
// document was received. Any partially built tree is discarded.
var ErrEndOfStream = errors.New("entity: stream closed before document completed")

// ParseError reports malformed XML: a tokenizer syntax error or an end tag
// that does not match the open element.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entity: parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
