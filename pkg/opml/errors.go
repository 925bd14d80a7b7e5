package opml

import (
	"errors"
	"fmt"
)

// Parse failure kinds. Match with errors.Is; the error returned by Parse
// also carries positional context where the tokenizer provides it.
var (
	ErrMalformedXML        = errors.New("malformed xml")
	ErrMissingRootElement  = errors.New("missing <opml> root element")
	ErrMissingBodyElement  = errors.New("missing <body> element")
	ErrDuplicateBodyElement = errors.New("duplicate <body> element")
	ErrDuplicateHeadElement = errors.New("duplicate <head> element")
	ErrMissingOutlineText  = errors.New("outline is missing the text attribute")
	ErrUnsupportedVersion  = errors.New("unsupported opml version")
	ErrMaxDepthExceeded    = errors.New("outline nesting exceeds maximum depth")
)

// ParseError wraps one of the kind sentinels above with document context.
type ParseError struct {
	Kind   error
	Detail string
	Offset int64
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Offset > 0 {
		msg = fmt.Sprintf("%s (at byte %d)", msg, e.Offset)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
