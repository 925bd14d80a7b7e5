// Package xmlcodec converts between raw XML text and a flat stream of
// element/attribute/text events. It carries no OPML knowledge; the opml
// package layers document semantics on top of it.
package xmlcodec

import (
	"encoding/xml"
	"io"
	"strings"
)

// Kind identifies the type of an Event.
type Kind int

const (
	StartElement Kind = iota
	EndElement
	Text
)

// Attr is a single attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Event is one element or text occurrence from the underlying tokenizer.
// Attrs is populated for StartElement, Data for Text.
type Event struct {
	Kind  Kind
	Name  string
	Attrs []Attr
	Data  string
}

// Reader wraps an xml.Decoder and yields Events. Namespace prefixes are
// dropped; OPML documents are namespace-free in practice.
type Reader struct {
	dec *xml.Decoder
}

func NewReader(r io.Reader) *Reader {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	return &Reader{dec: dec}
}

// Next returns the next event. Processing instructions, comments and
// directives are skipped. io.EOF is returned at end of input; any other
// error means the input is not well-formed XML.
func (r *Reader) Next() (Event, error) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return Event{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			return Event{Kind: StartElement, Name: t.Name.Local, Attrs: attrs}, nil
		case xml.EndElement:
			return Event{Kind: EndElement, Name: t.Name.Local}, nil
		case xml.CharData:
			return Event{Kind: Text, Data: string(t)}, nil
		}
	}
}

// Skip discards tokens until the end of the most recently started element.
func (r *Reader) Skip() error {
	return r.dec.Skip()
}

// CollectText gathers the character data of the current element up to its
// end tag. Nested elements are discarded.
func (r *Reader) CollectText() (string, error) {
	var sb strings.Builder
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := r.dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}

// InputOffset reports the current byte offset in the input, for error
// messages.
func (r *Reader) InputOffset() int64 {
	return r.dec.InputOffset()
}
