package xmlcodec

import (
	"encoding/xml"
	"io"
	"strings"
)

// Writer emits well-formed, indented XML. Reserved characters in attribute
// values and text content are escaped. Errors from the underlying io.Writer
// are sticky; check Err once after the last call.
type Writer struct {
	w     io.Writer
	stack []frame
	wrote bool
	err   error
}

type frame struct {
	name     string
	children bool
	text     bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Header writes the XML declaration. The declaration already ends in a
// newline, so the root element starts a fresh line without extra padding.
func (w *Writer) Header() {
	w.writeString(xml.Header)
	w.wrote = false
}

// Start opens an element. It stays open until the matching End call.
func (w *Writer) Start(name string, attrs ...Attr) {
	w.openTag(name, attrs, false)
	w.stack = append(w.stack, frame{name: name})
}

// Empty writes a self-closing element.
func (w *Writer) Empty(name string, attrs ...Attr) {
	w.openTag(name, attrs, true)
}

// Text writes escaped character data inside the open element.
func (w *Writer) Text(s string) {
	if len(w.stack) > 0 {
		w.stack[len(w.stack)-1].text = true
	}
	w.escapeString(s)
}

// End closes the most recently started element.
func (w *Writer) End() {
	if w.err != nil || len(w.stack) == 0 {
		return
	}
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if top.children {
		w.writeString("\n" + strings.Repeat("  ", len(w.stack)))
	}
	w.writeString("</" + top.name + ">")
}

// Err reports the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) openTag(name string, attrs []Attr, selfClose bool) {
	if len(w.stack) > 0 {
		w.stack[len(w.stack)-1].children = true
	}
	if w.wrote {
		w.writeString("\n" + strings.Repeat("  ", len(w.stack)))
	}
	w.writeString("<" + name)
	for _, a := range attrs {
		w.writeString(" " + a.Name + `="`)
		w.escapeString(a.Value)
		w.writeString(`"`)
	}
	if selfClose {
		w.writeString("/>")
	} else {
		w.writeString(">")
	}
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		w.err = err
	}
	w.wrote = true
}

func (w *Writer) escapeString(s string) {
	if w.err != nil {
		return
	}
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(s)); err != nil {
		w.err = err
		return
	}
	w.writeString(sb.String())
}
