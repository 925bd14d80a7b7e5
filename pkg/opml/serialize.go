package opml

import (
	"io"
	"strconv"
	"strings"

	"opmlkit/pkg/xmlcodec"
)

// XML renders the document as an OPML 2.0 string with the XML declaration
// and two-space indentation. A validly constructed document always
// serializes; the error path exists only for WriteXML's io.Writer.
func (d *Document) XML() (string, error) {
	var sb strings.Builder
	if err := d.WriteXML(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteXML streams the serialized document to w.
//
// Head children are emitted in a fixed canonical order, outline attributes
// as recognized fields first (stable order) followed by the extra
// attributes in their original insertion order. Parsing the output yields a
// structurally equal document.
func (d *Document) WriteXML(w io.Writer) error {
	version := d.Version
	if version == "" {
		version = "2.0"
	}

	xw := xmlcodec.NewWriter(w)
	xw.Header()
	xw.Start("opml", xmlcodec.Attr{Name: "version", Value: version})
	if d.Head != nil {
		writeHead(xw, d.Head)
	}
	xw.Start("body")
	for _, o := range d.Body.Outlines {
		writeOutline(xw, o)
	}
	xw.End()
	xw.End()
	return xw.Err()
}

func writeHead(xw *xmlcodec.Writer, h *Head) {
	xw.Start("head")
	writeScalar(xw, "title", h.Title)
	writeScalar(xw, "dateCreated", h.DateCreated)
	writeScalar(xw, "dateModified", h.DateModified)
	writeScalar(xw, "ownerName", h.OwnerName)
	writeScalar(xw, "ownerEmail", h.OwnerEmail)
	writeScalar(xw, "ownerId", h.OwnerID)
	writeScalar(xw, "docs", h.Docs)
	writeScalar(xw, "expansionState", h.ExpansionState)
	writeIntScalar(xw, "vertScrollState", h.VertScrollState)
	writeIntScalar(xw, "windowTop", h.WindowTop)
	writeIntScalar(xw, "windowLeft", h.WindowLeft)
	writeIntScalar(xw, "windowBottom", h.WindowBottom)
	writeIntScalar(xw, "windowRight", h.WindowRight)
	xw.End()
}

func writeScalar(xw *xmlcodec.Writer, name string, value *string) {
	if value == nil {
		return
	}
	xw.Start(name)
	xw.Text(*value)
	xw.End()
}

func writeIntScalar(xw *xmlcodec.Writer, name string, value *int) {
	if value == nil {
		return
	}
	xw.Start(name)
	xw.Text(strconv.Itoa(*value))
	xw.End()
}

func writeOutline(xw *xmlcodec.Writer, o Outline) {
	attrs := outlineAttrs(o)
	if len(o.Outlines) == 0 {
		xw.Empty("outline", attrs...)
		return
	}
	xw.Start("outline", attrs...)
	for _, child := range o.Outlines {
		writeOutline(xw, child)
	}
	xw.End()
}

func outlineAttrs(o Outline) []xmlcodec.Attr {
	attrs := make([]xmlcodec.Attr, 0, 13+len(o.Extra))
	attrs = append(attrs, xmlcodec.Attr{Name: "text", Value: o.Text})
	attrs = appendAttr(attrs, "type", o.Type)
	attrs = appendBoolAttr(attrs, "isComment", o.IsComment)
	attrs = appendBoolAttr(attrs, "isBreakpoint", o.IsBreakpoint)
	attrs = appendAttr(attrs, "created", o.Created)
	attrs = appendAttr(attrs, "category", o.Category)
	attrs = appendAttr(attrs, "xmlUrl", o.XMLURL)
	attrs = appendAttr(attrs, "description", o.Description)
	attrs = appendAttr(attrs, "htmlUrl", o.HTMLURL)
	attrs = appendAttr(attrs, "language", o.Language)
	attrs = appendAttr(attrs, "title", o.Title)
	attrs = appendAttr(attrs, "version", o.Version)
	attrs = appendAttr(attrs, "url", o.URL)
	for _, extra := range o.Extra {
		attrs = append(attrs, xmlcodec.Attr{Name: extra.Name, Value: extra.Value})
	}
	return attrs
}

func appendAttr(attrs []xmlcodec.Attr, name string, value *string) []xmlcodec.Attr {
	if value == nil {
		return attrs
	}
	return append(attrs, xmlcodec.Attr{Name: name, Value: *value})
}

func appendBoolAttr(attrs []xmlcodec.Attr, name string, value *bool) []xmlcodec.Attr {
	if value == nil {
		return attrs
	}
	return append(attrs, xmlcodec.Attr{Name: name, Value: strconv.FormatBool(*value)})
}
