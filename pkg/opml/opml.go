// Package opml parses, constructs and serializes OPML 2.0 documents.
//
// A Document is either produced by Parse or built field by field and
// rendered with XML. Optional fields are pointers: nil means the field was
// absent from the document, which is distinct from an empty string.
// Attributes the model does not recognize are preserved in Outline.Extra in
// document order, so unknown extensions survive a parse/serialize round
// trip. Equality between documents is structural.
package opml

import "time"

// Version values accepted by Parse.
var supportedVersions = map[string]bool{"1.0": true, "1.1": true, "2.0": true}

// Document is a single OPML document: optional metadata in Head and the
// outline tree in Body.
type Document struct {
	Version string `json:"version"`
	Head    *Head  `json:"head,omitempty"`
	Body    Body   `json:"body"`
}

// Head holds document-level metadata. Every field is optional.
type Head struct {
	Title           *string `json:"title,omitempty"`
	DateCreated     *string `json:"dateCreated,omitempty"`
	DateModified    *string `json:"dateModified,omitempty"`
	OwnerName       *string `json:"ownerName,omitempty"`
	OwnerEmail      *string `json:"ownerEmail,omitempty"`
	OwnerID         *string `json:"ownerId,omitempty"`
	Docs            *string `json:"docs,omitempty"`
	ExpansionState  *string `json:"expansionState,omitempty"`
	VertScrollState *int    `json:"vertScrollState,omitempty"`
	WindowTop       *int    `json:"windowTop,omitempty"`
	WindowLeft      *int    `json:"windowLeft,omitempty"`
	WindowBottom    *int    `json:"windowBottom,omitempty"`
	WindowRight     *int    `json:"windowRight,omitempty"`
}

// Body contains the top-level outlines. Zero outlines is a valid body.
type Body struct {
	Outlines []Outline `json:"outlines"`
}

// Attr is an attribute the model does not map to a named field.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Outline is one node of the outline tree. Text is the only attribute the
// format requires; the typed fields are meaningful depending on Type but
// the model does not enforce combinations. Extra keeps unrecognized
// attributes in their original order.
type Outline struct {
	Text         string  `json:"text"`
	Type         *string `json:"type,omitempty"`
	IsComment    *bool   `json:"isComment,omitempty"`
	IsBreakpoint *bool   `json:"isBreakpoint,omitempty"`
	Created      *string `json:"created,omitempty"`
	Category     *string `json:"category,omitempty"`
	XMLURL       *string `json:"xmlUrl,omitempty"`
	Description  *string `json:"description,omitempty"`
	HTMLURL      *string `json:"htmlUrl,omitempty"`
	Language     *string `json:"language,omitempty"`
	Title        *string `json:"title,omitempty"`
	Version      *string `json:"version,omitempty"`
	URL          *string `json:"url,omitempty"`

	Extra []Attr `json:"extra,omitempty"`

	Outlines []Outline `json:"outlines,omitempty"`
}

// New returns an empty version 2.0 document: no head, empty body.
func New() *Document {
	return &Document{Version: "2.0"}
}

// AddFeed appends a top-level outline with text and xmlUrl attributes, the
// shape subscription lists use. Returns the document for chaining.
func (d *Document) AddFeed(text, xmlURL string) *Document {
	d.Body.Outlines = append(d.Body.Outlines, feedOutline(text, xmlURL))
	return d
}

// AddFeed appends a child outline with text and xmlUrl attributes, for
// grouped subscription lists. Returns the outline for chaining.
func (o *Outline) AddFeed(text, xmlURL string) *Outline {
	o.Outlines = append(o.Outlines, feedOutline(text, xmlURL))
	return o
}

// AddChild appends a child outline.
func (o *Outline) AddChild(child Outline) *Outline {
	o.Outlines = append(o.Outlines, child)
	return o
}

// EnsureHead returns the document head, allocating it first if absent.
func (d *Document) EnsureHead() *Head {
	if d.Head == nil {
		d.Head = &Head{}
	}
	return d.Head
}

// Stamp records the given time as the document creation date, in the
// RFC 822 date shape OPML uses (four-digit year, numeric zone).
func (h *Head) Stamp(t time.Time) *Head {
	created := t.Format(time.RFC1123Z)
	h.DateCreated = &created
	return h
}

func feedOutline(text, xmlURL string) Outline {
	return Outline{Text: text, XMLURL: &xmlURL}
}
