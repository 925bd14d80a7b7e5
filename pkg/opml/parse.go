package opml

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"opmlkit/pkg/xmlcodec"
)

// DefaultMaxDepth bounds outline nesting when ParseOptions does not say
// otherwise. Real documents rarely nest past a dozen levels; the bound
// exists to keep adversarial input from exhausting the stack.
const DefaultMaxDepth = 256

// ParseOptions tunes Parse behavior. The zero value applies the defaults.
type ParseOptions struct {
	// MaxDepth is the deepest allowed outline nesting. Zero means
	// DefaultMaxDepth; a negative value disables the check.
	MaxDepth int
}

// The version attribute must be of the form x.y per the OPML spec.
var versionForm = regexp.MustCompile(`^\d+\.\d+$`)

// Parse reads one OPML document. On failure the partially-built tree is
// discarded and the returned error matches one of the Err* kinds.
func Parse(r io.Reader) (*Document, error) {
	return ParseWithOptions(r, ParseOptions{})
}

// ParseString parses a document held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseWithOptions is Parse with explicit limits.
func ParseWithOptions(r io.Reader, opts ParseOptions) (*Document, error) {
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}

	p := &parser{r: xmlcodec.NewReader(r), maxDepth: maxDepth}
	doc, err := p.document()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

type parser struct {
	r        *xmlcodec.Reader
	maxDepth int
}

func (p *parser) document() (*Document, error) {
	root, err := p.rootElement()
	if err != nil {
		return nil, err
	}

	// An absent version defaults to 2.0; a present one must be a supported
	// x.y form.
	version, ok := lookupAttr(root.Attrs, "version")
	if !ok {
		version = "2.0"
	} else if !versionForm.MatchString(version) || !supportedVersions[version] {
		return nil, p.fail(ErrUnsupportedVersion, strconv.Quote(version))
	}

	doc := &Document{Version: version}
	seenHead := false
	seenBody := false

	for {
		ev, err := p.r.Next()
		if err != nil {
			return nil, p.malformed(err)
		}
		if ev.Kind == xmlcodec.EndElement {
			break
		}
		if ev.Kind != xmlcodec.StartElement {
			continue
		}

		switch ev.Name {
		case "head":
			if seenHead {
				return nil, p.fail(ErrDuplicateHeadElement, "")
			}
			seenHead = true
			head, err := p.head()
			if err != nil {
				return nil, err
			}
			doc.Head = head
		case "body":
			if seenBody {
				return nil, p.fail(ErrDuplicateBodyElement, "")
			}
			seenBody = true
			outlines, err := p.outlines(1)
			if err != nil {
				return nil, err
			}
			doc.Body = Body{Outlines: outlines}
		default:
			if err := p.r.Skip(); err != nil {
				return nil, p.malformed(err)
			}
		}
	}

	if !seenBody {
		return nil, p.fail(ErrMissingBodyElement, "")
	}
	return doc, nil
}

// rootElement scans to the first start element and requires it to be <opml>.
func (p *parser) rootElement() (xmlcodec.Event, error) {
	for {
		ev, err := p.r.Next()
		if errors.Is(err, io.EOF) {
			return xmlcodec.Event{}, p.fail(ErrMissingRootElement, "document has no elements")
		}
		if err != nil {
			return xmlcodec.Event{}, p.malformed(err)
		}
		if ev.Kind != xmlcodec.StartElement {
			continue
		}
		if ev.Name != "opml" {
			return xmlcodec.Event{}, p.fail(ErrMissingRootElement, "root element is <"+ev.Name+">")
		}
		return ev, nil
	}
}

// head reads the children of <head>. Known scalar elements populate fields;
// unknown elements and unparseable numeric values are ignored for forward
// compatibility.
func (p *parser) head() (*Head, error) {
	head := &Head{}
	for {
		ev, err := p.r.Next()
		if err != nil {
			return nil, p.malformed(err)
		}
		if ev.Kind == xmlcodec.EndElement {
			return head, nil
		}
		if ev.Kind != xmlcodec.StartElement {
			continue
		}

		text, err := p.r.CollectText()
		if err != nil {
			return nil, p.malformed(err)
		}

		switch ev.Name {
		case "title":
			head.Title = &text
		case "dateCreated":
			head.DateCreated = &text
		case "dateModified":
			head.DateModified = &text
		case "ownerName":
			head.OwnerName = &text
		case "ownerEmail":
			head.OwnerEmail = &text
		case "ownerId":
			head.OwnerID = &text
		case "docs":
			head.Docs = &text
		case "expansionState":
			head.ExpansionState = &text
		case "vertScrollState":
			head.VertScrollState = parseIntAttr(text)
		case "windowTop":
			head.WindowTop = parseIntAttr(text)
		case "windowLeft":
			head.WindowLeft = parseIntAttr(text)
		case "windowBottom":
			head.WindowBottom = parseIntAttr(text)
		case "windowRight":
			head.WindowRight = parseIntAttr(text)
		}
	}
}

// outlines reads sibling <outline> elements until the parent's end tag.
func (p *parser) outlines(depth int) ([]Outline, error) {
	var result []Outline
	for {
		ev, err := p.r.Next()
		if err != nil {
			return nil, p.malformed(err)
		}
		switch ev.Kind {
		case xmlcodec.EndElement:
			return result, nil
		case xmlcodec.StartElement:
			if ev.Name != "outline" {
				if err := p.r.Skip(); err != nil {
					return nil, p.malformed(err)
				}
				continue
			}
			outline, err := p.outline(ev, depth)
			if err != nil {
				return nil, err
			}
			result = append(result, outline)
		}
	}
}

// outline builds one node: attributes first, then children, depth-first in
// document order.
func (p *parser) outline(start xmlcodec.Event, depth int) (Outline, error) {
	if p.maxDepth > 0 && depth > p.maxDepth {
		return Outline{}, p.fail(ErrMaxDepthExceeded, "depth "+strconv.Itoa(depth))
	}

	var o Outline
	hasText := false
	for _, attr := range start.Attrs {
		value := attr.Value
		switch attr.Name {
		case "text":
			o.Text = value
			hasText = true
		case "type":
			o.Type = &value
		case "isComment":
			o.IsComment = parseBoolAttr(&o, attr)
		case "isBreakpoint":
			o.IsBreakpoint = parseBoolAttr(&o, attr)
		case "created":
			o.Created = &value
		case "category":
			o.Category = &value
		case "xmlUrl":
			o.XMLURL = &value
		case "description":
			o.Description = &value
		case "htmlUrl":
			o.HTMLURL = &value
		case "language":
			o.Language = &value
		case "title":
			o.Title = &value
		case "version":
			o.Version = &value
		case "url":
			o.URL = &value
		default:
			o.Extra = append(o.Extra, Attr{Name: attr.Name, Value: attr.Value})
		}
	}
	if !hasText || o.Text == "" {
		return Outline{}, p.fail(ErrMissingOutlineText, "")
	}

	children, err := p.outlines(depth + 1)
	if err != nil {
		return Outline{}, err
	}
	o.Outlines = children
	return o, nil
}

func (p *parser) malformed(err error) error {
	return &ParseError{Kind: ErrMalformedXML, Detail: err.Error(), Offset: p.r.InputOffset()}
}

func (p *parser) fail(kind error, detail string) error {
	return &ParseError{Kind: kind, Detail: detail, Offset: p.r.InputOffset()}
}

func lookupAttr(attrs []xmlcodec.Attr, name string) (string, bool) {
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func parseIntAttr(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// parseBoolAttr maps "true"/"false" (and strconv's other accepted forms) to
// a bool field. Anything else is preserved verbatim in the extra bag so the
// document still round-trips.
func parseBoolAttr(o *Outline, attr xmlcodec.Attr) *bool {
	b, err := strconv.ParseBool(attr.Value)
	if err != nil {
		o.Extra = append(o.Extra, Attr{Name: attr.Name, Value: attr.Value})
		return nil
	}
	return &b
}
