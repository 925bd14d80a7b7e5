package opml

import "encoding/json"

// JSON renders the document as a generic structured value, for tooling that
// wants a tree without XML semantics. The view is derived from the model;
// round-trip guarantees apply to XML, not JSON.
func (d *Document) JSON(pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}
