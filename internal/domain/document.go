package domain

import "encoding/json"

// Document is one loosely-typed record from the document store. Legacy
// imports left the collections without a fixed schema, so every field
// access has to tolerate absent keys and unexpected types.
type Document map[string]any

// ID returns the document identifier. Store implementations guarantee
// "_id" is a plain string by the time a document crosses their boundary.
func (d Document) ID() string {
	s, _ := d["_id"].(string)
	return s
}

// Clone returns a deep copy produced through a JSON round trip, so nested
// values are never shared between callers.
func (d Document) Clone() Document {
	b, err := json.Marshal(d)
	if err != nil {
		return Document{}
	}
	var out Document
	if err := json.Unmarshal(b, &out); err != nil {
		return Document{}
	}
	return out
}
