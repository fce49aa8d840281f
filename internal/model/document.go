package model

import "fmt"

// Document is a classified compliance document. It carries the kind tag, the
// mapping found under the root key, and the identifying attributes every
// importable document must expose.
type Document struct {
	// Kind is the classified model kind
	Kind Kind `json:"kind" yaml:"kind"`
	// ID is the document's identifying id (or uuid) field
	ID string `json:"id" yaml:"id"`
	// Title is the document's metadata title, when present
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Version is the document's metadata version, when present
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	// Body is the mapping under the root key
	Body map[string]interface{} `json:"-" yaml:"-"`
}

// NewDocument validates the classified raw document and builds the typed
// Document for it. The value under the root key must be a mapping carrying a
// non-empty string id. Documents from the newer format generation carry uuid
// instead of id; both are accepted.
func NewDocument(kind Kind, raw RawDocument) (*Document, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	body, ok := raw[string(kind)].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s root is not a mapping", ErrInvalidDocument, kind)
	}

	id := stringField(body, "id")
	if id == "" {
		id = stringField(body, "uuid")
	}
	if id == "" {
		return nil, fmt.Errorf("%w: %s is missing its identifying id field", ErrInvalidDocument, kind)
	}

	doc := &Document{
		Kind: kind,
		ID:   id,
		Body: body,
	}

	if metadata, ok := body["metadata"].(map[string]interface{}); ok {
		doc.Title = stringField(metadata, "title")
		doc.Version = stringField(metadata, "version")
	}

	return doc, nil
}

// Model returns the full document mapping, root key included, for
// serialization.
func (d *Document) Model() map[string]interface{} {
	return map[string]interface{}{string(d.Kind): d.Body}
}

// stringField returns the named field as a non-empty string, or "".
func stringField(m map[string]interface{}, name string) string {
	if v, ok := m[name].(string); ok {
		return v
	}
	return ""
}
