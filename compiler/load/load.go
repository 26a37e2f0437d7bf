// Package load reads and writes entity descriptions: YAML documents,
// binary snapshots, and relationships and attributes inferred from Go
// struct fields.
package load

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/syssam/modeldesc/schema"
)

// Decode reads a YAML description document. Unknown keys are rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	doc := &Document{}
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("load: decode document: %w", err)
	}
	return doc, nil
}

// ReadFile reads the YAML description document at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes the document as YAML.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("load: encode document: %w", err)
	}
	return enc.Close()
}

// Describe converts the document to entity descriptions.
func (d *Document) Describe() ([]*schema.Entity, error) {
	ents := make([]*schema.Entity, 0, len(d.Entities))
	for _, e := range d.Entities {
		if e == nil {
			return nil, errors.New("load: nil entity in document")
		}
		desc, err := e.Describe()
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		ents = append(ents, desc)
	}
	return ents, nil
}

// NewDocument creates a document from entity descriptions.
func NewDocument(ents []*schema.Entity) (*Document, error) {
	doc := &Document{}
	for _, d := range ents {
		e, err := NewEntity(d)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		doc.Entities = append(doc.Entities, e)
	}
	return doc, nil
}

// MarshalSnapshot encodes the entity descriptions into a binary snapshot
// that can be decoded with UnmarshalSnapshot.
func MarshalSnapshot(ents []*schema.Entity) ([]byte, error) {
	doc, err := NewDocument(ents)
	if err != nil {
		return nil, err
	}
	buf, err := msgpack.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("load: encode snapshot: %w", err)
	}
	return buf, nil
}

// UnmarshalSnapshot decodes a snapshot created by MarshalSnapshot.
func UnmarshalSnapshot(buf []byte) ([]*schema.Entity, error) {
	doc := &Document{}
	if err := msgpack.Unmarshal(buf, doc); err != nil {
		return nil, fmt.Errorf("load: decode snapshot: %w", err)
	}
	return doc.Describe()
}
