// Package rtyaml loads and writes YAML through yaml.v3 node trees so comments,
// key order and scalar styles survive a load/edit/save cycle.
package rtyaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Options control the layout of written documents.
type Options struct {
	// MappingIndent is the indentation of nested mappings.
	MappingIndent int
	// SequenceIndent is the column of block sequence item content relative
	// to the owning key; SequenceOffset is the column of the dash.
	SequenceIndent int
	SequenceOffset int
	// Width is the wrapping threshold. The yaml.v3 emitter never folds
	// scalars, so longer lines are written as they are.
	Width int
	// PreserveQuotes keeps single and double quoted string scalars as
	// written. When false the emitter picks a style and only quotes where
	// the value would otherwise change type.
	PreserveQuotes bool
}

// DefaultOptions are tuned for minimal diffs against hand-written files.
func DefaultOptions() Options {
	return Options{MappingIndent: 2, SequenceIndent: 2, SequenceOffset: 0, Width: 4096, PreserveQuotes: true}
}

// Validate rejects layouts the emitter cannot produce.
func (o Options) Validate() error {
	if o.MappingIndent < 2 || o.MappingIndent > 9 {
		return fmt.Errorf("mapping indent must be between 2 and 9, got %d", o.MappingIndent)
	}
	if o.SequenceOffset < 0 {
		return fmt.Errorf("sequence offset must not be negative, got %d", o.SequenceOffset)
	}
	if o.SequenceIndent-o.SequenceOffset != 2 {
		return fmt.Errorf("sequence indent (%d) must be sequence offset (%d) + 2: items are written as \"- value\"", o.SequenceIndent, o.SequenceOffset)
	}
	if o.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", o.Width)
	}
	return nil
}

// Load decodes every document in r.
func Load(r io.Reader) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(r)
	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
}

// Dump encodes docs to w. With PreserveQuotes off the documents are modified
// in place.
func Dump(w io.Writer, docs []*yaml.Node, opts Options) error {
	b, err := Marshal(docs, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Marshal encodes docs and returns the text. Zero documents encode to nothing.
func Marshal(docs []*yaml.Node, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(opts.MappingIndent)
	for i, d := range docs {
		if !opts.PreserveQuotes {
			Unquote(d)
		}
		if err := enc.Encode(d); err != nil {
			return nil, fmt.Errorf("encode document %d: %w", i, err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return relayoutSequences(buf.Bytes(), opts.SequenceOffset)
}

// Unquote clears the quoted style of every plain-tagged string scalar under n.
func Unquote(n *yaml.Node) {
	if n == nil {
		return
	}
	if n.Kind == yaml.ScalarNode && n.Style&yaml.TaggedStyle == 0 && n.ShortTag() == "!!str" {
		n.Style &^= yaml.SingleQuotedStyle | yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		Unquote(c)
	}
}
