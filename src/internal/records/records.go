package records

import (
	"gopkg.in/yaml.v3"

	"bibyaml/src/internal/yamlnode"
)

// ListKeys are the root mapping keys, in priority order, that may hold the
// sequence of records.
var ListKeys = []string{"items", "records", "citations", "entries", "data"}

// Ref points at one record inside its parent container. Key is set when the
// parent is the root mapping; Index is the element position for sequences.
// Root is the node Locate was given.
type Ref struct {
	Root   *yaml.Node
	Parent *yaml.Node
	Key    string
	Index  int
	Record *yaml.Node
}

// Locate returns every record of the document in traversal order. Exactly one
// layout is recognised:
//
//   - a root sequence of mappings;
//   - a root mapping holding a sequence under one of ListKeys;
//   - a root mapping whose mapping values are the records.
//
// Anything else yields no records.
func Locate(doc *yaml.Node) []Ref {
	root := doc
	if root != nil && root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}
	root = yamlnode.Resolve(root)
	if root == nil {
		return nil
	}
	switch root.Kind {
	case yaml.SequenceNode:
		return fromSequence(doc, root)
	case yaml.MappingNode:
		for _, k := range ListKeys {
			if seq := ownValue(root, k); seq != nil && seq.Kind == yaml.SequenceNode {
				return fromSequence(doc, seq)
			}
		}
		var out []Ref
		for i := 0; i+1 < len(root.Content); i += 2 {
			k, v := root.Content[i], root.Content[i+1]
			if v.Kind != yaml.MappingNode || k.Value == "<<" {
				continue
			}
			out = append(out, Ref{Root: doc, Parent: root, Key: k.Value, Index: i + 1, Record: v})
		}
		return out
	}
	return nil
}

func fromSequence(doc, seq *yaml.Node) []Ref {
	var out []Ref
	for i, el := range seq.Content {
		if el.Kind != yaml.MappingNode {
			continue
		}
		out = append(out, Ref{Root: doc, Parent: seq, Index: i, Record: el})
	}
	return out
}

// ownValue looks a key up on the root mapping itself, ignoring merges.
func ownValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if k := m.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
