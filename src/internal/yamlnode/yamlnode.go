package yamlnode

import (
	"gopkg.in/yaml.v3"
)

const mergeKey = "<<"

// Resolve follows alias nodes to the node they point at.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// IsMapping reports whether n is (or aliases) a mapping node.
func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// valueIndex returns the Content index of the value stored under key, or -1.
func valueIndex(m *yaml.Node, key string) int {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return i + 1
		}
	}
	return -1
}

// Lookup returns the value node for key in mapping m. Keys defined directly on
// m win over keys pulled in through "<<" merges.
func Lookup(m *yaml.Node, key string) *yaml.Node {
	m = Resolve(m)
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	if i := valueIndex(m, key); i >= 0 {
		return m.Content[i]
	}
	mi := valueIndex(m, mergeKey)
	if mi < 0 {
		return nil
	}
	src := Resolve(m.Content[mi])
	switch {
	case src == nil:
		return nil
	case src.Kind == yaml.MappingNode:
		return Lookup(src, key)
	case src.Kind == yaml.SequenceNode:
		// earlier merge sources override later ones
		for _, s := range src.Content {
			if v := Lookup(s, key); v != nil {
				return v
			}
		}
	}
	return nil
}

// Str returns the value of a string scalar. Tagged non-string scalars (ints,
// bools, nulls) report false.
func Str(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", false
	}
	return n.Value, true
}

// Scalar returns the raw text of any non-null scalar.
func Scalar(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return "", false
	}
	return n.Value, true
}

// Items returns the elements of a sequence node, or nil.
func Items(n *yaml.Node) []*yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	return n.Content
}

// SetString stores value under key in mapping m, which lives inside the tree
// rooted at root. An existing value node is rewritten in place so comments
// attached to it survive; a missing key is appended after the last pair.
//
// An anchored value is not rewritten, since its aliases must keep resolving to
// the old content. It is detached and the anchor moves to the first alias of it
// found under root; the key gets a fresh node.
func SetString(root, m *yaml.Node, key, value string) {
	if m == nil || m.Kind != yaml.MappingNode {
		return
	}
	i := valueIndex(m, key)
	if i < 0 {
		k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		v := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
		m.Content = append(m.Content, k, v)
		return
	}
	v := m.Content[i]
	if v.Anchor != "" {
		m.Content[i] = &yaml.Node{
			Style:       v.Style & (yaml.SingleQuotedStyle | yaml.DoubleQuotedStyle),
			HeadComment: v.HeadComment,
			LineComment: v.LineComment,
			FootComment: v.FootComment,
			Line:        v.Line,
			Column:      v.Column,
		}
		v.HeadComment, v.LineComment, v.FootComment = "", "", ""
		relocateAnchor(root, v)
		v = m.Content[i]
	}
	v.Kind = yaml.ScalarNode
	v.Tag = "!!str"
	v.Value = value
	v.Content = nil
	v.Alias = nil
	// keep quoting, drop block/flow styles that made sense for the old value
	v.Style &= yaml.SingleQuotedStyle | yaml.DoubleQuotedStyle
}

// relocateAnchor puts target in place of the first alias node that points at
// it, taking over that alias's comments. It reports false when nothing under
// root refers to target.
func relocateAnchor(root, target *yaml.Node) bool {
	if root == nil {
		return false
	}
	for j, c := range root.Content {
		if c.Kind == yaml.AliasNode && c.Alias == target {
			target.HeadComment = c.HeadComment
			target.LineComment = c.LineComment
			target.FootComment = c.FootComment
			root.Content[j] = target
			return true
		}
		if c.Kind != yaml.AliasNode && c != target && relocateAnchor(c, target) {
			return true
		}
	}
	return false
}
