package rtyaml

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// shift moves lines from..to (1-based, inclusive) left by delta columns.
type shift struct{ from, to, delta int }

// relayoutSequences moves block sequences nested under a mapping key so the
// dash sits offset columns right of the key. yaml.v3 always indents them by
// the mapping indent. The output is re-parsed to find node positions, then
// each sequence's lines are shifted as a unit.
func relayoutSequences(text []byte, offset int) ([]byte, error) {
	docs, err := Load(bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("re-read encoded yaml: %w", err)
	}
	lines := strings.Split(string(text), "\n")
	var shifts []shift
	for i, d := range docs {
		end := len(lines)
		if i+1 < len(docs) {
			end = docs[i+1].Line - 1
		}
		for _, c := range d.Content {
			collectShifts(c, lines, end, offset, &shifts)
		}
	}
	if len(shifts) == 0 {
		return text, nil
	}
	delta := make([]int, len(lines)+2)
	for _, s := range shifts {
		if s.to < s.from {
			continue
		}
		delta[s.from] += s.delta
		delta[s.to+1] -= s.delta
	}
	run := 0
	for i := range lines {
		run += delta[i+1]
		lines[i] = moveLeft(lines[i], run)
	}
	return []byte(strings.Join(lines, "\n")), nil
}

func collectShifts(n *yaml.Node, lines []string, end, offset int, out *[]shift) {
	if n == nil || n.Style&yaml.FlowStyle != 0 {
		return
	}
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			vend := end
			if i+2 < len(n.Content) {
				vend = n.Content[i+2].Line - 1
			}
			if v.Kind == yaml.SequenceNode && v.Style&yaml.FlowStyle == 0 && len(v.Content) > 0 && v.Line > k.Line {
				vend = lastLineAt(lines, k.Line+1, vend, v.Column-1)
				if d := v.Column - k.Column - offset; d != 0 {
					*out = append(*out, shift{from: k.Line + 1, to: vend, delta: d})
				}
			}
			collectShifts(v, lines, vend, offset, out)
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			cend := end
			if i+1 < len(n.Content) {
				cend = n.Content[i+1].Line - 1
			}
			collectShifts(c, lines, cend, offset, out)
		}
	}
}

// lastLineAt walks back from line to (1-based) past blank lines and lines
// indented less than col. Every line of a block sequence whose dash is at col
// is indented at least that far, so what is skipped belongs to the enclosing
// node: head comments of the next key, tail comments, document markers.
func lastLineAt(lines []string, from, to, col int) int {
	if to > len(lines) {
		to = len(lines)
	}
	for to >= from {
		l := lines[to-1]
		if strings.TrimSpace(l) != "" && len(l)-len(strings.TrimLeft(l, " ")) >= col {
			break
		}
		to--
	}
	return to
}

// moveLeft removes up to d leading spaces, or adds -d spaces to non-blank
// lines when d is negative.
func moveLeft(line string, d int) string {
	switch {
	case d > 0:
		i := 0
		for i < d && i < len(line) && line[i] == ' ' {
			i++
		}
		return line[i:]
	case d < 0 && strings.TrimSpace(line) != "":
		return strings.Repeat(" ", -d) + line
	}
	return line
}
