// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xmltree parses XML documents into a generic tree and provides
// shape-tolerant accessors over it.
//
// A node is one of:
//   - nil: the element is absent (or empty)
//   - string: an element holding only text
//   - map[string]any: an element with children or attributes; its own text,
//     if any, lives under TextKey and attributes under "-name" keys
//   - []any: repeated sibling elements of the same name
//
// The tree does not record whether an element may repeat, so a list-valued
// field holding one element comes back as that element, not as a one-element
// list. List normalizes both forms.
package xmltree

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/clbanning/mxj/v2"
)

// TextKey holds an element's character data when the element also carries
// attributes or children.
const TextKey = "#text"

// ShapeError reports a node whose shape does not fit the access made on it,
// such as descending into a text node.
type ShapeError struct {
	Key  string
	Kind string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("cannot read %q from %s node", e.Key, e.Kind)
}

// Flattener removes the tags of inline formatting elements while keeping
// their character data, so mixed content such as "CO<sub>2</sub> levels"
// parses as the single text "CO2 levels". The tree keeps only the text that
// precedes an element's first child, so markup must go before parsing.
type Flattener struct {
	re *regexp.Regexp
}

// NewFlattener returns a Flattener for the named elements.
func NewFlattener(tags ...string) *Flattener {
	if len(tags) == 0 {
		return &Flattener{}
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = regexp.QuoteMeta(t)
	}
	return &Flattener{
		re: regexp.MustCompile(`</?(?:` + strings.Join(names, "|") + `)(?:\s[^<>]*)?/?>`),
	}
}

// Flatten returns data with the inline tags removed.
func (f *Flattener) Flatten(data []byte) []byte {
	if f == nil || f.re == nil {
		return data
	}
	return f.re.ReplaceAll(data, nil)
}

// Parse decodes data into a tree rooted at a single-key mapping named after
// the document element.
func Parse(data []byte) (map[string]any, error) {
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, err
	}
	return map[string]any(m), nil
}

// Child returns the value stored under key. Absent and blank nodes have no
// children, so they yield nil. Text with content and sequences cannot be
// descended into and yield a *ShapeError.
func Child(node any, key string) (any, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return n[key], nil
	case string:
		if strings.TrimSpace(n) == "" {
			return nil, nil
		}
		return nil, &ShapeError{Key: key, Kind: "text"}
	case []any:
		return nil, &ShapeError{Key: key, Kind: "sequence"}
	default:
		return nil, &ShapeError{Key: key, Kind: fmt.Sprintf("%T", node)}
	}
}

// Path follows keys from node, stopping at the first absent step.
func Path(node any, keys ...string) (any, error) {
	cur := node
	for _, k := range keys {
		next, err := Child(cur, k)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, nil
		}
		cur = next
	}
	return cur, nil
}

// List returns node as a sequence: nil for an absent node, the node itself
// for a sequence, and a one-element sequence otherwise.
func List(node any) []any {
	switch n := node.(type) {
	case nil:
		return nil
	case []any:
		return n
	default:
		return []any{n}
	}
}

// Text returns the character data of node: the string itself for a text
// node, the TextKey entry for a mapping, and "" for an absent node. A
// sequence has no single text value and yields a *ShapeError.
func Text(node any) (string, error) {
	switch n := node.(type) {
	case nil:
		return "", nil
	case string:
		return n, nil
	case map[string]any:
		return Text(n[TextKey])
	default:
		return "", &ShapeError{Key: TextKey, Kind: kind(node)}
	}
}

// TextAt is Text(Path(node, keys...)).
func TextAt(node any, keys ...string) (string, error) {
	n, err := Path(node, keys...)
	if err != nil {
		return "", err
	}
	return Text(n)
}

func kind(node any) string {
	if _, ok := node.([]any); ok {
		return "sequence"
	}
	return fmt.Sprintf("%T", node)
}
