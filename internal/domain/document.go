package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Document is the canonical graph document. It is the save/load format and the
// `graph` field of every backend request.
type Document struct {
	Nodes      []DocNode `json:"nodes" yaml:"nodes"`
	Edges      []DocEdge `json:"edges" yaml:"edges"`
	IsDirected bool      `json:"isDirected" yaml:"isDirected"`
}

// DocNode is a node as it appears in a Document
type DocNode struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// DocEdge is an edge as it appears in a Document
type DocEdge struct {
	ID       string  `json:"id" yaml:"id"`
	From     string  `json:"from" yaml:"from"`
	To       string  `json:"to" yaml:"to"`
	Label    string  `json:"label" yaml:"label"`
	Capacity float64 `json:"capacity" yaml:"capacity"`
}

// NewDocument creates an empty document
func NewDocument(directed bool) *Document {
	return &Document{
		Nodes:      make([]DocNode, 0),
		Edges:      make([]DocEdge, 0),
		IsDirected: directed,
	}
}

// AddNode adds a node to the document
func (d *Document) AddNode(node DocNode) {
	d.Nodes = append(d.Nodes, node)
}

// AddEdge adds an edge to the document
func (d *Document) AddEdge(edge DocEdge) {
	d.Edges = append(d.Edges, edge)
}

// Validate checks the structural invariants of a graph: unique ids, no self
// loops and no edge pointing at a node that is not in the document.
func (d *Document) Validate() error {
	nodes := make(map[string]struct{}, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: empty id", i)
		}
		if _, dup := nodes[n.ID]; dup {
			return fmt.Errorf("node %d: duplicate id %q", i, n.ID)
		}
		nodes[n.ID] = struct{}{}
	}

	edges := make(map[string]struct{}, len(d.Edges))
	for i, e := range d.Edges {
		if e.ID == "" {
			return fmt.Errorf("edge %d: empty id", i)
		}
		if _, dup := edges[e.ID]; dup {
			return fmt.Errorf("edge %d: duplicate id %q", i, e.ID)
		}
		edges[e.ID] = struct{}{}
		if e.From == e.To {
			return fmt.Errorf("edge %q: self-loop on %q", e.ID, e.From)
		}
		if _, ok := nodes[e.From]; !ok {
			return fmt.Errorf("edge %q: unknown node %q", e.ID, e.From)
		}
		if _, ok := nodes[e.To]; !ok {
			return fmt.Errorf("edge %q: unknown node %q", e.ID, e.To)
		}
	}
	return nil
}

// ImportDocument is the lenient shape accepted when loading a document from a
// file or from the backend. Optional fields stay nil when absent so defaults can
// be applied by the caller.
type ImportDocument struct {
	Nodes      []ImportNode `json:"nodes" yaml:"nodes"`
	Edges      []ImportEdge `json:"edges" yaml:"edges"`
	IsDirected FlexBool     `json:"isDirected" yaml:"isDirected"`
}

// ImportNode is a node in an ImportDocument
type ImportNode struct {
	ID    *FlexString `json:"id" yaml:"id"`
	Label *FlexString `json:"label" yaml:"label"`
}

// ImportEdge is an edge in an ImportDocument
type ImportEdge struct {
	ID       *FlexString `json:"id" yaml:"id"`
	From     *FlexString `json:"from" yaml:"from"`
	To       *FlexString `json:"to" yaml:"to"`
	Label    *FlexString `json:"label" yaml:"label"`
	Capacity *FlexNumber `json:"capacity" yaml:"capacity"`
}

// FlexString decodes a JSON string, number or boolean into its string form
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("empty value")
	}
	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	case '{', '[':
		return fmt.Errorf("expected scalar, got %s", b)
	default:
		if f, err := strconv.ParseFloat(string(b), 64); err == nil {
			*s = FlexString(FormatNumber(f))
			return nil
		}
		*s = FlexString(b)
	}
	return nil
}

// String returns the plain string
func (s *FlexString) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// FlexNumber decodes a JSON number or a numeric string
type FlexNumber float64

// UnmarshalJSON implements json.Unmarshaler
func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("capacity %q is not a number", v)
		}
		*n = FlexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = FlexNumber(f)
	return nil
}

// FlexBool decodes a JSON value by truthiness: false, 0, "", null and a missing
// field are false; everything else is true.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexBool) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = FlexBool(t)
	case float64:
		*f = t != 0
	case string:
		*f = t != ""
	default:
		*f = true
	}
	return nil
}
