package codec

import (
	"fmt"
	"strconv"

	"graphstudio/internal/domain"
)

// ImportWeight is the label given to imported edges that carry none
const ImportWeight = "1"

// Normalize turns a lenient import document into a validated canonical
// document: ids and labels become strings, missing edge ids are generated,
// a missing label becomes "1" and a missing capacity defaultCapacity.
// Nothing is returned unless the whole document is usable.
func Normalize(in *domain.ImportDocument, defaultCapacity float64) (*domain.Document, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedDocument)
	}

	doc := domain.NewDocument(bool(in.IsDirected))
	for i, n := range in.Nodes {
		if n.ID == nil || n.ID.String() == "" {
			return nil, fmt.Errorf("%w: node %d has no id", ErrMalformedDocument, i)
		}
		id := n.ID.String()
		label := id
		if n.Label != nil {
			label = n.Label.String()
		}
		doc.AddNode(domain.DocNode{ID: id, Label: label})
	}

	taken := make(map[string]struct{}, len(in.Edges))
	for _, e := range in.Edges {
		if e.ID != nil && e.ID.String() != "" {
			taken[e.ID.String()] = struct{}{}
		}
	}
	seq := 0
	nextID := func() string {
		for {
			seq++
			id := "e" + strconv.Itoa(seq)
			if _, ok := taken[id]; !ok {
				taken[id] = struct{}{}
				return id
			}
		}
	}

	for i, e := range in.Edges {
		if e.From == nil || e.To == nil {
			return nil, fmt.Errorf("%w: edge %d is missing an endpoint", ErrMalformedDocument, i)
		}
		edge := domain.DocEdge{
			From:     e.From.String(),
			To:       e.To.String(),
			Label:    ImportWeight,
			Capacity: defaultCapacity,
		}
		if e.ID != nil && e.ID.String() != "" {
			edge.ID = e.ID.String()
		} else {
			edge.ID = nextID()
		}
		if e.Label != nil {
			edge.Label = e.Label.String()
		}
		if e.Capacity != nil {
			edge.Capacity = float64(*e.Capacity)
		}
		doc.AddEdge(edge)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return doc, nil
}
