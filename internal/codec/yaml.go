package codec

import (
	"fmt"
	"io"

	"graphstudio/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export of the canonical document
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the MIME type of exported documents
func (c *YAMLCodec) ContentType() string {
	return "application/yaml"
}

// yamlDocument represents the YAML structure for graph documents. Pointers
// distinguish a missing field from an empty one.
type yamlDocument struct {
	Nodes      []yamlNode `yaml:"nodes"`
	Edges      []yamlEdge `yaml:"edges"`
	IsDirected bool       `yaml:"isDirected"`
}

type yamlNode struct {
	ID    *string `yaml:"id"`
	Label *string `yaml:"label"`
}

type yamlEdge struct {
	ID       *string  `yaml:"id,omitempty"`
	From     *string  `yaml:"from"`
	To       *string  `yaml:"to"`
	Label    *string  `yaml:"label"`
	Capacity *float64 `yaml:"capacity"`
}

// Parse imports a document from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*domain.ImportDocument, error) {
	var yd yamlDocument
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yd); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrMalformedDocument, err)
	}

	doc := &domain.ImportDocument{IsDirected: domain.FlexBool(yd.IsDirected)}
	for _, yn := range yd.Nodes {
		doc.Nodes = append(doc.Nodes, domain.ImportNode{
			ID:    flex(yn.ID),
			Label: flex(yn.Label),
		})
	}
	for _, ye := range yd.Edges {
		edge := domain.ImportEdge{
			ID:    flex(ye.ID),
			From:  flex(ye.From),
			To:    flex(ye.To),
			Label: flex(ye.Label),
		}
		if ye.Capacity != nil {
			capacity := domain.FlexNumber(*ye.Capacity)
			edge.Capacity = &capacity
		}
		doc.Edges = append(doc.Edges, edge)
	}

	return doc, nil
}

func flex(s *string) *domain.FlexString {
	if s == nil {
		return nil
	}
	v := domain.FlexString(*s)
	return &v
}

// Export writes the document as YAML
func (c *YAMLCodec) Export(doc *domain.Document, w io.Writer) error {
	yd := yamlDocument{
		Nodes:      make([]yamlNode, 0, len(doc.Nodes)),
		Edges:      make([]yamlEdge, 0, len(doc.Edges)),
		IsDirected: doc.IsDirected,
	}
	for _, n := range doc.Nodes {
		id, label := n.ID, n.Label
		yd.Nodes = append(yd.Nodes, yamlNode{ID: &id, Label: &label})
	}
	for _, e := range doc.Edges {
		id, from, to, label, capacity := e.ID, e.From, e.To, e.Label, e.Capacity
		yd.Edges = append(yd.Edges, yamlEdge{
			ID:       &id,
			From:     &from,
			To:       &to,
			Label:    &label,
			Capacity: &capacity,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(yd); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
