// Package codec reads and writes graph documents.
//
// JSONCodec and YAMLCodec implement Importer and Exporter for the canonical
// {nodes, edges, isDirected} document. Parsing is lenient and yields a
// domain.ImportDocument; Normalize applies the import defaults and validates
// it into a domain.Document before anything touches the store.
//
// ParseRepresentation checks pasted adjacency matrix, adjacency list and edge
// list text before it is sent to the backend, and FormatRepresentations turns
// a conversion result into display text.
package codec
