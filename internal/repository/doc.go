// Package repository defines the data access interface for graphstudio.
//
// Persistence is deliberately narrow: a single slot holding the last saved
// canonical graph document. The sqlite subpackage implements it.
//
// # Testing
//
// The sqlite repository is tested against in-memory databases.
package repository
