// Package htmldoc implements the larder storage engine over a single
// tagged-markup document. Each declared entity gets a table element, each
// instance a row, and relationships are anchor links whose targets are
// reference identifiers.
//
// The engine is synchronous and whole-document: a load walks every table
// and reconstructs the full record graph through an identity map, and a
// commit serializes the entire document and atomically replaces the
// backing file. A Store serializes its own public surface with a mutex,
// but multi-writer access is the caller's problem.
package htmldoc
