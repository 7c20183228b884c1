// Package types defines the schema, record, value, and configuration types
// shared by the larder storage engine and its callers, along with the
// standard sentinel errors.
//
// A larder store persists a typed object graph as a single markup document.
// Callers describe their graph with a Schema, exchange instances as Record
// values, and identify instances by reference identifier. The engine itself
// lives in internal/htmldoc.
package types
