// This file implements the identity map: at most one in-memory record per
// reference identifier for the lifetime of an attached store.
package htmldoc

import "github.com/mesh-intelligence/larder/pkg/types"

// recordCache maps reference identifiers to record instances. It holds
// non-owning lookups; records reference each other only through
// identifiers resolved here, never by containment.
type recordCache struct {
	records map[string]*types.Record
}

func newRecordCache() *recordCache {
	return &recordCache{records: make(map[string]*types.Record)}
}

// lookupOrCreate returns the record registered under id, or registers and
// returns a fresh empty record of the given entity type. A record created
// here may be a placeholder for a row not yet visited; the loader fills
// its fields in place when the row comes up.
func (c *recordCache) lookupOrCreate(entity, id string) *types.Record {
	if rec, ok := c.records[id]; ok {
		return rec
	}
	rec := types.NewRecord(entity)
	rec.ID = id
	c.records[id] = rec
	return rec
}

// get returns the record registered under id, if any.
func (c *recordCache) get(id string) (*types.Record, bool) {
	rec, ok := c.records[id]
	return rec, ok
}

// put registers a record under its identifier, replacing any placeholder.
func (c *recordCache) put(rec *types.Record) {
	c.records[rec.ID] = rec
}

// remove drops the registration for id.
func (c *recordCache) remove(id string) {
	delete(c.records, id)
}
