package types

import "github.com/google/uuid"

// Refs holds the value of one relationship: either a single target record
// or a set of targets, discriminated by ToMany.
type Refs struct {
	ToMany bool
	One    *Record
	Many   []*Record
}

// Targets returns the related records regardless of cardinality. A to-one
// value yields a zero- or one-element slice.
func (r *Refs) Targets() []*Record {
	if r == nil {
		return nil
	}
	if r.ToMany {
		return r.Many
	}
	if r.One == nil {
		return nil
	}
	return []*Record{r.One}
}

// Record is the in-memory representation of one stored instance: a typed
// bag of attribute values and relationship links. Records reference each
// other through the identity map, never by containment, so instance graphs
// may contain cycles.
//
// A Record is mutable after construction. During a load the engine creates
// records lazily on first reference and fills their fields as rows are
// visited; callers must not read fields before the load pass completes.
type Record struct {
	Entity string // Declared entity name.
	ID     string // Reference identifier; empty until minted by the store.
	Token  string // UUID v7 instance token, minted at construction.

	Attrs map[string]any   // Attribute values keyed by attribute name.
	Rels  map[string]*Refs // Relationship values keyed by relationship name.
}

// NewRecord constructs an empty record of the given entity type with a
// fresh instance token. The reference identifier stays empty until the
// store mints one.
func NewRecord(entity string) *Record {
	return &Record{
		Entity: entity,
		Token:  uuid.Must(uuid.NewV7()).String(),
		Attrs:  make(map[string]any),
		Rels:   make(map[string]*Refs),
	}
}

// SetAttr sets an attribute value by name.
func (r *Record) SetAttr(name string, value any) {
	r.Attrs[name] = value
}

// Attr returns the attribute value for name, or nil when absent.
func (r *Record) Attr(name string) any {
	return r.Attrs[name]
}

// SetToOne sets a to-one relationship to target (nil clears it).
func (r *Record) SetToOne(name string, target *Record) {
	r.Rels[name] = &Refs{One: target}
}

// SetToMany replaces a to-many relationship with the given targets.
func (r *Record) SetToMany(name string, targets ...*Record) {
	r.Rels[name] = &Refs{ToMany: true, Many: targets}
}

// ToOne returns the single target of a to-one relationship, or nil.
func (r *Record) ToOne(name string) *Record {
	refs := r.Rels[name]
	if refs == nil || refs.ToMany {
		return nil
	}
	return refs.One
}

// ToMany returns the targets of a to-many relationship.
func (r *Record) ToMany(name string) []*Record {
	refs := r.Rels[name]
	if refs == nil || !refs.ToMany {
		return nil
	}
	return refs.Many
}
