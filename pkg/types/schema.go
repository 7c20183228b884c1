package types

// Attribute declares one scalar property of an entity. Transient attributes
// are held in memory only and never get a document column.
type Attribute struct {
	Name      string // Column name, unique within the entity.
	Type      string // One of the Type constants.
	Default   any    // Substituted when a cell fails to decode.
	Transient bool   // Excluded from the table header when true.
}

// Relationship declares a named link from one entity to another.
type Relationship struct {
	Name   string // Column name, unique within the entity.
	Target string // Entity name the relationship points at.
	ToMany bool   // A to-one cell holds at most one link.
}

// Entity declares one stored type: its attributes and relationships in
// declaration order. Declaration order fixes the table's column order.
type Entity struct {
	Name          string
	Attributes    []Attribute
	Relationships []Relationship
}

// Schema maps entity names to their declarations. The schema authority is
// external; the engine treats a Schema as read-only.
type Schema map[string]*Entity

// NewSchema builds a Schema keyed by entity name.
func NewSchema(entities ...*Entity) Schema {
	s := make(Schema, len(entities))
	for _, e := range entities {
		s[e.Name] = e
	}
	return s
}

// Entity returns the declaration for name, or nil if not declared.
func (s Schema) Entity(name string) *Entity {
	return s[name]
}

// Attribute returns the declared attribute with the given name, or nil.
func (e *Entity) Attribute(name string) *Attribute {
	for i := range e.Attributes {
		if e.Attributes[i].Name == name {
			return &e.Attributes[i]
		}
	}
	return nil
}

// Relationship returns the declared relationship with the given name, or nil.
func (e *Entity) Relationship(name string) *Relationship {
	for i := range e.Relationships {
		if e.Relationships[i].Name == name {
			return &e.Relationships[i]
		}
	}
	return nil
}

// ColumnNames returns the entity's document column names: non-transient
// attribute names in declaration order, then relationship names.
func (e *Entity) ColumnNames() []string {
	cols := make([]string, 0, len(e.Attributes)+len(e.Relationships))
	for _, a := range e.Attributes {
		if a.Transient {
			continue
		}
		cols = append(cols, a.Name)
	}
	for _, r := range e.Relationships {
		cols = append(cols, r.Name)
	}
	return cols
}
