// This file implements the save direction: writing changed or new records
// back into the document, creating rows for newly referenced records so
// every link target resolves on the next load.
package htmldoc

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// saveRecord writes one record's attribute cells and relationship links
// into its row, creating the row first for a new instance.
func (s *Store) saveRecord(rec *types.Record) error {
	ent := s.schema.Entity(rec.Entity)
	if ent == nil {
		return fmt.Errorf("%w: %q", types.ErrUnknownEntity, rec.Entity)
	}
	table := s.tableFor(ent)
	row, err := s.rowForRecord(ent, table, rec)
	if err != nil {
		return err
	}

	cols := headerColumns(table)
	index := make(map[string]int, len(cols))
	for i, col := range cols {
		index[col] = i
	}
	cells := row.SelectElements(tagCell)

	for i := range ent.Attributes {
		attr := &ent.Attributes[i]
		if attr.Transient {
			continue
		}
		pos, ok := index[attr.Name]
		if !ok || pos >= len(cells) {
			s.logger.Warn("table has no column for attribute",
				"entity", ent.Name, "attribute", attr.Name)
			continue
		}
		if err := s.encodeCell(attr, rec.Attrs[attr.Name], cells[pos]); err != nil {
			return err
		}
	}

	for i := range ent.Relationships {
		rel := &ent.Relationships[i]
		pos, ok := index[rel.Name]
		if !ok || pos >= len(cells) {
			s.logger.Warn("table has no column for relationship",
				"entity", ent.Name, "relationship", rel.Name)
			continue
		}
		if err := s.encodeLinks(rel, rec.Rels[rel.Name], cells[pos]); err != nil {
			return err
		}
	}
	return nil
}

// rowForRecord locates the record's row, minting an identifier and
// building the row for a new instance. A record that claims an identifier
// the document has no row for, and that was not reserved through
// ReferenceID, means the in-memory graph has diverged from the document;
// that is fatal.
func (s *Store) rowForRecord(ent *types.Entity, table *etree.Element, rec *types.Record) (*etree.Element, error) {
	if rec.ID == "" {
		row, err := s.newRow(ent, table)
		if err != nil {
			return nil, err
		}
		rec.ID = row.SelectAttrValue(attrID, "")
		table.AddChild(row)
		s.cache.put(rec)
		return row, nil
	}
	if row := s.rowFor(rec.ID, table); row != nil {
		return row, nil
	}
	if s.pending[rec.ID] {
		row := newRowWithID(table, rec.ID)
		table.AddChild(row)
		delete(s.pending, rec.ID)
		return row, nil
	}
	return nil, fmt.Errorf("%w: no row for %s", types.ErrNotFound, rec.ID)
}

// encodeLinks clears a relationship cell and repopulates it with one link
// per related record, creating target rows for records not yet persisted.
func (s *Store) encodeLinks(rel *types.Relationship, refs *types.Refs, cell *etree.Element) error {
	targets := refs.Targets()
	if !rel.ToMany && len(targets) > 1 {
		return fmt.Errorf("%w: relationship %q", types.ErrAmbiguousToOne, rel.Name)
	}
	clearElement(cell)
	for _, target := range targets {
		if err := s.ensureTarget(target); err != nil {
			return err
		}
		link := cell.CreateElement(tagLink)
		link.CreateAttr(attrHref, "#"+target.ID)
		link.SetText(target.ID)
	}
	return nil
}

// ensureTarget makes a link target resolvable on the next load: a target
// without an identifier gets one minted and an empty row attached to its
// table.
func (s *Store) ensureTarget(target *types.Record) error {
	ent := s.schema.Entity(target.Entity)
	if ent == nil {
		return fmt.Errorf("%w: %q", types.ErrUnknownEntity, target.Entity)
	}
	_, err := s.rowForRecord(ent, s.tableFor(ent), target)
	return err
}

// deleteRecord removes the row for id from its table. The row's position
// is located fresh on every call; indices remembered across removals are
// invalid. Deleting an unknown identifier is a contract violation.
func (s *Store) deleteRecord(id string) error {
	row := s.rowFor(id, nil)
	if row == nil {
		return fmt.Errorf("%w: %s", types.ErrNotFound, id)
	}
	row.Parent().RemoveChild(row)
	s.cache.remove(id)
	return nil
}
