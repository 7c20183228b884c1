// This file implements the load direction: walking every table in the
// document and reconstructing the typed record graph through the identity
// map. Per-cell decode anomalies are isolated; structural violations
// abort the whole load, since partial identity-map state would
// desynchronize the graph.
package htmldoc

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// load reconstructs all records and the metadata dictionary from the
// document.
func (s *Store) load() ([]*types.Record, types.Metadata, error) {
	seen := make(map[string]bool)
	var records []*types.Record

	for _, table := range docBody(s.doc).SelectElements(tagTable) {
		name := table.SelectAttrValue(attrClass, "")
		ent := s.schema.Entity(name)
		if ent == nil {
			s.logger.Warn("skipping table with undeclared type", "type", name)
			continue
		}
		cols := headerColumns(table)
		for _, row := range dataRows(table) {
			rec, err := s.loadRow(ent, table, row, cols, seen)
			if err != nil {
				return nil, nil, err
			}
			records = append(records, rec)
		}
	}

	return records, s.readMetadata(), nil
}

// loadRow decodes one data row into its record, creating or converging on
// the identity-mapped instance. Rows without an identifier (hand-authored
// data) get one synthesized and written back so later saves see a stable
// key.
func (s *Store) loadRow(ent *types.Entity, table, row *etree.Element, cols []string, seen map[string]bool) (*types.Record, error) {
	id := row.SelectAttrValue(attrID, "")
	if id == "" {
		var err error
		id, err = s.nextIdentifier(ent, table)
		if err != nil {
			return nil, err
		}
		row.CreateAttr(attrID, id)
	}
	if seen[id] {
		return nil, fmt.Errorf("%w: %s", types.ErrDuplicateIdentifier, id)
	}
	seen[id] = true

	rec := s.cache.lookupOrCreate(ent.Name, id)
	cells := row.SelectElements(tagCell)
	for i, col := range cols {
		if i >= len(cells) {
			break
		}
		cell := cells[i]
		if attr := ent.Attribute(col); attr != nil {
			if attr.Transient {
				continue
			}
			if v := s.decodeCell(attr, cell); v != nil {
				rec.SetAttr(col, v)
			}
			continue
		}
		if rel := ent.Relationship(col); rel != nil {
			refs, err := s.decodeLinks(rel, cell)
			if err != nil {
				return nil, fmt.Errorf("row %s: %w", id, err)
			}
			rec.Rels[col] = refs
			continue
		}
		s.logger.Warn("skipping undeclared column",
			"entity", ent.Name, "column", col)
	}
	return rec, nil
}

// decodeLinks resolves a relationship cell's link elements into target
// records, creating identity-mapped placeholders for rows not yet
// visited. A to-one cell holding more than one link is a structural
// violation, reported rather than silently resolved.
func (s *Store) decodeLinks(rel *types.Relationship, cell *etree.Element) (*types.Refs, error) {
	links := cell.SelectElements(tagLink)
	targets := make([]*types.Record, 0, len(links))
	for _, link := range links {
		id := strings.TrimPrefix(link.SelectAttrValue(attrHref, ""), "#")
		if id == "" {
			id = strings.TrimSpace(link.Text())
		}
		if id == "" {
			s.logger.Warn("skipping link without a target", "relationship", rel.Name)
			continue
		}
		targets = append(targets, s.cache.lookupOrCreate(rel.Target, id))
	}
	if rel.ToMany {
		return &types.Refs{ToMany: true, Many: targets}, nil
	}
	if len(targets) > 1 {
		return nil, fmt.Errorf("%w: relationship %q", types.ErrAmbiguousToOne, rel.Name)
	}
	refs := &types.Refs{}
	if len(targets) == 1 {
		refs.One = targets[0]
	}
	return refs, nil
}
