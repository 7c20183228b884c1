// This file implements the document index: locating tables by entity name
// and rows by identifier, with lazy creation of missing tables.
package htmldoc

import (
	"github.com/beevik/etree"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// tableFor returns the table element for ent, creating it with a
// schema-derived header row if the document does not have one yet.
func (s *Store) tableFor(ent *types.Entity) *etree.Element {
	body := docBody(s.doc)
	for _, t := range body.SelectElements(tagTable) {
		if t.SelectAttrValue(attrClass, "") == ent.Name {
			return t
		}
	}
	t := body.CreateElement(tagTable)
	t.CreateAttr(attrClass, ent.Name)
	header := t.CreateElement(tagRow)
	for _, col := range ent.ColumnNames() {
		header.CreateElement(tagHeader).SetText(col)
	}
	return t
}

// rowFor looks up a row by its id attribute. A nil scope searches every
// table in the document; otherwise the search is confined to the given
// table element. A missing row is a nil result, never an error.
func (s *Store) rowFor(id string, scope *etree.Element) *etree.Element {
	if id == "" {
		return nil
	}
	if scope != nil {
		return rowIn(scope, id)
	}
	for _, t := range docBody(s.doc).SelectElements(tagTable) {
		if row := rowIn(t, id); row != nil {
			return row
		}
	}
	return nil
}

func rowIn(table *etree.Element, id string) *etree.Element {
	for _, row := range table.SelectElements(tagRow) {
		if row.SelectAttrValue(attrID, "") == id {
			return row
		}
	}
	return nil
}

// headerColumns returns the column names from a table's header row, in
// positional order.
func headerColumns(table *etree.Element) []string {
	rows := table.SelectElements(tagRow)
	if len(rows) == 0 {
		return nil
	}
	headers := rows[0].SelectElements(tagHeader)
	cols := make([]string, 0, len(headers))
	for _, h := range headers {
		cols = append(cols, h.Text())
	}
	return cols
}

// dataRows returns a table's rows after the header row.
func dataRows(table *etree.Element) []*etree.Element {
	rows := table.SelectElements(tagRow)
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

// newRow allocates an identifier and builds a detached row with one empty
// cell per header column. The caller decides when to attach it.
func (s *Store) newRow(ent *types.Entity, table *etree.Element) (*etree.Element, error) {
	id, err := s.nextIdentifier(ent, table)
	if err != nil {
		return nil, err
	}
	return newRowWithID(table, id), nil
}

// newRowWithID builds a detached row carrying an already-reserved
// identifier.
func newRowWithID(table *etree.Element, id string) *etree.Element {
	row := etree.NewElement(tagRow)
	row.CreateAttr(attrID, id)
	for range headerColumns(table) {
		row.CreateElement(tagCell)
	}
	return row
}
