// This file provides read-only views of the raw document for inspection
// tooling. These work from the document alone, without consulting the
// schema, so a host can examine any store file.
package htmldoc

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// TableInfo describes one table in the document.
type TableInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    int      `json:"rows"`
	NextID  string   `json:"nextid,omitempty"`
}

// Tables lists the document's tables in document order.
func (s *Store) Tables() ([]TableInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, types.ErrDetached
	}
	var infos []TableInfo
	for _, table := range docBody(s.doc).SelectElements(tagTable) {
		infos = append(infos, TableInfo{
			Name:    table.SelectAttrValue(attrClass, ""),
			Columns: headerColumns(table),
			Rows:    len(dataRows(table)),
			NextID:  table.SelectAttrValue(attrNextID, ""),
		})
	}
	return infos, nil
}

// RowCells returns the raw cell content of one row keyed by column name.
// Link elements render as their target identifiers, comma separated.
func (s *Store) RowCells(id string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, types.ErrDetached
	}
	row := s.rowFor(id, nil)
	if row == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrNotFound, id)
	}
	cols := headerColumns(row.Parent())
	cells := row.SelectElements(tagCell)
	out := make(map[string]string, len(cols))
	for i, col := range cols {
		if i >= len(cells) {
			break
		}
		cell := cells[i]
		if links := cell.SelectElements(tagLink); len(links) > 0 {
			targets := make([]string, 0, len(links))
			for _, link := range links {
				targets = append(targets, strings.TrimPrefix(link.SelectAttrValue(attrHref, ""), "#"))
			}
			out[col] = strings.Join(targets, ",")
			continue
		}
		out[col] = cell.Text()
	}
	return out, nil
}
