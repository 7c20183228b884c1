// This file implements reference identifier allocation. Identifiers have
// the form "{EntityName}_{n}" and are unique across the whole document,
// not just within one table, because relationship links resolve by
// identifier alone.
package htmldoc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// nextIdentifier allocates a fresh row identifier for ent's table. A table
// carrying a nextid attribute is trusted: the identifier is taken from the
// counter without an existence check and the counter advances. Without a
// counter the allocator seeds from the last row's numeric suffix and
// linearly probes the whole document for a free identifier. Running out of
// counter space is fatal.
func (s *Store) nextIdentifier(ent *types.Entity, table *etree.Element) (string, error) {
	if v := table.SelectAttrValue(attrNextID, ""); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err == nil {
			if n == math.MaxUint64 {
				return "", types.ErrIdentifierExhausted
			}
			table.CreateAttr(attrNextID, strconv.FormatUint(n+1, 10))
			return fmt.Sprintf("%s_%d", ent.Name, n), nil
		}
		s.logger.Warn("ignoring malformed table counter",
			"entity", ent.Name, "nextid", v)
	}

	n := uint64(1)
	if rows := dataRows(table); len(rows) > 0 {
		last := rows[len(rows)-1].SelectAttrValue(attrID, "")
		if suffix, ok := trailingNumber(last); ok && suffix < math.MaxUint64 {
			n = suffix + 1
		}
	}
	for ; n < math.MaxUint64; n++ {
		id := fmt.Sprintf("%s_%d", ent.Name, n)
		if s.rowFor(id, nil) == nil {
			table.CreateAttr(attrNextID, strconv.FormatUint(n+1, 10))
			return id, nil
		}
	}
	return "", types.ErrIdentifierExhausted
}

// trailingNumber extracts the decimal suffix of an identifier, the part
// after the last underscore.
func trailingNumber(id string) (uint64, bool) {
	i := strings.LastIndexByte(id, '_')
	if i < 0 || i == len(id)-1 {
		return 0, false
	}
	n, err := strconv.ParseUint(id[i+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
