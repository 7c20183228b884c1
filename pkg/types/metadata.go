package types

import "sort"

// Metadata is the store-level key/value dictionary persisted in the
// document's head section. Values are limited to what the property-list
// encoding supports: strings, numbers, booleans, byte slices, times, and
// nested arrays or dictionaries of those.
type Metadata map[string]any

// Keys returns the metadata keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the dictionary.
func (m Metadata) Clone() Metadata {
	cp := make(Metadata, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
