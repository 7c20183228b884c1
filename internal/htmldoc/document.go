// This file defines the document shape: the html/head/body skeleton,
// parsing and serialization, and the metadata tags in the head section.
package htmldoc

import (
	"fmt"

	"github.com/beevik/etree"
	"howett.net/plist"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Element and attribute names of the document format.
const (
	tagHTML   = "html"
	tagHead   = "head"
	tagBody   = "body"
	tagMeta   = "meta"
	tagTable  = "table"
	tagRow    = "tr"
	tagHeader = "th"
	tagCell   = "td"
	tagLink   = "a"

	attrClass   = "class"
	attrID      = "id"
	attrNextID  = "nextid"
	attrName    = "name"
	attrContent = "content"
	attrHref    = "href"

	xhtmlNamespace = "http://www.w3.org/1999/xhtml"
)

// newSkeleton builds an empty store document: an html root with empty
// head and body sections.
func newSkeleton() *etree.Document {
	doc := etree.NewDocument()
	root := doc.CreateElement(tagHTML)
	root.CreateAttr("xmlns", xhtmlNamespace)
	root.CreateElement(tagHead)
	root.CreateElement(tagBody)
	return doc
}

// parseDocument parses backing bytes into a document tree. Well-formedness
// beyond what the tree parser enforces is not validated here.
func parseDocument(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing store document: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parsing store document: no root element")
	}
	return doc, nil
}

// docHead returns the document's head section, creating it if absent.
func docHead(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if head := root.SelectElement(tagHead); head != nil {
		return head
	}
	return root.CreateElement(tagHead)
}

// docBody returns the document's body section, creating it if absent.
func docBody(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if body := root.SelectElement(tagBody); body != nil {
		return body
	}
	return root.CreateElement(tagBody)
}

// readMetadata decodes the head section's meta tags into a Metadata
// dictionary. Each content attribute holds a property-list encoded value;
// a value that fails to decode is kept as raw text and reported.
func (s *Store) readMetadata() types.Metadata {
	md := make(types.Metadata)
	for _, meta := range docHead(s.doc).SelectElements(tagMeta) {
		key := meta.SelectAttrValue(attrName, "")
		if key == "" {
			continue
		}
		content := meta.SelectAttrValue(attrContent, "")
		var v any
		if _, err := plist.Unmarshal([]byte(content), &v); err != nil {
			s.logger.Warn("malformed metadata value, keeping raw text",
				"key", key, "error", err)
			md[key] = content
			continue
		}
		md[key] = v
	}
	return md
}

// writeMetadataTag writes one metadata key into the head section,
// replacing any existing tag for the same key.
func (s *Store) writeMetadataTag(key string, value any) error {
	data, err := plist.Marshal(value, plist.GNUStepFormat)
	if err != nil {
		return fmt.Errorf("encoding metadata %q: %w", key, err)
	}
	head := docHead(s.doc)
	for _, meta := range head.SelectElements(tagMeta) {
		if meta.SelectAttrValue(attrName, "") == key {
			meta.CreateAttr(attrContent, string(data))
			return nil
		}
	}
	meta := head.CreateElement(tagMeta)
	meta.CreateAttr(attrName, key)
	meta.CreateAttr(attrContent, string(data))
	return nil
}

// removeMetadataTag deletes the meta tag for key, if present.
func (s *Store) removeMetadataTag(key string) {
	head := docHead(s.doc)
	for _, meta := range head.SelectElements(tagMeta) {
		if meta.SelectAttrValue(attrName, "") == key {
			head.RemoveChild(meta)
			return
		}
	}
}

// clearElement removes all child content, both character data and child
// elements, from el.
func clearElement(el *etree.Element) {
	for _, child := range el.ChildElements() {
		el.RemoveChild(child)
	}
	el.SetText("")
}
