// This file implements the type coercion table: the closed mapping from a
// declared attribute type and a cell to a typed value and back. Decode
// anomalies are recoverable; they are reported and replaced by a
// type-appropriate substitute so the rest of the document still loads.
package htmldoc

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// decodeCell converts a cell's content to a typed value per the
// attribute's declared type. A nil result means the value is absent.
func (s *Store) decodeCell(attr *types.Attribute, cell *etree.Element) any {
	if attr.Type == types.TypeBinary {
		return s.decodeBinary(attr, cell)
	}

	text := strings.TrimSpace(cell.Text())
	if attr.Type == types.TypeString || !types.IsValidValueType(attr.Type) {
		// Passthrough text for strings and undeclared type tags.
		return cell.Text()
	}
	if text == "" {
		return nil
	}

	switch attr.Type {
	case types.TypeDecimal:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return s.decodeFallback(attr, text, err)
		}
		return d
	case types.TypeDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return s.decodeFallback(attr, text, err)
		}
		return f
	case types.TypeFloat:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return s.decodeFallback(attr, text, err)
		}
		return float32(f)
	case types.TypeBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return s.decodeFallback(attr, text, err)
		}
		return b
	case types.TypeDate:
		ts, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return s.decodeFallback(attr, text, err)
		}
		return ts
	case types.TypeInt16:
		n, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return s.decodeFallback(attr, text, err)
		}
		return int16(n)
	case types.TypeInt32:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return s.decodeFallback(attr, text, err)
		}
		return int32(n)
	case types.TypeInt64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return s.decodeFallback(attr, text, err)
		}
		return n
	default:
		return cell.Text()
	}
}

// decodeFallback reports a malformed cell and substitutes the attribute's
// declared default, falling back to the type-based default.
func (s *Store) decodeFallback(attr *types.Attribute, text string, err error) any {
	s.logger.Warn("malformed cell, substituting default",
		"attribute", attr.Name, "type", attr.Type, "text", text, "error", err)
	if attr.Default != nil {
		return attr.Default
	}
	def, derr := types.DefaultValue(attr.Type)
	if derr != nil {
		return nil
	}
	return def
}

// decodeBinary decodes a binary cell. A cell whose sole child is a link
// points at externally stored bytes; an unreachable link is reported and
// yields an absent value, never a failed load. Anything else is inline
// base64 content.
func (s *Store) decodeBinary(attr *types.Attribute, cell *etree.Element) any {
	if link := cellLink(cell); link != nil {
		ref := link.SelectAttrValue(attrHref, "")
		data, err := s.blobs.fetch(ref)
		if err != nil {
			s.logger.Warn("binary link unreachable",
				"attribute", attr.Name, "href", ref, "error", err)
			return nil
		}
		return data
	}
	text := strings.TrimSpace(cell.Text())
	if text == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		s.logger.Warn("malformed inline binary cell",
			"attribute", attr.Name, "error", err)
		return nil
	}
	return data
}

// encodeCell writes a typed value into a cell, replacing prior content
// except where the binary write-through rule applies.
func (s *Store) encodeCell(attr *types.Attribute, value any, cell *etree.Element) error {
	if attr.Type == types.TypeBinary {
		return s.encodeBinary(attr, value, cell)
	}
	text, err := encodeScalar(attr, value)
	if err != nil {
		return err
	}
	clearElement(cell)
	cell.SetText(text)
	return nil
}

// encodeScalar renders a typed value as cell text. A nil value renders as
// an empty cell.
func encodeScalar(attr *types.Attribute, value any) (string, error) {
	if value == nil {
		return "", nil
	}
	switch attr.Type {
	case types.TypeDecimal:
		d, ok := value.(decimal.Decimal)
		if !ok {
			return "", encodeTypeError(attr, value)
		}
		return d.String(), nil
	case types.TypeDouble:
		f, ok := toFloat64(value)
		if !ok {
			return "", encodeTypeError(attr, value)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case types.TypeFloat:
		f, ok := toFloat64(value)
		if !ok {
			return "", encodeTypeError(attr, value)
		}
		return strconv.FormatFloat(f, 'g', -1, 32), nil
	case types.TypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return "", encodeTypeError(attr, value)
		}
		return strconv.FormatBool(b), nil
	case types.TypeDate:
		ts, ok := value.(time.Time)
		if !ok {
			return "", encodeTypeError(attr, value)
		}
		return ts.Format(time.RFC3339), nil
	case types.TypeInt16, types.TypeInt32, types.TypeInt64:
		n, ok := toInt64(value)
		if !ok {
			return "", encodeTypeError(attr, value)
		}
		return strconv.FormatInt(n, 10), nil
	default:
		return fmt.Sprint(value), nil
	}
}

func encodeTypeError(attr *types.Attribute, value any) error {
	return fmt.Errorf("%w: attribute %q (%s) cannot hold %T",
		types.ErrInvalidData, attr.Name, attr.Type, value)
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// encodeBinary writes a binary value. When the cell already links to an
// external location and that location accepts the new bytes, the write
// goes through and the link stays, keeping large payloads out of the
// document. Otherwise the cell falls back to inline base64 content.
func (s *Store) encodeBinary(attr *types.Attribute, value any, cell *etree.Element) error {
	if value == nil {
		clearElement(cell)
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		return encodeTypeError(attr, value)
	}
	if link := cellLink(cell); link != nil {
		ref := link.SelectAttrValue(attrHref, "")
		err := s.blobs.store(ref, data)
		if err == nil {
			return nil
		}
		s.logger.Warn("binary write-through failed, inlining value",
			"attribute", attr.Name, "href", ref, "error", err)
	}
	clearElement(cell)
	cell.SetText(base64.StdEncoding.EncodeToString(data))
	return nil
}

// cellLink returns the cell's link child when the link is the cell's sole
// child element, nil otherwise.
func cellLink(cell *etree.Element) *etree.Element {
	children := cell.ChildElements()
	if len(children) != 1 || children[0].Tag != tagLink {
		return nil
	}
	return children[0]
}
