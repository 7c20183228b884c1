package types

import "github.com/shopspring/decimal"

// Attribute value types determine how a cell is encoded and decoded.
const (
	TypeString  = "string"
	TypeDecimal = "decimal"
	TypeDouble  = "double"
	TypeFloat   = "float"
	TypeBoolean = "boolean"
	TypeDate    = "date"
	TypeBinary  = "binary"
	TypeInt16   = "int16"
	TypeInt32   = "int32"
	TypeInt64   = "int64"
)

// validValueTypes is the set of recognized attribute value types.
var validValueTypes = map[string]bool{
	TypeString:  true,
	TypeDecimal: true,
	TypeDouble:  true,
	TypeFloat:   true,
	TypeBoolean: true,
	TypeDate:    true,
	TypeBinary:  true,
	TypeInt16:   true,
	TypeInt32:   true,
	TypeInt64:   true,
}

// DefaultValue returns the type-based default value for a given value type.
// Date and binary default to nil (absent); numeric types default to zero.
// Returns ErrUnknownValueType if the type is not recognized.
func DefaultValue(valueType string) (any, error) {
	switch valueType {
	case TypeString:
		return "", nil
	case TypeDecimal:
		return decimal.Zero, nil
	case TypeDouble:
		return float64(0), nil
	case TypeFloat:
		return float32(0), nil
	case TypeBoolean:
		return false, nil
	case TypeDate:
		return nil, nil
	case TypeBinary:
		return nil, nil
	case TypeInt16:
		return int16(0), nil
	case TypeInt32:
		return int32(0), nil
	case TypeInt64:
		return int64(0), nil
	default:
		return nil, ErrUnknownValueType
	}
}

// IsValidValueType reports whether the given string is a recognized value type.
func IsValidValueType(vt string) bool {
	return validValueTypes[vt]
}
