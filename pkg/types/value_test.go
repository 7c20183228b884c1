package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultValue(t *testing.T) {
	cases := []struct {
		valueType string
		want      any
	}{
		{TypeString, ""},
		{TypeDouble, float64(0)},
		{TypeFloat, float32(0)},
		{TypeBoolean, false},
		{TypeDate, nil},
		{TypeBinary, nil},
		{TypeInt16, int16(0)},
		{TypeInt32, int32(0)},
		{TypeInt64, int64(0)},
	}
	for _, tc := range cases {
		got, err := DefaultValue(tc.valueType)
		if err != nil {
			t.Errorf("DefaultValue(%q) returned error: %v", tc.valueType, err)
			continue
		}
		if got != tc.want {
			t.Errorf("DefaultValue(%q) = %v, want %v", tc.valueType, got, tc.want)
		}
	}
}

func TestDefaultValue_Decimal(t *testing.T) {
	got, err := DefaultValue(TypeDecimal)
	if err != nil {
		t.Fatalf("DefaultValue(decimal) returned error: %v", err)
	}
	d, ok := got.(decimal.Decimal)
	if !ok {
		t.Fatalf("DefaultValue(decimal) = %T, want decimal.Decimal", got)
	}
	if !d.IsZero() {
		t.Errorf("DefaultValue(decimal) = %s, want 0", d)
	}
}

func TestDefaultValue_Unknown(t *testing.T) {
	_, err := DefaultValue("complex")
	if err != ErrUnknownValueType {
		t.Errorf("expected ErrUnknownValueType, got %v", err)
	}
}

func TestIsValidValueType(t *testing.T) {
	if !IsValidValueType(TypeDate) {
		t.Error("date should be a valid value type")
	}
	if IsValidValueType("tuple") {
		t.Error("tuple should not be a valid value type")
	}
}
