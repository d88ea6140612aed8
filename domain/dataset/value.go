package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the scalar variant held by a Value.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindString
	KindNumber
)

// Value is a tagged scalar cell: a finite number, a string, or empty.
// The raw text is always retained so display, '%' detection and substring
// filtering operate on what the user actually uploaded.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// EmptyValue returns the empty cell.
func EmptyValue() Value {
	return Value{Kind: KindEmpty}
}

// StringValue wraps a non-numeric cell.
func StringValue(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// NumberValue wraps a finite number, keeping a canonical raw form.
func NumberValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return EmptyValue()
	}
	return Value{Kind: KindNumber, Num: f, Str: strconv.FormatFloat(f, 'f', -1, 64)}
}

// ParseValue coerces raw cell text into a tagged Value. Whitespace-only
// cells are empty; anything that parses as a finite float is a number.
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmptyValue()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Value{Kind: KindNumber, Num: f, Str: trimmed}
	}
	return Value{Kind: KindString, Str: trimmed}
}

// IsEmpty reports whether the cell holds no value.
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// Float returns the numeric form and whether the cell is numeric.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}

// String returns the display form of the cell.
func (v Value) String() string {
	if v.Kind == KindEmpty {
		return ""
	}
	return v.Str
}

// MarshalJSON encodes numbers as JSON numbers, strings as strings and
// empty cells as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindString:
		return json.Marshal(v.Str)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON restores the tagged form from stored row data.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = EmptyValue()
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = ParseValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = NumberValue(f)
	return nil
}
