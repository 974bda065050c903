package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the storage type of a cell value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindDate
)

// Value is a tagged cell value. Exactly one of the payload fields is
// meaningful, selected by Kind. The zero Value is null.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Str   string
	Bool  bool
	Date  time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// IntValue wraps an integer cell.
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }

// FloatValue wraps a float cell. Non-finite floats collapse to null so they
// can never reach a serialized report.
func FloatValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{Kind: KindFloat, Float: f}
}

// StringValue wraps a text cell.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue wraps a boolean cell.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// DateValue wraps a date cell.
func DateValue(t time.Time) Value { return Value{Kind: KindDate, Date: t} }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Numeric returns the value as a float64 when it carries a number.
func (v Value) Numeric() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Text returns the string payload for string-kinded values.
func (v Value) Text() (string, bool) {
	if v.Kind == KindString {
		return v.Str, true
	}
	return "", false
}

// Equal reports value equality for duplicate comparison. Null equals null,
// and integers compare equal to floats carrying the same number.
func (v Value) Equal(o Value) bool {
	if v.Kind == KindNull || o.Kind == KindNull {
		return v.Kind == o.Kind
	}
	if a, ok := v.Numeric(); ok {
		if b, okb := o.Numeric(); okb {
			return a == b
		}
		return false
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindBool:
		return v.Bool == o.Bool
	case KindDate:
		return v.Date.Equal(o.Date)
	}
	return false
}

// Signature returns a canonical string for grouping, unique per distinct
// value and stable across runs. Numerics share one namespace so 1 and 1.0
// group together, mirroring Equal.
func (v Value) Signature() string {
	switch v.Kind {
	case KindNull:
		return "\x00"
	case KindInt:
		return "n:" + strconv.FormatFloat(float64(v.Int), 'g', -1, 64)
	case KindFloat:
		return "n:" + strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindString:
		return "s:" + v.Str
	case KindBool:
		return "b:" + strconv.FormatBool(v.Bool)
	case KindDate:
		return "d:" + v.Date.UTC().Format(time.RFC3339Nano)
	}
	return ""
}

// String renders the value for display and rule examples.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindDate:
		return v.Date.Format("2006-01-02")
	}
	return ""
}

// UnmarshalJSON rebuilds a value from its native JSON form. Dates come back
// as strings; that is fine for stored reports, which are compared and
// served at the JSON level.
func (v *Value) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*v = Null()
		return nil
	case s == "true":
		*v = BoolValue(true)
		return nil
	case s == "false":
		*v = BoolValue(false)
		return nil
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = StringValue(str)
		return nil
	default:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			*v = IntValue(i)
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*v = FloatValue(f)
		return nil
	}
}

// MarshalJSON emits the native JSON type for the payload. Null marshals as
// an explicit null; FloatValue already rejects NaN and ±Inf, so no
// non-finite number can be produced here.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInt:
		return json.Marshal(v.Int)
	case KindFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.Float)
	case KindString:
		return json.Marshal(v.Str)
	case KindBool:
		return json.Marshal(v.Bool)
	case KindDate:
		return json.Marshal(v.Date.Format("2006-01-02"))
	default:
		return []byte("null"), nil
	}
}
