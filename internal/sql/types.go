package sql

import (
	"fmt"
	"strconv"
	"strings"
)

// DataType represents the declared type of a column.
type DataType int

const (
	TypeInt DataType = iota + 1
	TypeVarchar
	TypeBool
	TypeDatetime
	TypeText
)

func (t DataType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeVarchar:
		return "VARCHAR"
	case TypeBool:
		return "BOOL"
	case TypeDatetime:
		return "DATETIME"
	case TypeText:
		return "TEXT"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// TypeFromName maps a type name from a CREATE TABLE statement to a DataType.
func TypeFromName(name string) (DataType, bool) {
	switch strings.ToUpper(name) {
	case "INT", "INTEGER":
		return TypeInt, true
	case "VARCHAR":
		return TypeVarchar, true
	case "BOOL", "BOOLEAN":
		return TypeBool, true
	case "DATETIME":
		return TypeDatetime, true
	case "TEXT":
		return TypeText, true
	default:
		return 0, false
	}
}

// stringBacked reports whether values of t are stored as strings and compared
// lexicographically. DATETIME relies on its fixed-width format for this to be
// order-correct.
func stringBacked(t DataType) bool {
	return t == TypeVarchar || t == TypeDatetime || t == TypeText
}

// Value is a single cell: a scalar tagged with its column's DataType.
// Only the field matching Type is meaningful; the others stay at their zero
// values so Value is usable as a map key (index entries rely on this).
type Value struct {
	Type DataType
	Null bool

	I64 int64  // TypeInt
	S   string // TypeVarchar, TypeDatetime, TypeText
	B   bool   // TypeBool
}

func IntValue(i int64) Value               { return Value{Type: TypeInt, I64: i} }
func BoolValue(b bool) Value               { return Value{Type: TypeBool, B: b} }
func StringValue(t DataType, s string) Value { return Value{Type: t, S: s} }
func NullValue(t DataType) Value           { return Value{Type: t, Null: true} }

// Compare orders v against o: -1, 0 or 1. NULL sorts before any non-NULL
// value and two NULLs are equal. Comparing values whose types are not in the
// same family (numeric, string-backed, boolean) is an error, never a silent
// mismatch.
func (v Value) Compare(o Value) (int, error) {
	if v.Null || o.Null {
		switch {
		case v.Null && o.Null:
			return 0, nil
		case v.Null:
			return -1, nil
		default:
			return 1, nil
		}
	}

	switch {
	case v.Type == TypeInt && o.Type == TypeInt:
		switch {
		case v.I64 < o.I64:
			return -1, nil
		case v.I64 > o.I64:
			return 1, nil
		default:
			return 0, nil
		}
	case stringBacked(v.Type) && stringBacked(o.Type):
		return strings.Compare(v.S, o.S), nil
	case v.Type == TypeBool && o.Type == TypeBool:
		// false < true
		switch {
		case v.B == o.B:
			return 0, nil
		case !v.B:
			return -1, nil
		default:
			return 1, nil
		}
	default:
		return 0, fmt.Errorf("cannot compare %s to %s", v.Type, o.Type)
	}
}

// Retag converts v to another type within the same family. It is used when an
// index keyed by one string-backed type is probed with a value of another
// (e.g. a VARCHAR join column against a TEXT one).
func (v Value) Retag(t DataType) (Value, bool) {
	if v.Type == t {
		return v, true
	}
	if stringBacked(v.Type) && stringBacked(t) {
		v.Type = t
		return v, true
	}
	return Value{}, false
}

func (v Value) String() string {
	if v.Null {
		return "NULL"
	}
	switch v.Type {
	case TypeInt:
		return strconv.FormatInt(v.I64, 10)
	case TypeBool:
		return strconv.FormatBool(v.B)
	default:
		return "'" + v.S + "'"
	}
}

// LiteralKind tags a literal as it appeared in the statement text, before any
// column type is known.
type LiteralKind int

const (
	LitInt LiteralKind = iota + 1
	LitString
	LitBool
	LitNull
)

// Literal is a constant from the statement text. It is coerced to a concrete
// Value only at execution time, when the target column's type is known.
type Literal struct {
	Kind LiteralKind

	I64 int64
	S   string
	B   bool
}

// Coerce converts the literal to a Value of the declared column type.
//
// Rules follow the engine's permissive heritage: numeric string literals
// coerce to INT, integer literals render into the string-backed types, and
// DATETIME accepts any string without format validation.
func (l Literal) Coerce(t DataType) (Value, error) {
	if l.Kind == LitNull {
		return NullValue(t), nil
	}

	switch t {
	case TypeInt:
		switch l.Kind {
		case LitInt:
			return IntValue(l.I64), nil
		case LitString:
			i, err := strconv.ParseInt(strings.TrimSpace(l.S), 10, 64)
			if err != nil {
				return Value{}, fmt.Errorf("non-numeric literal %q for INT", l.S)
			}
			return IntValue(i), nil
		}
	case TypeVarchar, TypeDatetime, TypeText:
		switch l.Kind {
		case LitString:
			return StringValue(t, l.S), nil
		case LitInt:
			return StringValue(t, strconv.FormatInt(l.I64, 10)), nil
		}
	case TypeBool:
		if l.Kind == LitBool {
			return BoolValue(l.B), nil
		}
	}
	return Value{}, fmt.Errorf("literal %s does not coerce to %s", l, t)
}

func (l Literal) String() string {
	switch l.Kind {
	case LitInt:
		return strconv.FormatInt(l.I64, 10)
	case LitString:
		return "'" + l.S + "'"
	case LitBool:
		return strconv.FormatBool(l.B)
	case LitNull:
		return "NULL"
	default:
		return fmt.Sprintf("Literal(%d)", int(l.Kind))
	}
}
