package tank

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind enumerates the database types a Value can carry.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt128
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindUInt128
	KindFloat32
	KindFloat64
	KindDecimal
	KindChar
	KindVarchar
	KindBlob
	KindDate
	KindTime
	KindTimestamp
	KindTimestampTZ
	KindInterval
	KindUUID
	KindList
	KindArray
	KindMap
	KindStruct
	KindUnknown
)

var kindNames = [...]string{
	KindNull:        "NULL",
	KindBool:        "BOOLEAN",
	KindInt8:        "TINYINT",
	KindInt16:       "SMALLINT",
	KindInt32:       "INTEGER",
	KindInt64:       "BIGINT",
	KindInt128:      "HUGEINT",
	KindUInt8:       "UTINYINT",
	KindUInt16:      "USMALLINT",
	KindUInt32:      "UINTEGER",
	KindUInt64:      "UBIGINT",
	KindUInt128:     "UHUGEINT",
	KindFloat32:     "FLOAT",
	KindFloat64:     "DOUBLE",
	KindDecimal:     "DECIMAL",
	KindChar:        "CHAR",
	KindVarchar:     "VARCHAR",
	KindBlob:        "BLOB",
	KindDate:        "DATE",
	KindTime:        "TIME",
	KindTimestamp:   "TIMESTAMP",
	KindTimestampTZ: "TIMESTAMP WITH TIME ZONE",
	KindInterval:    "INTERVAL",
	KindUUID:        "UUID",
	KindList:        "LIST",
	KindArray:       "ARRAY",
	KindMap:         "MAP",
	KindStruct:      "STRUCT",
	KindUnknown:     "UNKNOWN",
}

// String returns the generic SQL name of the kind. Dialects override the
// actual column type spelling in their writers.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// MapEntry is one key/value pair of a map Value. Entries are kept sorted by
// the rendered key so equal maps render identically.
type MapEntry struct {
	Key   Value
	Value Value
}

// StructEntry is one named member of a struct Value.
type StructEntry struct {
	Name  string
	Value Value
}

// Value is a dynamically typed database value. A Value always knows its
// type, even when it holds NULL: Empty(KindInt32) is a typed NULL that
// still answers type questions, which is what lets a nil column keep its
// CAST target and its DDL type. data is nil for such typed NULLs.
//
// elem, key and val describe the element types of lists, arrays and maps;
// fields describes struct members. width and scale qualify decimals,
// length qualifies fixed arrays (0 means unspecified).
type Value struct {
	kind   Kind
	data   any
	elem   *Value
	key    *Value
	val    *Value
	fields []StructEntry
	width  uint8
	scale  uint8
	length int
}

// Null is the untyped NULL value.
func Null() Value { return Value{kind: KindNull} }

// Empty returns a typed NULL of the given scalar kind.
func Empty(k Kind) Value { return Value{kind: k} }

func Bool(v bool) Value       { return Value{kind: KindBool, data: v} }
func Int8(v int8) Value       { return Value{kind: KindInt8, data: v} }
func Int16(v int16) Value     { return Value{kind: KindInt16, data: v} }
func Int32(v int32) Value     { return Value{kind: KindInt32, data: v} }
func Int64(v int64) Value     { return Value{kind: KindInt64, data: v} }
func UInt8(v uint8) Value     { return Value{kind: KindUInt8, data: v} }
func UInt16(v uint16) Value   { return Value{kind: KindUInt16, data: v} }
func UInt32(v uint32) Value   { return Value{kind: KindUInt32, data: v} }
func UInt64(v uint64) Value   { return Value{kind: KindUInt64, data: v} }
func Float32(v float32) Value { return Value{kind: KindFloat32, data: v} }
func Float64(v float64) Value { return Value{kind: KindFloat64, data: v} }

// Int128 wraps a signed 128-bit integer. The big.Int is copied.
func Int128(v *big.Int) Value {
	return Value{kind: KindInt128, data: new(big.Int).Set(v)}
}

// UInt128 wraps an unsigned 128-bit integer. The big.Int is copied.
func UInt128(v *big.Int) Value {
	return Value{kind: KindUInt128, data: new(big.Int).Set(v)}
}

// Decimal wraps a fixed-point number with the given width and scale.
// Zero width means the column does not constrain precision.
func Decimal(v decimal.Decimal, width, scale uint8) Value {
	return Value{kind: KindDecimal, data: v, width: width, scale: scale}
}

// DecimalType is a typed NULL decimal carrying width and scale.
func DecimalType(width, scale uint8) Value {
	return Value{kind: KindDecimal, width: width, scale: scale}
}

func Char(v rune) Value      { return Value{kind: KindChar, data: v} }
func Varchar(v string) Value { return Value{kind: KindVarchar, data: v} }
func Blob(v []byte) Value    { return Value{kind: KindBlob, data: v} }

// Date keeps the calendar date of v, discarding clock and zone.
func Date(v time.Time) Value {
	y, m, d := v.Date()
	return Value{kind: KindDate, data: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// TimeOfDay keeps the wall clock of v, discarding date and zone.
func TimeOfDay(v time.Time) Value {
	h, mi, s := v.Clock()
	return Value{kind: KindTime, data: time.Date(1, 1, 1, h, mi, s, v.Nanosecond(), time.UTC)}
}

// Timestamp keeps the wall-clock instant of v without a zone.
func Timestamp(v time.Time) Value {
	y, m, d := v.Date()
	h, mi, s := v.Clock()
	return Value{kind: KindTimestamp, data: time.Date(y, m, d, h, mi, s, v.Nanosecond(), time.UTC)}
}

// TimestampTZ keeps v as-is, offset included.
func TimestampTZ(v time.Time) Value {
	return Value{kind: KindTimestampTZ, data: v}
}

// IntervalValue wraps a calendar interval.
func IntervalValue(v Interval) Value { return Value{kind: KindInterval, data: v} }

// UUID wraps a universally unique identifier.
func UUID(v uuid.UUID) Value { return Value{kind: KindUUID, data: v} }

// ListOf builds a list value. elem is the declared element type; elements
// must be of that type or typed NULLs of it.
func ListOf(elem Value, items ...Value) Value {
	e := elem.AsEmpty()
	return Value{kind: KindList, data: items, elem: &e}
}

// ListType is a typed NULL list with the given element type.
func ListType(elem Value) Value {
	e := elem.AsEmpty()
	return Value{kind: KindList, elem: &e}
}

// ArrayOf builds a fixed-length array value. length 0 leaves the bound
// unspecified in DDL.
func ArrayOf(elem Value, length int, items ...Value) Value {
	e := elem.AsEmpty()
	return Value{kind: KindArray, data: items, elem: &e, length: length}
}

// ArrayType is a typed NULL array with the given element type and length.
func ArrayType(elem Value, length int) Value {
	e := elem.AsEmpty()
	return Value{kind: KindArray, elem: &e, length: length}
}

// MapOf builds a map value. Entries are sorted by key so rendering is
// deterministic regardless of insertion order.
func MapOf(key, val Value, entries ...MapEntry) Value {
	k, v := key.AsEmpty(), val.AsEmpty()
	sorted := make([]MapEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key.less(sorted[j].Key)
	})
	return Value{kind: KindMap, data: sorted, key: &k, val: &v}
}

// MapType is a typed NULL map with the given key and value types.
func MapType(key, val Value) Value {
	k, v := key.AsEmpty(), val.AsEmpty()
	return Value{kind: KindMap, key: &k, val: &v}
}

// StructValue builds a struct value from named members. Member order is
// the declaration order and is preserved.
func StructValue(entries ...StructEntry) Value {
	fields := make([]StructEntry, len(entries))
	copy(fields, entries)
	return Value{kind: KindStruct, data: true, fields: fields}
}

// StructType is a typed NULL struct with the given member types.
func StructType(entries ...StructEntry) Value {
	fields := make([]StructEntry, len(entries))
	for i, e := range entries {
		fields[i] = StructEntry{Name: e.Name, Value: e.Value.AsEmpty()}
	}
	return Value{kind: KindStruct, fields: fields}
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value holds no payload. A typed NULL is still
// null.
func (v Value) IsNull() bool { return v.data == nil }

// Width returns the decimal width, 0 when unconstrained.
func (v Value) Width() uint8 { return v.width }

// Scale returns the decimal scale.
func (v Value) Scale() uint8 { return v.scale }

// Length returns the array length bound, 0 when unspecified.
func (v Value) Length() int { return v.length }

// Elem returns the element type of a list or array value.
func (v Value) Elem() Value {
	if v.elem == nil {
		return Value{kind: KindUnknown}
	}
	return *v.elem
}

// Key returns the key type of a map value.
func (v Value) Key() Value {
	if v.key == nil {
		return Value{kind: KindUnknown}
	}
	return *v.key
}

// Val returns the value type of a map value.
func (v Value) Val() Value {
	if v.val == nil {
		return Value{kind: KindUnknown}
	}
	return *v.val
}

// Fields returns the member types of a struct value.
func (v Value) Fields() []StructEntry { return v.fields }

// Items returns the elements of a list or array value, nil when the value
// is a typed NULL.
func (v Value) Items() []Value {
	if items, ok := v.data.([]Value); ok {
		return items
	}
	return nil
}

// Entries returns the pairs of a map value, sorted by key.
func (v Value) Entries() []MapEntry {
	if entries, ok := v.data.([]MapEntry); ok {
		return entries
	}
	return nil
}

// Payload returns the raw scalar payload, nil for NULLs.
func (v Value) Payload() any { return v.data }

// AsEmpty strips the payload, keeping the full type description. The result
// is the typed NULL of v's type.
func (v Value) AsEmpty() Value {
	v.data = nil
	if v.kind == KindStruct {
		fields := make([]StructEntry, len(v.fields))
		for i, e := range v.fields {
			fields[i] = StructEntry{Name: e.Name, Value: e.Value.AsEmpty()}
		}
		v.fields = fields
	}
	return v
}

// SameType reports whether two values describe the same database type,
// payloads ignored. Element, key, value and member types are compared
// recursively; decimal width/scale and array length must match when both
// sides specify them.
func (v Value) SameType(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindDecimal:
		if v.width != 0 && o.width != 0 && (v.width != o.width || v.scale != o.scale) {
			return false
		}
	case KindArray:
		if v.length != 0 && o.length != 0 && v.length != o.length {
			return false
		}
		return v.Elem().SameType(o.Elem())
	case KindList:
		return v.Elem().SameType(o.Elem())
	case KindMap:
		return v.Key().SameType(o.Key()) && v.Val().SameType(o.Val())
	case KindStruct:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for i := range v.fields {
			if v.fields[i].Name != o.fields[i].Name ||
				!v.fields[i].Value.SameType(o.fields[i].Value) {
				return false
			}
		}
	}
	return true
}

// Equal reports deep equality of type and payload. Two typed NULLs of the
// same type are equal.
func (v Value) Equal(o Value) bool {
	if !v.SameType(o) {
		return false
	}
	if v.IsNull() || o.IsNull() {
		return v.IsNull() == o.IsNull()
	}
	switch v.kind {
	case KindInt128, KindUInt128:
		return v.data.(*big.Int).Cmp(o.data.(*big.Int)) == 0
	case KindDecimal:
		return v.data.(decimal.Decimal).Equal(o.data.(decimal.Decimal))
	case KindBlob:
		return bytes.Equal(v.data.([]byte), o.data.([]byte))
	case KindDate, KindTime, KindTimestamp, KindTimestampTZ:
		return v.data.(time.Time).Equal(o.data.(time.Time))
	case KindInterval:
		return v.data.(Interval).Equal(o.data.(Interval))
	case KindList, KindArray:
		a, b := v.Items(), o.Items()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindMap:
		a, b := v.Entries(), o.Entries()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Key.Equal(b[i].Key) || !a[i].Value.Equal(b[i].Value) {
				return false
			}
		}
		return true
	case KindStruct:
		for i := range v.fields {
			if !v.fields[i].Value.Equal(o.fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return v.data == o.data
	}
}

// less gives maps a stable key order. It falls back to the formatted
// payload, which is total for the scalar kinds maps key on.
func (v Value) less(o Value) bool {
	return fmt.Sprint(v.data) < fmt.Sprint(o.data)
}
