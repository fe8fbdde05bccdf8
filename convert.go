package tank

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/inflect"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	intervalType = reflect.TypeOf(Interval{})
	bigIntType   = reflect.TypeOf(big.Int{})
	decimalType  = reflect.TypeOf(decimal.Decimal{})
	uuidType     = reflect.TypeOf(uuid.UUID{})
)

// prototypeFor maps a Go type onto its typed NULL Value. The directive is
// the tag's type= argument and disambiguates Go types that can stand for
// several database types, such as time.Time and int32.
func prototypeFor(t reflect.Type, directive string) (Value, error) {
	switch t {
	case timeType:
		switch directive {
		case "date":
			return Empty(KindDate), nil
		case "time":
			return Empty(KindTime), nil
		case "timestamptz":
			return Empty(KindTimestampTZ), nil
		case "", "timestamp":
			return Empty(KindTimestamp), nil
		}
	case durationType, intervalType:
		return Empty(KindInterval), nil
	case bigIntType:
		if directive == "uint128" {
			return Empty(KindUInt128), nil
		}
		return Empty(KindInt128), nil
	case decimalType:
		w, s, err := decimalDirective(directive)
		if err != nil {
			return Value{}, err
		}
		return DecimalType(w, s), nil
	case uuidType:
		return Empty(KindUUID), nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return Empty(KindBool), nil
	case reflect.Int8:
		return Empty(KindInt8), nil
	case reflect.Int16:
		return Empty(KindInt16), nil
	case reflect.Int32:
		if directive == "char" {
			return Empty(KindChar), nil
		}
		return Empty(KindInt32), nil
	case reflect.Int64, reflect.Int:
		return Empty(KindInt64), nil
	case reflect.Uint8:
		return Empty(KindUInt8), nil
	case reflect.Uint16:
		return Empty(KindUInt16), nil
	case reflect.Uint32:
		return Empty(KindUInt32), nil
	case reflect.Uint64, reflect.Uint:
		return Empty(KindUInt64), nil
	case reflect.Float32:
		return Empty(KindFloat32), nil
	case reflect.Float64:
		return Empty(KindFloat64), nil
	case reflect.String:
		if directive == "char" {
			return Empty(KindChar), nil
		}
		return Empty(KindVarchar), nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return Empty(KindBlob), nil
		}
		elem, err := prototypeFor(t.Elem(), directive)
		if err != nil {
			return Value{}, err
		}
		return ListType(elem), nil
	case reflect.Array:
		elem, err := prototypeFor(t.Elem(), directive)
		if err != nil {
			return Value{}, err
		}
		return ArrayType(elem, t.Len()), nil
	case reflect.Map:
		key, err := prototypeFor(t.Key(), "")
		if err != nil {
			return Value{}, err
		}
		val, err := prototypeFor(t.Elem(), directive)
		if err != nil {
			return Value{}, err
		}
		return MapType(key, val), nil
	case reflect.Pointer:
		return prototypeFor(t.Elem(), directive)
	case reflect.Struct:
		fields := make([]StructEntry, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			proto, err := prototypeFor(f.Type, "")
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, StructEntry{Name: inflect.Underscore(f.Name), Value: proto})
		}
		return StructType(fields...), nil
	}
	return Value{}, fmt.Errorf("unsupported column type %s", t)
}

// decimalDirective parses "decimal(w,s)", returning zeros when absent.
func decimalDirective(directive string) (w, s uint8, err error) {
	if directive == "" || directive == "decimal" {
		return 0, 0, nil
	}
	inner, ok := strings.CutPrefix(directive, "decimal(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return 0, 0, fmt.Errorf("malformed decimal directive %q", directive)
	}
	ws, ss, ok := strings.Cut(strings.TrimSuffix(inner, ")"), ",")
	if !ok {
		return 0, 0, fmt.Errorf("malformed decimal directive %q", directive)
	}
	wi, err := strconv.ParseUint(strings.TrimSpace(ws), 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed decimal width in %q", directive)
	}
	si, err := strconv.ParseUint(strings.TrimSpace(ss), 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed decimal scale in %q", directive)
	}
	return uint8(wi), uint8(si), nil
}

// reflectInt lowers any integer-kinded value into an int64, rejecting
// values outside [min, max].
func reflectInt(rv reflect.Value, min, max int64) (int64, bool) {
	var n int64
	switch {
	case rv.CanInt():
		n = rv.Int()
	case rv.CanUint():
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		n = int64(u)
	default:
		return 0, false
	}
	if n < min || n > max {
		return 0, false
	}
	return n, true
}

// reflectUint is the unsigned counterpart of reflectInt.
func reflectUint(rv reflect.Value, max uint64) (uint64, bool) {
	var n uint64
	switch {
	case rv.CanUint():
		n = rv.Uint()
	case rv.CanInt():
		i := rv.Int()
		if i < 0 {
			return 0, false
		}
		n = uint64(i)
	default:
		return 0, false
	}
	if n > max {
		return 0, false
	}
	return n, true
}

func reflectFloat(rv reflect.Value) (float64, bool) {
	switch {
	case rv.CanFloat():
		return rv.Float(), true
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	}
	return 0, false
}

// valueFrom wraps a Go value into a Value of the prototype's type. The Go
// kind only has to be compatible, not identical: any integer kind fits any
// integer column as long as the value survives the move. Mismatches come
// back as ConversionError, never as a reflect panic.
func valueFrom(rv reflect.Value, proto Value) (Value, error) {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return proto.AsEmpty(), nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return proto.AsEmpty(), nil
	}
	mismatch := func() (Value, error) {
		return Value{}, NewConversionError(describeSrc(rv.Interface()), proto.Kind().String())
	}
	switch proto.Kind() {
	case KindBool:
		if rv.Kind() != reflect.Bool {
			return mismatch()
		}
		return Bool(rv.Bool()), nil
	case KindInt8:
		n, ok := reflectInt(rv, math.MinInt8, math.MaxInt8)
		if !ok {
			return mismatch()
		}
		return Int8(int8(n)), nil
	case KindInt16:
		n, ok := reflectInt(rv, math.MinInt16, math.MaxInt16)
		if !ok {
			return mismatch()
		}
		return Int16(int16(n)), nil
	case KindInt32:
		n, ok := reflectInt(rv, math.MinInt32, math.MaxInt32)
		if !ok {
			return mismatch()
		}
		return Int32(int32(n)), nil
	case KindInt64:
		n, ok := reflectInt(rv, math.MinInt64, math.MaxInt64)
		if !ok {
			return mismatch()
		}
		return Int64(n), nil
	case KindUInt8:
		n, ok := reflectUint(rv, math.MaxUint8)
		if !ok {
			return mismatch()
		}
		return UInt8(uint8(n)), nil
	case KindUInt16:
		n, ok := reflectUint(rv, math.MaxUint16)
		if !ok {
			return mismatch()
		}
		return UInt16(uint16(n)), nil
	case KindUInt32:
		n, ok := reflectUint(rv, math.MaxUint32)
		if !ok {
			return mismatch()
		}
		return UInt32(uint32(n)), nil
	case KindUInt64:
		n, ok := reflectUint(rv, math.MaxUint64)
		if !ok {
			return mismatch()
		}
		return UInt64(n), nil
	case KindInt128, KindUInt128:
		var b *big.Int
		switch {
		case rv.Type() == bigIntType:
			i := rv.Interface().(big.Int)
			b = &i
		case rv.CanInt():
			b = big.NewInt(rv.Int())
		case rv.CanUint():
			b = new(big.Int).SetUint64(rv.Uint())
		default:
			return mismatch()
		}
		v := Int128(b)
		v.kind = proto.Kind()
		return v, nil
	case KindFloat32:
		f, ok := reflectFloat(rv)
		if !ok {
			return mismatch()
		}
		if f != 0 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
			return mismatch()
		}
		return Float32(float32(f)), nil
	case KindFloat64:
		f, ok := reflectFloat(rv)
		if !ok {
			return mismatch()
		}
		return Float64(f), nil
	case KindDecimal:
		switch {
		case rv.Type() == decimalType:
			return Decimal(rv.Interface().(decimal.Decimal), proto.Width(), proto.Scale()), nil
		case rv.Kind() == reflect.String:
			d, err := decimal.NewFromString(rv.String())
			if err != nil {
				return mismatch()
			}
			return Decimal(d, proto.Width(), proto.Scale()), nil
		}
		return mismatch()
	case KindChar:
		switch {
		case rv.Kind() == reflect.String:
			r := []rune(rv.String())
			if len(r) == 0 {
				return Empty(KindChar), nil
			}
			return Char(r[0]), nil
		case rv.CanInt():
			return Char(rune(rv.Int())), nil
		}
		return mismatch()
	case KindVarchar:
		if rv.Kind() != reflect.String {
			return mismatch()
		}
		return Varchar(rv.String()), nil
	case KindBlob:
		switch {
		case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
			return Blob(append([]byte(nil), rv.Bytes()...)), nil
		case rv.Kind() == reflect.String:
			return Blob([]byte(rv.String())), nil
		}
		return mismatch()
	case KindDate, KindTime, KindTimestamp, KindTimestampTZ:
		if rv.Type() != timeType {
			return mismatch()
		}
		ts := rv.Interface().(time.Time)
		switch proto.Kind() {
		case KindDate:
			return Date(ts), nil
		case KindTime:
			return TimeOfDay(ts), nil
		case KindTimestamp:
			return Timestamp(ts), nil
		default:
			return TimestampTZ(ts), nil
		}
	case KindInterval:
		switch rv.Type() {
		case durationType:
			return IntervalValue(FromDuration(time.Duration(rv.Int()))), nil
		case intervalType:
			return IntervalValue(rv.Interface().(Interval)), nil
		}
		return mismatch()
	case KindUUID:
		switch {
		case rv.Type() == uuidType:
			return UUID(rv.Interface().(uuid.UUID)), nil
		case rv.Kind() == reflect.String:
			u, err := uuid.Parse(rv.String())
			if err != nil {
				return mismatch()
			}
			return UUID(u), nil
		}
		return mismatch()
	case KindList, KindArray:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return mismatch()
		}
		items := make([]Value, rv.Len())
		for i := range items {
			v, err := valueFrom(rv.Index(i), proto.Elem())
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		if proto.Kind() == KindArray {
			return ArrayOf(proto.Elem(), proto.Length(), items...), nil
		}
		return ListOf(proto.Elem(), items...), nil
	case KindMap:
		if rv.Kind() != reflect.Map {
			return mismatch()
		}
		entries := make([]MapEntry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := valueFrom(iter.Key(), proto.Key())
			if err != nil {
				return Value{}, err
			}
			v, err := valueFrom(iter.Value(), proto.Val())
			if err != nil {
				return Value{}, err
			}
			entries = append(entries, MapEntry{Key: k, Value: v})
		}
		return MapOf(proto.Key(), proto.Val(), entries...), nil
	case KindStruct:
		if rv.Kind() != reflect.Struct {
			return mismatch()
		}
		fields := make([]StructEntry, 0, len(proto.Fields()))
		for _, pf := range proto.Fields() {
			fv := rv.FieldByNameFunc(func(name string) bool {
				return inflect.Underscore(name) == pf.Name
			})
			if !fv.IsValid() {
				return Value{}, fmt.Errorf("struct field %s not found", pf.Name)
			}
			v, err := valueFrom(fv, pf.Value)
			if err != nil {
				return Value{}, err
			}
			fields = append(fields, StructEntry{Name: pf.Name, Value: v})
		}
		return StructValue(fields...), nil
	}
	return mismatch()
}

// assignValue decodes a driver-supplied value into a struct field.
// Narrowing conversions that would lose information fail instead of
// wrapping.
func assignValue(fv reflect.Value, src any, col *ColumnDef) error {
	fail := func(err error) error {
		return NewDecodeError(col.Name(), fv.Type().String(), err)
	}
	if src == nil {
		fv.SetZero()
		return nil
	}
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return assignValue(fv.Elem(), src, col)
	}
	t := fv.Type()
	switch t {
	case timeType:
		ts, err := timeFromDriver(src, col.Value.Kind())
		if err != nil {
			return fail(err)
		}
		fv.Set(reflect.ValueOf(ts))
		return nil
	case durationType:
		iv, err := intervalFromDriver(src)
		if err != nil {
			return fail(err)
		}
		fv.SetInt(int64(iv.AsDuration(DaysInMonth)))
		return nil
	case intervalType:
		iv, err := intervalFromDriver(src)
		if err != nil {
			return fail(err)
		}
		fv.Set(reflect.ValueOf(iv))
		return nil
	case bigIntType:
		b, err := bigFromDriver(src)
		if err != nil {
			return fail(err)
		}
		fv.Set(reflect.ValueOf(*b))
		return nil
	case decimalType:
		d, err := decimalFromDriver(src)
		if err != nil {
			return fail(err)
		}
		fv.Set(reflect.ValueOf(d))
		return nil
	case uuidType:
		u, err := uuidFromDriver(src)
		if err != nil {
			return fail(err)
		}
		fv.Set(reflect.ValueOf(u))
		return nil
	}
	switch t.Kind() {
	case reflect.Bool:
		switch v := src.(type) {
		case bool:
			fv.SetBool(v)
		case int64:
			fv.SetBool(v != 0)
		default:
			return fail(NewConversionError(describeSrc(src), t.String()))
		}
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := int64FromDriver(src)
		if err != nil {
			return fail(err)
		}
		if fv.OverflowInt(n) {
			return fail(NewConversionError(strconv.FormatInt(n, 10), t.String()))
		}
		fv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := uint64FromDriver(src)
		if err != nil {
			return fail(err)
		}
		if fv.OverflowUint(n) {
			return fail(NewConversionError(strconv.FormatUint(n, 10), t.String()))
		}
		fv.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		switch v := src.(type) {
		case float64:
			if t.Kind() == reflect.Float32 && v != 0 && !math.IsInf(v, 0) &&
				math.Abs(v) > math.MaxFloat32 {
				return fail(NewConversionError(describeSrc(src), t.String()))
			}
			fv.SetFloat(v)
		case float32:
			fv.SetFloat(float64(v))
		case int64:
			fv.SetFloat(float64(v))
		default:
			return fail(NewConversionError(describeSrc(src), t.String()))
		}
		return nil
	case reflect.String:
		switch v := src.(type) {
		case string:
			fv.SetString(v)
		case []byte:
			fv.SetString(string(v))
		default:
			return fail(NewConversionError(describeSrc(src), t.String()))
		}
		return nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			switch v := src.(type) {
			case []byte:
				fv.SetBytes(append([]byte(nil), v...))
			case string:
				fv.SetBytes([]byte(v))
			default:
				return fail(NewConversionError(describeSrc(src), t.String()))
			}
			return nil
		}
		items, ok := src.([]any)
		if !ok {
			return fail(NewConversionError(describeSrc(src), t.String()))
		}
		out := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			if err := assignValue(out.Index(i), item, col); err != nil {
				return err
			}
		}
		fv.Set(out)
		return nil
	case reflect.Map:
		items, ok := src.(map[any]any)
		if !ok {
			return fail(NewConversionError(describeSrc(src), t.String()))
		}
		out := reflect.MakeMapWithSize(t, len(items))
		for k, v := range items {
			key := reflect.New(t.Key()).Elem()
			if err := assignValue(key, k, col); err != nil {
				return err
			}
			val := reflect.New(t.Elem()).Elem()
			if err := assignValue(val, v, col); err != nil {
				return err
			}
			out.SetMapIndex(key, val)
		}
		fv.Set(out)
		return nil
	case reflect.Struct:
		fields, ok := src.(map[string]any)
		if !ok {
			return fail(NewConversionError(describeSrc(src), t.String()))
		}
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			if v, ok := fields[inflect.Underscore(sf.Name)]; ok {
				if err := assignValue(fv.Field(i), v, col); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return fail(NewConversionError(describeSrc(src), t.String()))
}

func describeSrc(src any) string {
	return fmt.Sprintf("%T(%v)", src, src)
}

func int64FromDriver(src any) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, NewConversionError(describeSrc(src), "int64")
		}
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) >= math.MaxInt64 {
			return 0, NewConversionError(describeSrc(src), "int64")
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, NewConversionError(describeSrc(src), "int64")
		}
		return n, nil
	case []byte:
		return int64FromDriver(string(v))
	default:
		return 0, NewConversionError(describeSrc(src), "int64")
	}
}

func uint64FromDriver(src any) (uint64, error) {
	switch v := src.(type) {
	case uint64:
		return v, nil
	case uint32:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint:
		return uint64(v), nil
	default:
		n, err := int64FromDriver(src)
		if err != nil {
			return 0, NewConversionError(describeSrc(src), "uint64")
		}
		if n < 0 {
			return 0, NewConversionError(describeSrc(src), "uint64")
		}
		return uint64(n), nil
	}
}

func timeFromDriver(src any, kind Kind) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case string:
		switch kind {
		case KindDate:
			return ParseDate(v)
		case KindTime:
			return ParseTime(v)
		case KindTimestampTZ:
			return ParseTimestampTZ(v)
		default:
			return ParseTimestamp(v)
		}
	case []byte:
		return timeFromDriver(string(v), kind)
	default:
		return time.Time{}, NewConversionError(describeSrc(src), "time.Time")
	}
}

// intervalFromDriver also accepts driver-native interval structs carrying
// Months, Days and Micros fields, matched by name.
func intervalFromDriver(src any) (Interval, error) {
	switch v := src.(type) {
	case Interval:
		return v, nil
	case time.Duration:
		return FromDuration(v), nil
	case int64:
		return FromNanos(v), nil
	}
	rv := reflect.ValueOf(src)
	if rv.Kind() == reflect.Struct {
		months := rv.FieldByName("Months")
		days := rv.FieldByName("Days")
		micros := rv.FieldByName("Micros")
		if months.IsValid() && days.IsValid() && micros.IsValid() {
			return Interval{
				Months: months.Int(),
				Days:   days.Int(),
				Nanos:  micros.Int() * 1_000,
			}, nil
		}
	}
	return Interval{}, NewConversionError(describeSrc(src), "tank.Interval")
}

func bigFromDriver(src any) (*big.Int, error) {
	switch v := src.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case int64:
		return big.NewInt(v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case string:
		b, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, NewConversionError(describeSrc(src), "big.Int")
		}
		return b, nil
	case []byte:
		return bigFromDriver(string(v))
	default:
		return nil, NewConversionError(describeSrc(src), "big.Int")
	}
}

func decimalFromDriver(src any) (decimal.Decimal, error) {
	switch v := src.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, NewConversionError(describeSrc(src), "decimal.Decimal")
		}
		return d, nil
	case []byte:
		return decimalFromDriver(string(v))
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Decimal{}, NewConversionError(describeSrc(src), "decimal.Decimal")
	}
}

func uuidFromDriver(src any) (uuid.UUID, error) {
	switch v := src.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		u, err := uuid.Parse(v)
		if err != nil {
			return uuid.UUID{}, NewConversionError(describeSrc(src), "uuid.UUID")
		}
		return u, nil
	case []byte:
		if len(v) == 16 {
			u, err := uuid.FromBytes(v)
			if err == nil {
				return u, nil
			}
		}
		return uuidFromDriver(string(v))
	case [16]byte:
		return uuid.UUID(v), nil
	default:
		return uuid.UUID{}, NewConversionError(describeSrc(src), "uuid.UUID")
	}
}

// driverArg lowers a Value into an argument database/sql understands.
// Composite values cannot be bound and must be inlined instead.
func driverArg(v Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch v.Kind() {
	case KindBool:
		return v.data.(bool), nil
	case KindInt8:
		return int64(v.data.(int8)), nil
	case KindInt16:
		return int64(v.data.(int16)), nil
	case KindInt32:
		return int64(v.data.(int32)), nil
	case KindInt64:
		return v.data.(int64), nil
	case KindUInt8:
		return int64(v.data.(uint8)), nil
	case KindUInt16:
		return int64(v.data.(uint16)), nil
	case KindUInt32:
		return int64(v.data.(uint32)), nil
	case KindUInt64:
		return v.data.(uint64), nil
	case KindInt128, KindUInt128:
		return v.data.(*big.Int).String(), nil
	case KindFloat32:
		return float64(v.data.(float32)), nil
	case KindFloat64:
		return v.data.(float64), nil
	case KindDecimal:
		return v.data.(decimal.Decimal).String(), nil
	case KindChar:
		return string(v.data.(rune)), nil
	case KindVarchar:
		return v.data.(string), nil
	case KindBlob:
		return v.data.([]byte), nil
	case KindDate, KindTime, KindTimestamp, KindTimestampTZ:
		return v.data.(time.Time), nil
	case KindInterval:
		var buf strings.Builder
		NewWriter().WriteValueInterval(nil, &buf, v.data.(Interval))
		return strings.Trim(strings.TrimPrefix(buf.String(), "INTERVAL "), "'"), nil
	case KindUUID:
		return v.data.(uuid.UUID).String(), nil
	default:
		return nil, NewBindError(-1, NewConversionError(v.Kind().String(), "driver argument"))
	}
}
