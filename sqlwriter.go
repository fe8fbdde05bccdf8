package tank

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SqlWriter turns semantic constructs into concrete SQL text. The base
// Writer implements the whole interface with portable spellings close to
// PostgreSQL and DuckDB; dialects embed Writer and override the methods
// whose spelling differs.
type SqlWriter interface {
	// AliasDeclaration reports whether the current fragment is one where a
	// table alias is being declared rather than referenced.
	AliasDeclaration(ctx *Context) bool

	WriteEscaped(ctx *Context, out *strings.Builder, value string, search rune, replace string)
	WriteIdentifierQuoted(ctx *Context, out *strings.Builder, value string)
	WriteTableRef(ctx *Context, out *strings.Builder, value *TableRef)
	WriteColumnRef(ctx *Context, out *strings.Builder, value *ColumnRef)
	WriteColumnType(ctx *Context, out *strings.Builder, value Value)

	WriteValue(ctx *Context, out *strings.Builder, value Value)
	WriteValueNull(ctx *Context, out *strings.Builder)
	WriteValueBool(ctx *Context, out *strings.Builder, value bool)
	WriteValueInfinity(ctx *Context, out *strings.Builder, negative bool)
	WriteValueNaN(ctx *Context, out *strings.Builder)
	WriteValueString(ctx *Context, out *strings.Builder, value string)
	WriteValueBlob(ctx *Context, out *strings.Builder, value []byte)
	WriteValueDate(ctx *Context, out *strings.Builder, value time.Time, timestamp bool)
	WriteValueTime(ctx *Context, out *strings.Builder, value time.Time, timestamp bool)
	WriteValueTimestamp(ctx *Context, out *strings.Builder, value time.Time)
	WriteValueTimestampTZ(ctx *Context, out *strings.Builder, value time.Time)
	WriteValueInterval(ctx *Context, out *strings.Builder, value Interval)
	WriteValueList(ctx *Context, out *strings.Builder, items []Value, typ Value)
	WriteValueMap(ctx *Context, out *strings.Builder, entries []MapEntry)
	WriteValueStruct(ctx *Context, out *strings.Builder, fields []StructEntry)

	IntervalUnits() []IntervalUnit
	UnaryOpPrecedence(op UnaryOp) int
	BinaryOpPrecedence(op BinaryOp) int

	WriteExpressionOperand(ctx *Context, out *strings.Builder, value *Operand)
	WritePlaceholder(ctx *Context, out *strings.Builder)
	WriteExpressionUnaryOp(ctx *Context, out *strings.Builder, value *UnaryExpr)
	WriteExpressionBinaryOp(ctx *Context, out *strings.Builder, value *BinaryExpr)
	WriteExpressionOrdered(ctx *Context, out *strings.Builder, value *Ordered)

	WriteJoinType(ctx *Context, out *strings.Builder, value JoinType)
	WriteJoin(ctx *Context, out *strings.Builder, value *Join)

	WriteTransactionBegin(out *strings.Builder)
	WriteTransactionCommit(out *strings.Builder)
	WriteTransactionRollback(out *strings.Builder)

	WriteCreateSchema(out *strings.Builder, schema string, ifNotExists bool)
	WriteDropSchema(out *strings.Builder, schema string, ifExists bool)
	WriteCreateTable(out *strings.Builder, info *TableInfo, ifNotExists bool)
	WriteCreateTableColumnFragment(ctx *Context, out *strings.Builder, column *ColumnDef)
	WriteColumnCommentInline(ctx *Context, out *strings.Builder, column *ColumnDef)
	WriteColumnCommentsStatements(ctx *Context, out *strings.Builder, info *TableInfo)
	WriteDropTable(out *strings.Builder, info *TableInfo, ifExists bool)

	WriteSelect(out *strings.Builder, columns []Expr, from DataSet, condition Expr, limit int)
	WriteInsert(out *strings.Builder, info *TableInfo, rows [][]LabeledValue, update bool)
	WriteInsertUpdateFragment(ctx *Context, out *strings.Builder, info *TableInfo, columns []*ColumnDef)
	WriteDelete(out *strings.Builder, info *TableInfo, condition Expr)
}

// IntervalUnit pairs a unit keyword with its size in nanoseconds.
type IntervalUnit struct {
	Name   string
	Factor int64
}

// Writer is the dialect-neutral SqlWriter. Self points at the outermost
// writer so that base methods dispatch nested rendering through dialect
// overrides; embedders must set it to themselves.
type Writer struct {
	Self SqlWriter
}

// NewWriter returns the generic writer, closest to PostgreSQL and DuckDB
// conventions.
func NewWriter() *Writer {
	w := &Writer{}
	w.Self = w
	return w
}

func (w *Writer) AliasDeclaration(ctx *Context) bool {
	return ctx.Fragment == FragmentSelectFrom || ctx.Fragment == FragmentJoin
}

func (w *Writer) WriteEscaped(_ *Context, out *strings.Builder, value string, search rune, replace string) {
	pos := 0
	for i, c := range value {
		if c == search {
			out.WriteString(value[pos:i])
			out.WriteString(replace)
			pos = i + len(string(c))
		}
	}
	out.WriteString(value[pos:])
}

func (w *Writer) WriteIdentifierQuoted(ctx *Context, out *strings.Builder, value string) {
	out.WriteByte('"')
	w.Self.WriteEscaped(ctx, out, value, '"', `""`)
	out.WriteByte('"')
}

func (w *Writer) WriteTableRef(ctx *Context, out *strings.Builder, value *TableRef) {
	if w.Self.AliasDeclaration(ctx) || value.Alias == "" {
		if value.Schema != "" {
			w.Self.WriteIdentifierQuoted(ctx, out, value.Schema)
			out.WriteByte('.')
		}
		w.Self.WriteIdentifierQuoted(ctx, out, value.Name)
	}
	if value.Alias != "" {
		out.WriteByte(' ')
		out.WriteString(value.Alias)
	}
}

func (w *Writer) WriteColumnRef(ctx *Context, out *strings.Builder, value *ColumnRef) {
	if ctx.QualifyColumns && value.Table != "" {
		if value.Schema != "" {
			w.Self.WriteIdentifierQuoted(ctx, out, value.Schema)
			out.WriteByte('.')
		}
		w.Self.WriteIdentifierQuoted(ctx, out, value.Table)
		out.WriteByte('.')
	}
	w.Self.WriteIdentifierQuoted(ctx, out, value.Name)
}

func (w *Writer) WriteColumnType(ctx *Context, out *strings.Builder, value Value) {
	switch value.Kind() {
	case KindDecimal:
		out.WriteString("DECIMAL")
		if value.Width() != 0 || value.Scale() != 0 {
			fmt.Fprintf(out, "(%d,%d)", value.Width(), value.Scale())
		}
	case KindChar:
		out.WriteString("CHAR(1)")
	case KindTimestampTZ:
		out.WriteString("TIMESTAMPTZ")
	case KindArray:
		w.Self.WriteColumnType(ctx, out, value.Elem())
		if value.Length() > 0 {
			fmt.Fprintf(out, "[%d]", value.Length())
		} else {
			out.WriteString("[]")
		}
	case KindList:
		w.Self.WriteColumnType(ctx, out, value.Elem())
		out.WriteString("[]")
	case KindMap:
		out.WriteString("MAP(")
		w.Self.WriteColumnType(ctx, out, value.Key())
		out.WriteByte(',')
		w.Self.WriteColumnType(ctx, out, value.Val())
		out.WriteByte(')')
	default:
		out.WriteString(value.Kind().String())
	}
}

func (w *Writer) WriteValue(ctx *Context, out *strings.Builder, value Value) {
	if value.IsNull() {
		w.Self.WriteValueNull(ctx, out)
		return
	}
	switch value.Kind() {
	case KindBool:
		w.Self.WriteValueBool(ctx, out, value.data.(bool))
	case KindInt8:
		out.WriteString(strconv.FormatInt(int64(value.data.(int8)), 10))
	case KindInt16:
		out.WriteString(strconv.FormatInt(int64(value.data.(int16)), 10))
	case KindInt32:
		out.WriteString(strconv.FormatInt(int64(value.data.(int32)), 10))
	case KindInt64:
		out.WriteString(strconv.FormatInt(value.data.(int64), 10))
	case KindUInt8:
		out.WriteString(strconv.FormatUint(uint64(value.data.(uint8)), 10))
	case KindUInt16:
		out.WriteString(strconv.FormatUint(uint64(value.data.(uint16)), 10))
	case KindUInt32:
		out.WriteString(strconv.FormatUint(uint64(value.data.(uint32)), 10))
	case KindUInt64:
		out.WriteString(strconv.FormatUint(value.data.(uint64), 10))
	case KindInt128, KindUInt128:
		out.WriteString(value.data.(*big.Int).String())
	case KindFloat32:
		w.writeFloat(ctx, out, float64(value.data.(float32)))
	case KindFloat64:
		w.writeFloat(ctx, out, value.data.(float64))
	case KindDecimal:
		out.WriteString(value.data.(decimal.Decimal).String())
	case KindChar:
		w.Self.WriteValueString(ctx, out, string(value.data.(rune)))
	case KindVarchar:
		w.Self.WriteValueString(ctx, out, value.data.(string))
	case KindBlob:
		w.Self.WriteValueBlob(ctx, out, value.data.([]byte))
	case KindDate:
		w.Self.WriteValueDate(ctx, out, value.data.(time.Time), false)
	case KindTime:
		w.Self.WriteValueTime(ctx, out, value.data.(time.Time), false)
	case KindTimestamp:
		w.Self.WriteValueTimestamp(ctx, out, value.data.(time.Time))
	case KindTimestampTZ:
		w.Self.WriteValueTimestampTZ(ctx, out, value.data.(time.Time))
	case KindInterval:
		w.Self.WriteValueInterval(ctx, out, value.data.(Interval))
	case KindUUID:
		out.WriteByte('\'')
		out.WriteString(value.data.(uuid.UUID).String())
		out.WriteByte('\'')
	case KindList, KindArray:
		w.Self.WriteValueList(ctx, out, value.Items(), value)
	case KindMap:
		w.Self.WriteValueMap(ctx, out, value.Entries())
	case KindStruct:
		w.Self.WriteValueStruct(ctx, out, value.Fields())
	}
}

func (w *Writer) writeFloat(ctx *Context, out *strings.Builder, v float64) {
	switch {
	case math.IsInf(v, 0):
		w.Self.WriteValueInfinity(ctx, out, math.Signbit(v))
	case math.IsNaN(v):
		w.Self.WriteValueNaN(ctx, out)
	default:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		out.WriteString(s)
		// Keep float literals visibly floating point.
		if !strings.ContainsAny(s, ".eE") {
			out.WriteString(".0")
		}
	}
}

func (w *Writer) WriteValueNull(_ *Context, out *strings.Builder) {
	out.WriteString("NULL")
}

func (w *Writer) WriteValueBool(_ *Context, out *strings.Builder, value bool) {
	if value {
		out.WriteString("true")
	} else {
		out.WriteString("false")
	}
}

// Infinity goes through CAST for dialect portability.
func (w *Writer) WriteValueInfinity(ctx *Context, out *strings.Builder, negative bool) {
	lit := "inf"
	if negative {
		lit = "-inf"
	}
	w.Self.WriteExpressionBinaryOp(ctx, out, &BinaryExpr{
		Op:  OpCast,
		Lhs: LitStr(lit),
		Rhs: TypeOperand(Empty(KindFloat64)),
	})
}

func (w *Writer) WriteValueNaN(ctx *Context, out *strings.Builder) {
	w.Self.WriteExpressionBinaryOp(ctx, out, &BinaryExpr{
		Op:  OpCast,
		Lhs: LitStr("nan"),
		Rhs: TypeOperand(Empty(KindFloat64)),
	})
}

func (w *Writer) WriteValueString(ctx *Context, out *strings.Builder, value string) {
	delim, escaped := byte('\''), "''"
	if ctx.Fragment == FragmentStringLiteral {
		delim, escaped = '"', `\"`
	}
	out.WriteByte(delim)
	pos := 0
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case delim:
			out.WriteString(value[pos:i])
			out.WriteString(escaped)
			pos = i + 1
		case '\n':
			out.WriteString(value[pos:i])
			out.WriteString(`\n`)
			pos = i + 1
		}
	}
	out.WriteString(value[pos:])
	out.WriteByte(delim)
}

func (w *Writer) WriteValueBlob(_ *Context, out *strings.Builder, value []byte) {
	out.WriteByte('\'')
	for _, b := range value {
		fmt.Fprintf(out, `\x%X`, b)
	}
	out.WriteByte('\'')
}

func (w *Writer) WriteValueDate(_ *Context, out *strings.Builder, value time.Time, timestamp bool) {
	if !timestamp {
		out.WriteByte('\'')
	}
	y, m, d := value.Date()
	fmt.Fprintf(out, "%04d-%02d-%02d", y, int(m), d)
	if !timestamp {
		out.WriteByte('\'')
	}
}

func (w *Writer) WriteValueTime(_ *Context, out *strings.Builder, value time.Time, timestamp bool) {
	sub := value.Nanosecond()
	width := 9
	for width > 1 && sub%10 == 0 {
		sub /= 10
		width--
	}
	if !timestamp {
		out.WriteByte('\'')
	}
	h, mi, s := value.Clock()
	fmt.Fprintf(out, "%02d:%02d:%02d.%0*d", h, mi, s, width, sub)
	if !timestamp {
		out.WriteByte('\'')
	}
}

func (w *Writer) WriteValueTimestamp(ctx *Context, out *strings.Builder, value time.Time) {
	out.WriteByte('\'')
	w.Self.WriteValueDate(ctx, out, value, true)
	out.WriteByte('T')
	w.Self.WriteValueTime(ctx, out, value, true)
	out.WriteByte('\'')
}

func (w *Writer) WriteValueTimestampTZ(ctx *Context, out *strings.Builder, value time.Time) {
	w.Self.WriteValueTimestamp(ctx, out, value.UTC())
}

// Units used to decompose intervals, largest first.
func (w *Writer) IntervalUnits() []IntervalUnit {
	return []IntervalUnit{
		{"DAY", NanosInDay},
		{"HOUR", NanosInSec * 3600},
		{"MINUTE", NanosInSec * 60},
		{"SECOND", NanosInSec},
		{"MICROSECOND", 1_000},
		{"NANOSECOND", 1},
	}
}

// WriteValueInterval picks the largest units that represent the interval
// exactly, or nearly so for the day-time part. A single component written
// from a single source field stays unquoted; anything composite is quoted.
func (w *Writer) WriteValueInterval(_ *Context, out *strings.Builder, value Interval) {
	var buf strings.Builder
	components := 0
	writeUnit := func(v int64, unit string) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.FormatInt(v, 10))
		buf.WriteByte(' ')
		buf.WriteString(unit)
		if v != 1 {
			buf.WriteByte('S')
		}
		components++
	}
	if value.IsZero() {
		writeUnit(0, "SECOND")
	}
	months := value.Months
	if months != 0 {
		if months > 48 || months%12 == 0 {
			writeUnit(months/12, "YEAR")
			months %= 12
		}
		if months != 0 {
			writeUnit(months, "MONTH")
		}
	}
	// Days and nanoseconds are decomposed together unit by unit; keeping
	// the day part separate avoids overflowing int64 nanoseconds.
	days, nanos := value.Days, value.Nanos
	for _, u := range w.Self.IntervalUnits() {
		rem := nanos % u.Factor
		if rem == 0 || u.Factor/rem > 1_000_000 {
			v := days*(NanosInDay/u.Factor) + nanos/u.Factor
			if v != 0 {
				writeUnit(v, u.Name)
				days, nanos = 0, rem
				if nanos == 0 {
					break
				}
			}
		}
	}
	sources := 0
	for _, f := range [3]int64{value.Months, value.Days, value.Nanos} {
		if f != 0 {
			sources++
		}
	}
	out.WriteString("INTERVAL ")
	if components > 1 || sources > 1 {
		out.WriteByte('\'')
		out.WriteString(buf.String())
		out.WriteByte('\'')
	} else {
		out.WriteString(buf.String())
	}
}

func (w *Writer) WriteValueList(ctx *Context, out *strings.Builder, items []Value, _ Value) {
	out.WriteByte('[')
	for i, v := range items {
		if i > 0 {
			out.WriteByte(',')
		}
		w.Self.WriteValue(ctx, out, v)
	}
	out.WriteByte(']')
}

func (w *Writer) WriteValueMap(ctx *Context, out *strings.Builder, entries []MapEntry) {
	out.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			out.WriteByte(',')
		}
		w.Self.WriteValue(ctx, out, e.Key)
		out.WriteByte(':')
		w.Self.WriteValue(ctx, out, e.Value)
	}
	out.WriteByte('}')
}

func (w *Writer) WriteValueStruct(ctx *Context, out *strings.Builder, fields []StructEntry) {
	out.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			out.WriteByte(',')
		}
		w.Self.WriteValueString(ctx, out, f.Name)
		out.WriteByte(':')
		w.Self.WriteValue(ctx, out, f.Value)
	}
	out.WriteByte('}')
}

func (w *Writer) UnaryOpPrecedence(op UnaryOp) int {
	switch op {
	case OpNegative:
		return 1250
	default:
		return 250
	}
}

func (w *Writer) BinaryOpPrecedence(op BinaryOp) int {
	switch op {
	case OpOr:
		return 100
	case OpAnd:
		return 200
	case OpEqual, OpNotEqual, OpLess, OpGreater, OpLessEqual, OpGreaterEqual:
		return 300
	case OpIs, OpIsNot, OpLike, OpNotLike, OpRegexp, OpNotRegexp, OpGlob, OpNotGlob:
		return 400
	case OpBitwiseOr:
		return 500
	case OpBitwiseAnd:
		return 600
	case OpShiftLeft, OpShiftRight:
		return 700
	case OpAddition, OpSubtraction:
		return 800
	case OpMultiplication, OpDivision, OpRemainder:
		return 900
	case OpIndexing:
		return 1000
	case OpCast:
		return 1100
	default: // OpAlias
		return 1200
	}
}

func (w *Writer) WriteExpressionOperand(ctx *Context, out *strings.Builder, value *Operand) {
	switch value.kind {
	case opLitBool:
		w.Self.WriteValueBool(ctx, out, value.b)
	case opLitFloat:
		w.writeFloat(ctx, out, value.f)
	case opLitIdent:
		out.WriteString(value.s)
	case opLitField:
		for i, p := range value.path {
			if i > 0 {
				out.WriteByte('.')
			}
			out.WriteString(p)
		}
	case opLitInt:
		out.WriteString(strconv.FormatInt(value.i, 10))
	case opLitStr:
		w.Self.WriteValueString(ctx, out, value.s)
	case opLitArray:
		out.WriteByte('[')
		for i, e := range value.items {
			if i > 0 {
				out.WriteString(", ")
			}
			e.WriteQuery(w.Self, ctx, out)
		}
		out.WriteByte(']')
	case opNull:
		out.WriteString("NULL")
	case opType:
		w.Self.WriteColumnType(ctx, out, value.val)
	case opVariable:
		w.Self.WriteValue(ctx, out, value.val)
	case opCall:
		out.WriteString(value.s)
		out.WriteByte('(')
		for i, e := range value.items {
			if i > 0 {
				out.WriteByte(',')
			}
			e.WriteQuery(w.Self, ctx, out)
		}
		out.WriteByte(')')
	case opAsterisk:
		out.WriteByte('*')
	case opQuestionMark:
		w.Self.WritePlaceholder(ctx, out)
	}
}

func (w *Writer) WritePlaceholder(_ *Context, out *strings.Builder) {
	out.WriteByte('?')
}

func (w *Writer) WriteExpressionUnaryOp(ctx *Context, out *strings.Builder, value *UnaryExpr) {
	switch value.Op {
	case OpNegative:
		out.WriteByte('-')
	case OpNot:
		out.WriteString("NOT ")
	}
	if value.Arg.Precedence(w.Self) <= w.Self.UnaryOpPrecedence(value.Op) {
		out.WriteByte('(')
		value.Arg.WriteQuery(w.Self, ctx, out)
		out.WriteByte(')')
	} else {
		value.Arg.WriteQuery(w.Self, ctx, out)
	}
}

func (w *Writer) WriteExpressionBinaryOp(ctx *Context, out *strings.Builder, value *BinaryExpr) {
	var prefix, infix, suffix string
	lhsWrapped, rhsWrapped := false, false
	switch value.Op {
	case OpIndexing:
		infix, suffix, rhsWrapped = "[", "]", true
	case OpCast:
		prefix, infix, suffix = "CAST(", " AS ", ")"
		lhsWrapped, rhsWrapped = true, true
	case OpMultiplication:
		infix = " * "
	case OpDivision:
		infix = " / "
	case OpRemainder:
		infix = " % "
	case OpAddition:
		infix = " + "
	case OpSubtraction:
		infix = " - "
	case OpShiftLeft:
		infix = " << "
	case OpShiftRight:
		infix = " >> "
	case OpBitwiseAnd:
		infix = " & "
	case OpBitwiseOr:
		infix = " | "
	case OpIs:
		infix = " IS "
	case OpIsNot:
		infix = " IS NOT "
	case OpLike:
		infix = " LIKE "
	case OpNotLike:
		infix = " NOT LIKE "
	case OpRegexp:
		infix = " REGEXP "
	case OpNotRegexp:
		infix = " NOT REGEXP "
	case OpGlob:
		infix = " GLOB "
	case OpNotGlob:
		infix = " NOT GLOB "
	case OpEqual:
		infix = " = "
	case OpNotEqual:
		infix = " != "
	case OpLess:
		infix = " < "
	case OpLessEqual:
		infix = " <= "
	case OpGreater:
		infix = " > "
	case OpGreaterEqual:
		infix = " >= "
	case OpAnd:
		infix = " AND "
	case OpOr:
		infix = " OR "
	case OpAlias:
		if ctx.Fragment == FragmentSelectOrderBy {
			value.Lhs.WriteQuery(w.Self, ctx, out)
			return
		}
		infix = " AS "
	}
	if value.Op == OpCast {
		defer ctx.Push(FragmentCasting)()
	}
	precedence := w.Self.BinaryOpPrecedence(value.Op)
	out.WriteString(prefix)
	if !lhsWrapped && value.Lhs.Precedence(w.Self) < precedence {
		out.WriteByte('(')
		value.Lhs.WriteQuery(w.Self, ctx, out)
		out.WriteByte(')')
	} else {
		value.Lhs.WriteQuery(w.Self, ctx, out)
	}
	out.WriteString(infix)
	if !rhsWrapped && value.Rhs.Precedence(w.Self) <= precedence {
		out.WriteByte('(')
		value.Rhs.WriteQuery(w.Self, ctx, out)
		out.WriteByte(')')
	} else {
		value.Rhs.WriteQuery(w.Self, ctx, out)
	}
	out.WriteString(suffix)
}

func (w *Writer) WriteExpressionOrdered(ctx *Context, out *strings.Builder, value *Ordered) {
	value.Expr.WriteQuery(w.Self, ctx, out)
	if ctx.Fragment == FragmentSelectOrderBy {
		if value.Order == DESC {
			out.WriteString(" DESC")
		} else {
			out.WriteString(" ASC")
		}
	}
}

func (w *Writer) WriteJoinType(_ *Context, out *strings.Builder, value JoinType) {
	switch value {
	case InnerJoin:
		out.WriteString("INNER JOIN")
	case OuterJoin:
		out.WriteString("OUTER JOIN")
	case LeftJoin:
		out.WriteString("LEFT JOIN")
	case RightJoin:
		out.WriteString("RIGHT JOIN")
	case CrossJoin:
		out.WriteString("CROSS JOIN")
	case NaturalJoin:
		out.WriteString("NATURAL JOIN")
	default:
		out.WriteString("JOIN")
	}
}

func (w *Writer) WriteJoin(ctx *Context, out *strings.Builder, value *Join) {
	defer ctx.Push(FragmentJoin)()
	defer ctx.PushQualify(true)()
	value.Lhs.WriteQuery(w.Self, ctx, out)
	out.WriteByte(' ')
	w.Self.WriteJoinType(ctx, out, value.Type)
	out.WriteByte(' ')
	value.Rhs.WriteQuery(w.Self, ctx, out)
	if value.On != nil {
		out.WriteString(" ON ")
		value.On.WriteQuery(w.Self, ctx, out)
	}
}

func (w *Writer) WriteTransactionBegin(out *strings.Builder) {
	out.WriteString("BEGIN;")
}

func (w *Writer) WriteTransactionCommit(out *strings.Builder) {
	out.WriteString("COMMIT;")
}

func (w *Writer) WriteTransactionRollback(out *strings.Builder) {
	out.WriteString("ROLLBACK;")
}

func (w *Writer) WriteCreateSchema(out *strings.Builder, schema string, ifNotExists bool) {
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	ctx := &Context{Fragment: FragmentCreateSchema}
	out.WriteString("CREATE SCHEMA ")
	if ifNotExists {
		out.WriteString("IF NOT EXISTS ")
	}
	w.Self.WriteIdentifierQuoted(ctx, out, schema)
	out.WriteByte(';')
}

func (w *Writer) WriteDropSchema(out *strings.Builder, schema string, ifExists bool) {
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	ctx := &Context{Fragment: FragmentDropSchema}
	out.WriteString("DROP SCHEMA ")
	if ifExists {
		out.WriteString("IF EXISTS ")
	}
	w.Self.WriteIdentifierQuoted(ctx, out, schema)
	out.WriteByte(';')
}

func (w *Writer) WriteCreateTable(out *strings.Builder, info *TableInfo, ifNotExists bool) {
	ctx := &Context{Fragment: FragmentCreateTable}
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	out.WriteString("CREATE TABLE ")
	if ifNotExists {
		out.WriteString("IF NOT EXISTS ")
	}
	w.Self.WriteTableRef(ctx, out, &info.Table)
	out.WriteString(" (\n")
	for i, c := range info.Columns {
		if i > 0 {
			out.WriteString(",\n")
		}
		w.Self.WriteCreateTableColumnFragment(ctx, out, c)
	}
	if pk := info.PrimaryKey; len(pk) > 1 {
		out.WriteString(",\nPRIMARY KEY (")
		for i, c := range pk {
			if i > 0 {
				out.WriteString(", ")
			}
			w.Self.WriteIdentifierQuoted(ctx, out, c.Name())
		}
		out.WriteByte(')')
	}
	for _, unique := range info.UniqueGroups {
		if len(unique) > 1 {
			out.WriteString(",\nUNIQUE (")
			for i, c := range unique {
				if i > 0 {
					out.WriteString(", ")
				}
				w.Self.WriteIdentifierQuoted(ctx, out, c.Name())
			}
			out.WriteByte(')')
		}
	}
	out.WriteString("\n);")
	w.Self.WriteColumnCommentsStatements(ctx, out, info)
}

func (w *Writer) WriteCreateTableColumnFragment(ctx *Context, out *strings.Builder, column *ColumnDef) {
	w.Self.WriteIdentifierQuoted(ctx, out, column.Name())
	out.WriteByte(' ')
	if column.TypeOverride != "" {
		out.WriteString(column.TypeOverride)
	} else {
		w.Self.WriteColumnType(ctx, out, column.Value)
	}
	if !column.Nullable && column.PrimaryKey == NotPrimaryKey {
		out.WriteString(" NOT NULL")
	}
	if column.HasDefault {
		out.WriteString(" DEFAULT ")
		out.WriteString(column.Default)
	}
	if column.PrimaryKey == PrimaryKey {
		// Composite primary keys are printed as a separate line.
		out.WriteString(" PRIMARY KEY")
	}
	if column.Unique && column.UniqueGroup == "" && column.PrimaryKey != PrimaryKey {
		out.WriteString(" UNIQUE")
	}
	if ref := column.References; ref != nil {
		out.WriteString(" REFERENCES ")
		w.Self.WriteTableRef(ctx, out, &TableRef{Name: ref.Table})
		out.WriteByte('(')
		w.Self.WriteIdentifierQuoted(ctx, out, ref.Column)
		out.WriteByte(')')
		if ref.HasDel {
			out.WriteString(" ON DELETE ")
			out.WriteString(ref.OnDelete.String())
		}
		if ref.HasUpd {
			out.WriteString(" ON UPDATE ")
			out.WriteString(ref.OnUpdate.String())
		}
	}
	if column.Comment != "" {
		w.Self.WriteColumnCommentInline(ctx, out, column)
	}
}

// The base writer emits comments as COMMENT ON statements, not inline.
func (w *Writer) WriteColumnCommentInline(_ *Context, _ *strings.Builder, _ *ColumnDef) {
}

func (w *Writer) WriteColumnCommentsStatements(ctx *Context, out *strings.Builder, info *TableInfo) {
	defer ctx.Push(FragmentCommentOnColumn)()
	defer ctx.PushQualify(true)()
	for _, c := range info.Columns {
		if c.Comment == "" {
			continue
		}
		out.WriteString("\nCOMMENT ON COLUMN ")
		w.Self.WriteColumnRef(ctx, out, &c.Reference)
		out.WriteString(" IS ")
		w.Self.WriteValueString(ctx, out, c.Comment)
		out.WriteByte(';')
	}
}

func (w *Writer) WriteDropTable(out *strings.Builder, info *TableInfo, ifExists bool) {
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	ctx := &Context{Fragment: FragmentDropTable}
	out.WriteString("DROP TABLE ")
	if ifExists {
		out.WriteString("IF EXISTS ")
	}
	w.Self.WriteTableRef(ctx, out, &info.Table)
	out.WriteByte(';')
}

// WriteSelect renders a SELECT with projection, FROM, optional WHERE,
// ORDER BY for ordered columns and an optional LIMIT (negative for none).
func (w *Writer) WriteSelect(out *strings.Builder, columns []Expr, from DataSet, condition Expr, limit int) {
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	out.WriteString("SELECT ")
	hasOrderBy := false
	ctx := &Context{Fragment: FragmentSelect, QualifyColumns: from.QualifiedColumns()}
	for i, col := range columns {
		if i > 0 {
			out.WriteString(", ")
		}
		col.WriteQuery(w.Self, ctx, out)
		if _, ok := col.(*Ordered); ok {
			hasOrderBy = true
		}
	}
	out.WriteString("\nFROM ")
	restore := ctx.Push(FragmentSelectFrom)
	from.WriteQuery(w.Self, ctx, out)
	restore()
	if condition != nil {
		out.WriteString("\nWHERE ")
		restore = ctx.Push(FragmentSelectWhere)
		condition.WriteQuery(w.Self, ctx, out)
		restore()
	}
	if hasOrderBy {
		out.WriteString("\nORDER BY ")
		restore = ctx.Push(FragmentSelectOrderBy)
		first := true
		for _, col := range columns {
			if _, ok := col.(*Ordered); !ok {
				continue
			}
			if !first {
				out.WriteString(", ")
			}
			col.WriteQuery(w.Self, ctx, out)
			first = false
		}
		restore()
	}
	if limit >= 0 {
		out.WriteString("\nLIMIT ")
		out.WriteString(strconv.Itoa(limit))
	}
	out.WriteByte(';')
}

// WriteInsert renders a single or multi-row INSERT. A single row lists just
// the columns it carries; multiple rows list every column, filling the gaps
// with DEFAULT. With update set, an upsert fragment follows.
func (w *Writer) WriteInsert(out *strings.Builder, info *TableInfo, rows [][]LabeledValue, update bool) {
	if len(rows) == 0 {
		return
	}
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	out.WriteString("INSERT INTO ")
	ctx := &Context{Fragment: FragmentInsert}
	w.Self.WriteTableRef(ctx, out, &info.Table)
	out.WriteString(" (")
	single := len(rows) == 1
	if single {
		for i, f := range rows[0] {
			if i > 0 {
				out.WriteString(", ")
			}
			w.Self.WriteIdentifierQuoted(ctx, out, f.Name)
		}
	} else {
		for i, c := range info.Columns {
			if i > 0 {
				out.WriteString(", ")
			}
			w.Self.WriteIdentifierQuoted(ctx, out, c.Name())
		}
	}
	out.WriteString(") VALUES\n")
	defer ctx.Push(FragmentInsertValues)()
	for r, row := range rows {
		if r > 0 {
			out.WriteString(",\n")
		}
		out.WriteByte('(')
		fi := 0
		first := true
		for _, c := range info.Columns {
			if fi < len(row) && row[fi].Name == c.Name() {
				if !first {
					out.WriteString(", ")
				}
				w.Self.WriteValue(ctx, out, row[fi].Value)
				fi++
				first = false
			} else if !single {
				if !first {
					out.WriteString(", ")
				}
				out.WriteString("DEFAULT")
				first = false
			}
		}
		out.WriteByte(')')
	}
	if update {
		var cols []*ColumnDef
		if single {
			for _, c := range info.Columns {
				for _, f := range rows[0] {
					if f.Name == c.Name() {
						cols = append(cols, c)
						break
					}
				}
			}
		} else {
			cols = info.Columns
		}
		w.Self.WriteInsertUpdateFragment(ctx, out, info, cols)
	}
	out.WriteByte(';')
}

func (w *Writer) WriteInsertUpdateFragment(ctx *Context, out *strings.Builder, info *TableInfo, columns []*ColumnDef) {
	pk := info.PrimaryKey
	if len(pk) == 0 {
		return
	}
	out.WriteString("\nON CONFLICT")
	defer ctx.Push(FragmentInsertOnConflict)()
	out.WriteString(" (")
	for i, c := range pk {
		if i > 0 {
			out.WriteString(", ")
		}
		w.Self.WriteIdentifierQuoted(ctx, out, c.Name())
	}
	out.WriteByte(')')
	out.WriteString(" DO UPDATE SET\n")
	first := true
	for _, c := range columns {
		if c.PrimaryKey != NotPrimaryKey {
			continue
		}
		if !first {
			out.WriteString(",\n")
		}
		w.Self.WriteIdentifierQuoted(ctx, out, c.Name())
		out.WriteString(" = EXCLUDED.")
		w.Self.WriteIdentifierQuoted(ctx, out, c.Name())
		first = false
	}
}

func (w *Writer) WriteDelete(out *strings.Builder, info *TableInfo, condition Expr) {
	if out.Len() > 0 {
		out.WriteByte('\n')
	}
	out.WriteString("DELETE FROM ")
	ctx := &Context{Fragment: FragmentDelete}
	w.Self.WriteTableRef(ctx, out, &info.Table)
	if condition != nil {
		out.WriteString("\nWHERE ")
		defer ctx.Push(FragmentDeleteWhere)()
		condition.WriteQuery(w.Self, ctx, out)
	}
	out.WriteByte(';')
}
