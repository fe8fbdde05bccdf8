package postgres

import (
	"fmt"
	"strings"

	tank "github.com/barsdeveloper/tank-sub000"
)

// Writer prints SQL in PostgreSQL's dialect: NUMERIC renditions for the
// 128 bit and unsigned integer types, ARRAY literals with an explicit cast
// and numbered placeholders.
type Writer struct {
	tank.Writer
}

func NewWriter() *Writer {
	w := &Writer{}
	w.Self = w
	return w
}

func (w *Writer) WriteColumnType(ctx *tank.Context, out *strings.Builder, value tank.Value) {
	switch value.Kind() {
	case tank.KindInt8, tank.KindInt16, tank.KindUInt8:
		out.WriteString("SMALLINT")
	case tank.KindInt32, tank.KindUInt16:
		out.WriteString("INTEGER")
	case tank.KindInt64, tank.KindUInt32:
		out.WriteString("BIGINT")
	case tank.KindUInt64:
		out.WriteString("NUMERIC(19)")
	case tank.KindInt128, tank.KindUInt128:
		out.WriteString("NUMERIC(38)")
	case tank.KindFloat64:
		out.WriteString("DOUBLE")
	case tank.KindDecimal:
		out.WriteString("NUMERIC")
		if value.Width() != 0 || value.Scale() != 0 {
			fmt.Fprintf(out, "(%d,%d)", value.Width(), value.Scale())
		}
	case tank.KindChar:
		out.WriteString("CHARACTER(1)")
	case tank.KindVarchar:
		out.WriteString("TEXT")
	case tank.KindBlob:
		out.WriteString("BYTEA")
	case tank.KindTimestampTZ:
		out.WriteString("TIMESTAMP WITH TIME ZONE")
	case tank.KindArray:
		w.Self.WriteColumnType(ctx, out, value.Elem())
		fmt.Fprintf(out, "[%d]", value.Length())
	case tank.KindList:
		w.Self.WriteColumnType(ctx, out, value.Elem())
		out.WriteString("[]")
	default:
		w.Writer.WriteColumnType(ctx, out, value)
	}
}

func (w *Writer) WriteValueBlob(_ *tank.Context, out *strings.Builder, value []byte) {
	out.WriteString(`'\x`)
	for _, b := range value {
		fmt.Fprintf(out, "%X", b)
	}
	out.WriteByte('\'')
}

func (w *Writer) WriteValueList(ctx *tank.Context, out *strings.Builder, items []tank.Value, typ tank.Value) {
	out.WriteString("ARRAY[")
	for i, v := range items {
		if i > 0 {
			out.WriteByte(',')
		}
		w.Self.WriteValue(ctx, out, v)
	}
	out.WriteString("]::")
	w.Self.WriteColumnType(ctx, out, typ)
}

func (w *Writer) WritePlaceholder(ctx *tank.Context, out *strings.Builder) {
	fmt.Fprintf(out, "$%d", ctx.NextPlaceholder())
}
