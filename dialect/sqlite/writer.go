package sqlite

import (
	"fmt"
	"strings"

	tank "github.com/barsdeveloper/tank-sub000"
)

// Writer prints SQL in SQLite's dialect. SQLite has no schemas, so schema
// qualified names fold into a single quoted identifier, and column types
// collapse onto its storage affinities.
type Writer struct {
	tank.Writer
}

func NewWriter() *Writer {
	w := &Writer{}
	w.Self = w
	return w
}

func (w *Writer) WriteColumnRef(ctx *tank.Context, out *strings.Builder, value *tank.ColumnRef) {
	if ctx.QualifyColumns && value.Table != "" {
		out.WriteByte('"')
		if value.Schema != "" {
			w.WriteEscaped(ctx, out, value.Schema, '"', `""`)
			out.WriteByte('.')
		}
		w.WriteEscaped(ctx, out, value.Table, '"', `""`)
		out.WriteString(`".`)
	}
	w.Self.WriteIdentifierQuoted(ctx, out, value.Name)
}

func (w *Writer) WriteTableRef(ctx *tank.Context, out *strings.Builder, value *tank.TableRef) {
	if w.Self.AliasDeclaration(ctx) || value.Alias == "" {
		out.WriteByte('"')
		if value.Schema != "" {
			w.WriteEscaped(ctx, out, value.Schema, '"', `""`)
			out.WriteByte('.')
		}
		w.WriteEscaped(ctx, out, value.Name, '"', `""`)
		out.WriteByte('"')
	}
	if value.Alias != "" {
		out.WriteByte(' ')
		out.WriteString(value.Alias)
	}
}

func (w *Writer) WriteColumnType(ctx *tank.Context, out *strings.Builder, value tank.Value) {
	switch value.Kind() {
	case tank.KindBool, tank.KindInt8, tank.KindInt16, tank.KindInt32, tank.KindInt64,
		tank.KindUInt8, tank.KindUInt16, tank.KindUInt32, tank.KindUInt64:
		out.WriteString("INTEGER")
	case tank.KindFloat32, tank.KindFloat64:
		out.WriteString("REAL")
	case tank.KindDecimal:
		out.WriteString("REAL")
		if value.Width() != 0 || value.Scale() != 0 {
			fmt.Fprintf(out, "(%d,%d)", value.Width(), value.Scale())
		}
	case tank.KindChar, tank.KindVarchar, tank.KindDate, tank.KindTime,
		tank.KindTimestamp, tank.KindTimestampTZ, tank.KindUUID:
		out.WriteString("TEXT")
	case tank.KindBlob:
		out.WriteString("BLOB")
	default:
		w.Writer.WriteColumnType(ctx, out, value)
	}
}

func (w *Writer) WriteValueInfinity(_ *tank.Context, out *strings.Builder, negative bool) {
	if negative {
		out.WriteByte('-')
	}
	out.WriteString("1.0e+10000")
}

func (w *Writer) WriteValueBlob(_ *tank.Context, out *strings.Builder, value []byte) {
	out.WriteString("X'")
	for _, b := range value {
		fmt.Fprintf(out, "%X", b)
	}
	out.WriteByte('\'')
}

// SQLite has no schemas.
func (w *Writer) WriteCreateSchema(_ *strings.Builder, _ string, _ bool) {
}

func (w *Writer) WriteDropSchema(_ *strings.Builder, _ string, _ bool) {
}

// SQLite has no column comments.
func (w *Writer) WriteColumnCommentsStatements(_ *tank.Context, _ *strings.Builder, _ *tank.TableInfo) {
}
