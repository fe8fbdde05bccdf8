package mysql

import (
	"fmt"
	"strings"

	tank "github.com/barsdeveloper/tank-sub000"
)

// Writer prints SQL in MySQL's dialect: backtick identifiers, JSON columns
// for nested values, DATETIME timestamps and TIME intervals.
type Writer struct {
	tank.Writer
}

func NewWriter() *Writer {
	w := &Writer{}
	w.Self = w
	return w
}

func insideJSON(ctx *tank.Context) bool {
	return ctx.Fragment == tank.FragmentJSON || ctx.Fragment == tank.FragmentJSONKey
}

func (w *Writer) WriteIdentifierQuoted(ctx *tank.Context, out *strings.Builder, value string) {
	out.WriteByte('`')
	w.WriteEscaped(ctx, out, value, '`', "``")
	out.WriteByte('`')
}

func (w *Writer) WriteColumnType(ctx *tank.Context, out *strings.Builder, value tank.Value) {
	switch value.Kind() {
	case tank.KindBool:
		out.WriteString("BOOLEAN")
	case tank.KindUInt8:
		out.WriteString("TINYINT UNSIGNED")
	case tank.KindUInt16:
		out.WriteString("SMALLINT UNSIGNED")
	case tank.KindUInt32:
		out.WriteString("INTEGER UNSIGNED")
	case tank.KindUInt64:
		out.WriteString("BIGINT UNSIGNED")
	case tank.KindInt128:
		out.WriteString("NUMERIC(39)")
	case tank.KindUInt128:
		out.WriteString("NUMERIC(39) UNSIGNED")
	case tank.KindFloat32:
		out.WriteString("FLOAT")
	case tank.KindFloat64:
		out.WriteString("DOUBLE")
	case tank.KindDecimal:
		out.WriteString("DECIMAL")
		if value.Width() != 0 || value.Scale() != 0 {
			fmt.Fprintf(out, "(%d,%d)", value.Width(), value.Scale())
		}
	case tank.KindVarchar:
		out.WriteString("TEXT")
	case tank.KindTimestamp, tank.KindTimestampTZ:
		out.WriteString("DATETIME")
	case tank.KindInterval:
		out.WriteString("TIME")
	case tank.KindUUID:
		out.WriteString("CHAR(36)")
	case tank.KindArray, tank.KindList, tank.KindMap, tank.KindStruct:
		out.WriteString("JSON")
	default:
		w.Writer.WriteColumnType(ctx, out, value)
	}
}

// Strings nested in a JSON literal are JSON strings, not SQL ones.
func (w *Writer) WriteValueString(ctx *tank.Context, out *strings.Builder, value string) {
	if insideJSON(ctx) {
		out.WriteByte('"')
		w.WriteEscaped(ctx, out, value, '"', `\"`)
		out.WriteByte('"')
		return
	}
	w.Writer.WriteValueString(ctx, out, value)
}

func (w *Writer) WriteValueInfinity(_ *tank.Context, out *strings.Builder, negative bool) {
	if negative {
		out.WriteByte('-')
	}
	out.WriteString("1.0e+10000")
}

// MySQL has no interval literal, intervals become TIME values spelled as a
// signed hour count followed by minutes, seconds and a fraction.
func (w *Writer) WriteValueInterval(ctx *tank.Context, out *strings.Builder, value tank.Interval) {
	delim := byte('\'')
	if insideJSON(ctx) {
		delim = '"'
	}
	nanos := value.Nanos
	hours := (value.Months*tank.DaysInMonth+value.Days)*24 + nanos/(3600*tank.NanosInSec)
	nanos %= 3600 * tank.NanosInSec
	mins := nanos / (60 * tank.NanosInSec)
	nanos %= 60 * tank.NanosInSec
	secs := nanos / tank.NanosInSec
	nanos %= tank.NanosInSec
	out.WriteByte(delim)
	fmt.Fprintf(out, "%d:%02d:%02d", hours, mins, secs)
	if nanos != 0 {
		sub, width := nanos, 9
		for width > 1 && sub%10 == 0 {
			sub /= 10
			width--
		}
		fmt.Fprintf(out, ".%0*d", width, sub)
	}
	out.WriteByte(delim)
}

// Nested values are stored as JSON. The literal is quoted once at the
// outermost level; nested containers write bare JSON inside it.
func (w *Writer) WriteValueList(ctx *tank.Context, out *strings.Builder, items []tank.Value, _ tank.Value) {
	wasJSON := insideJSON(ctx)
	defer ctx.Push(tank.FragmentJSON)()
	if !wasJSON {
		out.WriteByte('\'')
	}
	out.WriteByte('[')
	for i, v := range items {
		if i > 0 {
			out.WriteByte(',')
		}
		w.Self.WriteValue(ctx, out, v)
	}
	out.WriteByte(']')
	if !wasJSON {
		out.WriteByte('\'')
	}
}

func (w *Writer) WriteValueMap(ctx *tank.Context, out *strings.Builder, entries []tank.MapEntry) {
	wasJSON := insideJSON(ctx)
	defer ctx.Push(tank.FragmentJSON)()
	if !wasJSON {
		out.WriteByte('\'')
	}
	out.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			out.WriteByte(',')
		}
		restore := ctx.Push(tank.FragmentJSONKey)
		w.Self.WriteValue(ctx, out, e.Key)
		restore()
		out.WriteByte(':')
		w.Self.WriteValue(ctx, out, e.Value)
	}
	out.WriteByte('}')
	if !wasJSON {
		out.WriteByte('\'')
	}
}

// MySQL spells column comments inline in the CREATE TABLE statement.
func (w *Writer) WriteColumnCommentInline(ctx *tank.Context, out *strings.Builder, column *tank.ColumnDef) {
	out.WriteString(" COMMENT ")
	w.Self.WriteValueString(ctx, out, column.Comment)
}

func (w *Writer) WriteColumnCommentsStatements(_ *tank.Context, _ *strings.Builder, _ *tank.TableInfo) {
}

func (w *Writer) WriteInsertUpdateFragment(ctx *tank.Context, out *strings.Builder, info *tank.TableInfo, columns []*tank.ColumnDef) {
	if len(info.PrimaryKey) == 0 {
		return
	}
	out.WriteString("\nON DUPLICATE KEY UPDATE\n")
	defer ctx.Push(tank.FragmentInsertOnConflict)()
	first := true
	for _, c := range columns {
		if c.PrimaryKey != tank.NotPrimaryKey {
			continue
		}
		if !first {
			out.WriteString(",\n")
		}
		w.Self.WriteIdentifierQuoted(ctx, out, c.Name())
		out.WriteString(" = VALUES(")
		w.Self.WriteIdentifierQuoted(ctx, out, c.Name())
		out.WriteByte(')')
		first = false
	}
}
