package duckdb

import (
	"strings"

	tank "github.com/barsdeveloper/tank-sub000"
)

// Writer prints SQL in DuckDB's dialect. DuckDB is the dialect the generic
// writer is closest to, so only map literals need a different spelling.
type Writer struct {
	tank.Writer
}

func NewWriter() *Writer {
	w := &Writer{}
	w.Self = w
	return w
}

// DuckDB map literals take a MAP prefix, e.g. MAP{'k':1}.
func (w *Writer) WriteValueMap(ctx *tank.Context, out *strings.Builder, entries []tank.MapEntry) {
	out.WriteString("MAP")
	w.Writer.WriteValueMap(ctx, out, entries)
}
