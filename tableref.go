package tank

import "strings"

// DataSet is anything that can stand in a FROM clause: a table reference
// or a join tree. QualifiedColumns reports whether columns selected from
// this source need table prefixes to stay unambiguous.
type DataSet interface {
	WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder)
	QualifiedColumns() bool
}

// TableRef names a table, optionally schema-qualified and aliased.
type TableRef struct {
	Name   string
	Schema string
	Alias  string
}

// FullName returns the alias if set, otherwise schema.name.
func (t *TableRef) FullName() string {
	if t.Alias != "" {
		return t.Alias
	}
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

// WithAlias returns a copy carrying the alias.
func (t *TableRef) WithAlias(alias string) *TableRef {
	c := *t
	c.Alias = alias
	return &c
}

func (t *TableRef) WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder) {
	w.WriteTableRef(ctx, out, t)
}

func (t *TableRef) QualifiedColumns() bool { return false }

// JoinType selects the join keyword.
type JoinType uint8

const (
	DefaultJoin JoinType = iota
	InnerJoin
	OuterJoin
	LeftJoin
	RightJoin
	CrossJoin
	NaturalJoin
)

// Join combines two data sets. On is nil for cross and natural joins.
type Join struct {
	Type JoinType
	Lhs  DataSet
	Rhs  DataSet
	On   Expr
}

// NewJoin builds a join; on may be nil.
func NewJoin(t JoinType, lhs, rhs DataSet, on Expr) *Join {
	return &Join{Type: t, Lhs: lhs, Rhs: rhs, On: on}
}

func (j *Join) WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder) {
	w.WriteJoin(ctx, out, j)
}

// Columns selected out of a join are always table-qualified.
func (j *Join) QualifiedColumns() bool { return true }
