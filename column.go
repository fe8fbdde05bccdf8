package tank

import "strings"

// PrimaryKeyType distinguishes a single-column primary key from membership
// in a composite one.
type PrimaryKeyType uint8

const (
	NotPrimaryKey PrimaryKeyType = iota
	PrimaryKey
	PartOfPrimaryKey
)

// ColumnRef names a column, optionally qualified by table and schema.
// It is an expression: rendering quotes the name and, when the context
// requests qualification, prefixes schema and table.
type ColumnRef struct {
	Name   string
	Table  string
	Schema string
}

func (c *ColumnRef) WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder) {
	w.WriteColumnRef(ctx, out, c)
}

func (c *ColumnRef) Precedence(SqlWriter) int { return 1_000_000 }

// ReferenceAction is what a foreign key does on delete or update.
type ReferenceAction uint8

const (
	NoAction ReferenceAction = iota
	Restrict
	CascadeAction
	SetNull
	SetDefault
)

func (a ReferenceAction) String() string {
	switch a {
	case Restrict:
		return "RESTRICT"
	case CascadeAction:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	case SetDefault:
		return "SET DEFAULT"
	default:
		return "NO ACTION"
	}
}

// Reference is a foreign key target plus its actions.
type Reference struct {
	Table    string
	Column   string
	OnDelete ReferenceAction
	OnUpdate ReferenceAction
	HasDel   bool
	HasUpd   bool
}

// ColumnDef is the full DDL description of a column. Value is a typed NULL
// prototype carrying the column's database type; TypeOverride, when set,
// replaces the derived type spelling verbatim.
type ColumnDef struct {
	Reference     ColumnRef
	Value         Value
	TypeOverride  string
	Nullable      bool
	Default       string
	HasDefault    bool
	PrimaryKey    PrimaryKeyType
	Unique        bool
	UniqueGroup   string
	AutoIncrement bool
	Passive       bool
	Comment       string
	References    *Reference
}

func (c *ColumnDef) Name() string   { return c.Reference.Name }
func (c *ColumnDef) Table() string  { return c.Reference.Table }
func (c *ColumnDef) Schema() string { return c.Reference.Schema }

func (c *ColumnDef) WriteQuery(w SqlWriter, ctx *Context, out *strings.Builder) {
	w.WriteColumnRef(ctx, out, &c.Reference)
}

func (c *ColumnDef) Precedence(SqlWriter) int { return 1_000_000 }
