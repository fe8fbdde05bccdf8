package tank

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-openapi/inflect"
)

// LabeledValue pairs a column name with a concrete value, preserving the
// column order of the entity.
type LabeledValue struct {
	Name  string
	Value Value
}

// TableNamer lets an entity override the table name derived from its
// struct name.
type TableNamer interface {
	TableName() string
}

// TableSchemer lets an entity place its table in a schema.
type TableSchemer interface {
	TableSchema() string
}

// Passive wraps a column value that may be left to the database, such as
// an auto increment key or a column with a DEFAULT. An unset Passive field
// is omitted from single-row inserts so the database fills it in.
type Passive[T any] struct {
	value T
	set   bool
}

// Set returns a Passive holding v.
func Set[T any](v T) Passive[T] {
	return Passive[T]{value: v, set: true}
}

// Get returns the value and whether it was set.
func (p Passive[T]) Get() (T, bool) {
	return p.value, p.set
}

// MustGet returns the value, panicking when unset.
func (p Passive[T]) MustGet() T {
	if !p.set {
		panic("tank: Passive value is not set")
	}
	return p.value
}

// IsSet reports whether the value was set.
func (p Passive[T]) IsSet() bool {
	return p.set
}

// Assign sets the value in place.
func (p *Passive[T]) Assign(v T) {
	p.value, p.set = v, true
}

// Clear unsets the value.
func (p *Passive[T]) Clear() {
	var zero T
	p.value, p.set = zero, false
}

// passiveField is how reflection code sees a Passive of any T.
type passiveField interface {
	passiveValue() (any, bool)
	passiveType() reflect.Type
}

// passiveSetter is the pointer-receiver side of passiveField.
type passiveSetter interface {
	passiveSet(v reflect.Value)
	passiveClear()
}

func (p Passive[T]) passiveValue() (any, bool)  { return p.value, p.set }
func (p Passive[T]) passiveType() reflect.Type  { return reflect.TypeOf((*T)(nil)).Elem() }
func (p *Passive[T]) passiveSet(v reflect.Value) {
	p.value, p.set = v.Interface().(T), true
}
func (p *Passive[T]) passiveClear() { p.Clear() }

var (
	passiveFieldType  = reflect.TypeOf((*passiveField)(nil)).Elem()
	tableNamerType    = reflect.TypeOf((*TableNamer)(nil)).Elem()
	tableSchemerType  = reflect.TypeOf((*TableSchemer)(nil)).Elem()
)

// fieldLayout ties a column definition to the struct field it came from.
type fieldLayout struct {
	index   int
	column  *ColumnDef
	typ     reflect.Type
	passive bool
	pointer bool
}

// TableInfo is the full table description derived from an entity struct.
// It is computed once per type and cached.
type TableInfo struct {
	Table        TableRef
	Columns      []*ColumnDef
	PrimaryKey   []*ColumnDef
	UniqueGroups [][]*ColumnDef

	typ    reflect.Type
	fields []fieldLayout
}

var tableInfoCache sync.Map // reflect.Type -> *TableInfo

// TableOf returns the table description of the entity type E. Malformed
// tank tags panic: they are programming errors, not runtime conditions.
func TableOf[E any]() *TableInfo {
	t := reflect.TypeOf((*E)(nil)).Elem()
	if cached, ok := tableInfoCache.Load(t); ok {
		return cached.(*TableInfo)
	}
	info, err := describeTable(t)
	if err != nil {
		panic(err)
	}
	actual, _ := tableInfoCache.LoadOrStore(t, info)
	return actual.(*TableInfo)
}

// describeTable builds the TableInfo for a struct type.
func describeTable(t reflect.Type) (*TableInfo, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tank: entity %s is not a struct", t)
	}
	info := &TableInfo{typ: t}
	info.Table.Name = tableNameFor(t)
	if t.Implements(tableSchemerType) {
		info.Table.Schema = reflect.New(t).Elem().Interface().(TableSchemer).TableSchema()
	}
	uniqueGroups := map[string][]*ColumnDef{}
	var groupOrder []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("tank")
		if tag == "-" {
			continue
		}
		col, layout, err := describeColumn(f, tag)
		if err != nil {
			return nil, fmt.Errorf("tank: entity %s field %s: %w", t.Name(), f.Name, err)
		}
		col.Reference.Table = info.Table.Name
		col.Reference.Schema = info.Table.Schema
		layout.index = i
		layout.column = col
		info.Columns = append(info.Columns, col)
		info.fields = append(info.fields, layout)
		if col.PrimaryKey != NotPrimaryKey {
			info.PrimaryKey = append(info.PrimaryKey, col)
		}
		if col.UniqueGroup != "" {
			if _, ok := uniqueGroups[col.UniqueGroup]; !ok {
				groupOrder = append(groupOrder, col.UniqueGroup)
			}
			uniqueGroups[col.UniqueGroup] = append(uniqueGroups[col.UniqueGroup], col)
		}
	}
	if len(info.Columns) == 0 {
		return nil, fmt.Errorf("tank: entity %s has no columns", t.Name())
	}
	if len(info.PrimaryKey) == 1 && info.PrimaryKey[0].PrimaryKey == PartOfPrimaryKey {
		info.PrimaryKey[0].PrimaryKey = PrimaryKey
	}
	for _, g := range groupOrder {
		info.UniqueGroups = append(info.UniqueGroups, uniqueGroups[g])
	}
	return info, nil
}

func tableNameFor(t reflect.Type) string {
	if t.Implements(tableNamerType) {
		return reflect.New(t).Elem().Interface().(TableNamer).TableName()
	}
	return inflect.Underscore(strings.TrimPrefix(t.Name(), "_"))
}

// describeColumn parses one struct field and its tank tag.
func describeColumn(f reflect.StructField, tag string) (*ColumnDef, fieldLayout, error) {
	col := &ColumnDef{}
	layout := fieldLayout{typ: f.Type}

	ft := f.Type
	if ft.Implements(passiveFieldType) {
		layout.passive = true
		col.Passive = true
		ft = reflect.New(ft).Elem().Interface().(passiveField).passiveType()
	}
	if ft.Kind() == reflect.Pointer {
		layout.pointer = true
		col.Nullable = true
		ft = ft.Elem()
	}

	parts := splitTag(tag)
	name := ""
	if len(parts) > 0 {
		name = parts[0]
		parts = parts[1:]
	}
	if name == "" {
		name = inflect.Underscore(f.Name)
	}
	col.Reference.Name = name

	typeDirective := ""
	for _, p := range parts {
		key, arg, hasArg := strings.Cut(p, "=")
		switch key {
		case "":
		case "primary_key":
			col.PrimaryKey = PrimaryKey
		case "part_of_primary_key":
			col.PrimaryKey = PartOfPrimaryKey
		case "unique":
			col.Unique = true
			if hasArg {
				col.UniqueGroup = arg
			}
		case "auto_increment":
			col.AutoIncrement = true
			col.Passive = true
		case "nullable":
			col.Nullable = true
		case "default":
			col.Default, col.HasDefault = arg, true
		case "type":
			typeDirective = arg
		case "column_type":
			col.TypeOverride = arg
		case "comment":
			col.Comment = arg
		case "references":
			ref, err := parseReference(arg)
			if err != nil {
				return nil, layout, err
			}
			col.References = ref
		case "on_delete":
			if col.References == nil {
				return nil, layout, fmt.Errorf("on_delete without references")
			}
			col.References.OnDelete, col.References.HasDel = parseAction(arg), true
		case "on_update":
			if col.References == nil {
				return nil, layout, fmt.Errorf("on_update without references")
			}
			col.References.OnUpdate, col.References.HasUpd = parseAction(arg), true
		default:
			return nil, layout, fmt.Errorf("unknown tank tag directive %q", key)
		}
	}

	proto, err := prototypeFor(ft, typeDirective)
	if err != nil {
		return nil, layout, err
	}
	col.Value = proto
	return col, layout, nil
}

// splitTag splits on commas that are not inside parentheses.
func splitTag(tag string) []string {
	if tag == "" {
		return nil
	}
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(tag); i++ {
		switch tag[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, tag[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, tag[start:])
}

// parseReference parses "table(column)".
func parseReference(s string) (*Reference, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed references %q, want table(column)", s)
	}
	return &Reference{
		Table:  s[:open],
		Column: s[open+1 : len(s)-1],
	}, nil
}

func parseAction(s string) ReferenceAction {
	switch strings.ToLower(s) {
	case "restrict":
		return Restrict
	case "cascade":
		return CascadeAction
	case "set_null":
		return SetNull
	case "set_default":
		return SetDefault
	default:
		return NoAction
	}
}

// RowFull extracts every column value of the entity, in column order.
func (info *TableInfo) RowFull(entity any) ([]LabeledValue, error) {
	return info.row(entity, false)
}

// RowFiltered extracts column values, skipping unset Passive fields so the
// database can apply defaults.
func (info *TableInfo) RowFiltered(entity any) ([]LabeledValue, error) {
	return info.row(entity, true)
}

func (info *TableInfo) row(entity any, filtered bool) ([]LabeledValue, error) {
	rv, err := info.entityValue(entity)
	if err != nil {
		return nil, err
	}
	row := make([]LabeledValue, 0, len(info.fields))
	for _, fl := range info.fields {
		fv := rv.Field(fl.index)
		if fl.passive {
			inner, set := fv.Interface().(passiveField).passiveValue()
			if !set {
				if filtered {
					continue
				}
				row = append(row, LabeledValue{Name: fl.column.Name(), Value: fl.column.Value.AsEmpty()})
				continue
			}
			fv = reflect.ValueOf(inner)
		}
		v, err := valueFrom(fv, fl.column.Value)
		if err != nil {
			return nil, NewDecodeError(fl.column.Name(), fl.typ.String(), err)
		}
		row = append(row, LabeledValue{Name: fl.column.Name(), Value: v})
	}
	return row, nil
}

// PrimaryKeyValues extracts the primary key columns of the entity.
func (info *TableInfo) PrimaryKeyValues(entity any) ([]LabeledValue, error) {
	rv, err := info.entityValue(entity)
	if err != nil {
		return nil, err
	}
	if len(info.PrimaryKey) == 0 {
		return nil, NewContractError("entity %s has no primary key", info.typ.Name())
	}
	var row []LabeledValue
	for _, fl := range info.fields {
		if fl.column.PrimaryKey == NotPrimaryKey {
			continue
		}
		fv := rv.Field(fl.index)
		if fl.passive {
			inner, set := fv.Interface().(passiveField).passiveValue()
			if !set {
				return nil, NewContractError("primary key column %s of %s is not set",
					fl.column.Name(), info.typ.Name())
			}
			fv = reflect.ValueOf(inner)
		}
		v, err := valueFrom(fv, fl.column.Value)
		if err != nil {
			return nil, NewDecodeError(fl.column.Name(), fl.typ.String(), err)
		}
		row = append(row, LabeledValue{Name: fl.column.Name(), Value: v})
	}
	return row, nil
}

// PrimaryKeyCondition builds the WHERE expression matching the entity's key.
func (info *TableInfo) PrimaryKeyCondition(entity any) (Expr, error) {
	key, err := info.PrimaryKeyValues(entity)
	if err != nil {
		return nil, err
	}
	conds := make([]Expr, 0, len(key))
	for _, kv := range key {
		for _, c := range info.PrimaryKey {
			if c.Name() == kv.Name {
				conds = append(conds, Eq(&c.Reference, Variable(kv.Value)))
				break
			}
		}
	}
	return And(conds...), nil
}

// ColumnExprs returns the column references as a projection list.
func (info *TableInfo) ColumnExprs() []Expr {
	cols := make([]Expr, len(info.Columns))
	for i, c := range info.Columns {
		cols[i] = &c.Reference
	}
	return cols
}

// ColumnByName finds a column definition, nil when absent.
func (info *TableInfo) ColumnByName(name string) *ColumnDef {
	for _, c := range info.Columns {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

func (info *TableInfo) entityValue(entity any) (reflect.Value, error) {
	rv := reflect.ValueOf(entity)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Type() != info.typ {
		return reflect.Value{}, NewContractError("entity is %s, want %s", rv.Type(), info.typ)
	}
	return rv, nil
}

// Scan fills the entity's fields from a labeled row. Columns missing from
// the row are left untouched; labels with no matching column are ignored.
func (info *TableInfo) Scan(row *RowLabeled, entity any) error {
	rv := reflect.ValueOf(entity)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return NewContractError("scan target must be a non-nil pointer to %s", info.typ.Name())
	}
	rv = rv.Elem()
	if rv.Type() != info.typ {
		return NewContractError("scan target is %s, want %s", rv.Type(), info.typ)
	}
	for i, label := range row.Labels {
		var fl *fieldLayout
		for j := range info.fields {
			if info.fields[j].column.Name() == label {
				fl = &info.fields[j]
				break
			}
		}
		if fl == nil {
			continue
		}
		fv := rv.Field(fl.index)
		if fl.passive {
			if row.Values[i] == nil {
				fv.Addr().Interface().(passiveSetter).passiveClear()
				continue
			}
			inner := reflect.New(fv.Interface().(passiveField).passiveType()).Elem()
			if err := assignValue(inner, row.Values[i], fl.column); err != nil {
				return err
			}
			fv.Addr().Interface().(passiveSetter).passiveSet(inner)
			continue
		}
		if err := assignValue(fv, row.Values[i], fl.column); err != nil {
			return err
		}
	}
	return nil
}

// FromRow decodes a labeled row into a fresh entity.
func FromRow[E any](row *RowLabeled) (*E, error) {
	info := TableOf[E]()
	e := new(E)
	if err := info.Scan(row, e); err != nil {
		return nil, err
	}
	return e, nil
}

// label is the diagnostic name of the entity, used in error messages.
func (info *TableInfo) label() string {
	return info.typ.Name()
}
