package tank

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// CreateTable creates the table of entity E, optionally together with its
// schema. Column comments follow as separate statements on dialects that
// need them.
func CreateTable[E any](ctx context.Context, ex Executor, ifNotExists, createSchema bool) error {
	info := TableOf[E]()
	w := ex.Driver().Writer()
	var out strings.Builder
	if createSchema && info.Table.Schema != "" {
		w.WriteCreateSchema(&out, info.Table.Schema, ifNotExists)
	}
	w.WriteCreateTable(&out, info, ifNotExists)
	_, err := ex.Execute(ctx, NewQuery(out.String()))
	return err
}

// DropTable drops the table of entity E.
func DropTable[E any](ctx context.Context, ex Executor, ifExists bool) error {
	info := TableOf[E]()
	var out strings.Builder
	ex.Driver().Writer().WriteDropTable(&out, info, ifExists)
	_, err := ex.Execute(ctx, NewQuery(out.String()))
	return err
}

// InsertOne inserts a single entity. Unset Passive fields are omitted so
// the database fills them from defaults.
func InsertOne[E any](ctx context.Context, ex Executor, entity *E) (*RowsAffected, error) {
	return insert(ctx, ex, TableOf[E](), []any{entity}, false)
}

// InsertMany inserts entities in one multi-row statement. Columns an
// entity leaves unset become DEFAULT.
func InsertMany[E any](ctx context.Context, ex Executor, entities ...*E) (*RowsAffected, error) {
	anys := make([]any, len(entities))
	for i, e := range entities {
		anys[i] = e
	}
	return insert(ctx, ex, TableOf[E](), anys, false)
}

// Save upserts the entity: insert, or update every non-key column when the
// primary key already exists.
func Save[E any](ctx context.Context, ex Executor, entity *E) (*RowsAffected, error) {
	return insert(ctx, ex, TableOf[E](), []any{entity}, true)
}

func insert(ctx context.Context, ex Executor, info *TableInfo, entities []any, update bool) (*RowsAffected, error) {
	if len(entities) == 0 {
		return &RowsAffected{}, nil
	}
	rows := make([][]LabeledValue, len(entities))
	for i, e := range entities {
		row, err := info.RowFiltered(e)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	var out strings.Builder
	ex.Driver().Writer().WriteInsert(&out, info, rows, update)
	return ex.Execute(ctx, NewQuery(out.String()))
}

// AppendRows bulk-loads entities. Drivers with a native append path get to
// use it; everyone else falls back to a multi-row INSERT.
func AppendRows[E any](ctx context.Context, ex Executor, entities ...*E) error {
	if len(entities) == 0 {
		return nil
	}
	conn, isConn := ex.(*Connection)
	appender, hasAppender := ex.Driver().(RowAppender)
	if isConn && hasAppender {
		info := TableOf[E]()
		rows := make([][]LabeledValue, len(entities))
		for i, e := range entities {
			row, err := info.RowFull(e)
			if err != nil {
				return err
			}
			rows[i] = row
		}
		return appender.AppendRows(ctx, conn.Raw(), info, rows)
	}
	_, err := InsertMany(ctx, ex, entities...)
	return err
}

// FindPK fetches the entity with the given primary key values, in column
// order. It returns nil without error when no row matches.
func FindPK[E any](ctx context.Context, ex Executor, key ...any) (*E, error) {
	info := TableOf[E]()
	if len(key) != len(info.PrimaryKey) {
		return nil, NewContractError("%s has %d primary key columns, got %d values",
			info.label(), len(info.PrimaryKey), len(key))
	}
	conds := make([]Expr, len(key))
	for i, k := range key {
		v, err := valueFromAny(k, info.PrimaryKey[i].Value)
		if err != nil {
			return nil, NewBindError(i, err)
		}
		conds[i] = Eq(&info.PrimaryKey[i].Reference, Variable(v))
	}
	return FindOne[E](ctx, ex, And(conds...))
}

// FindOne fetches the first entity matching the condition, nil without
// error when none does.
func FindOne[E any](ctx context.Context, ex Executor, condition Expr) (*E, error) {
	info := TableOf[E]()
	var out strings.Builder
	ex.Driver().Writer().WriteSelect(&out, info.ColumnExprs(), &info.Table, condition, 1)
	row, err := ex.Fetch(ctx, NewQuery(out.String())).One()
	if err != nil || row == nil {
		return nil, err
	}
	return FromRow[E](row)
}

// FindMany streams every entity matching the condition. A negative limit
// means no limit.
func FindMany[E any](ctx context.Context, ex Executor, condition Expr, limit int) *EntityStream[E] {
	info := TableOf[E]()
	var out strings.Builder
	ex.Driver().Writer().WriteSelect(&out, info.ColumnExprs(), &info.Table, condition, limit)
	return &EntityStream[E]{rows: ex.Fetch(ctx, NewQuery(out.String()))}
}

// PrepareFind readies a reusable lookup with placeholder parameters in its
// condition. Bind arguments on the returned query before each Fetch.
func PrepareFind[E any](ctx context.Context, ex Executor, condition Expr, limit int) (*Query, error) {
	info := TableOf[E]()
	var out strings.Builder
	ex.Driver().Writer().WriteSelect(&out, info.ColumnExprs(), &info.Table, condition, limit)
	return ex.Prepare(ctx, out.String())
}

// DeleteOne deletes exactly the given entity by its primary key. A key that
// matches no row is a NotFoundError; removing more than one row is a broken
// guarantee and reported as such.
func DeleteOne[E any](ctx context.Context, ex Executor, entity *E) error {
	info := TableOf[E]()
	key, err := info.PrimaryKeyValues(entity)
	if err != nil {
		return err
	}
	cond, err := info.PrimaryKeyCondition(entity)
	if err != nil {
		return err
	}
	var out strings.Builder
	ex.Driver().Writer().WriteDelete(&out, info, cond)
	res, err := ex.Execute(ctx, NewQuery(out.String()))
	if err != nil {
		return err
	}
	switch res.RowsAffected {
	case 1:
		return nil
	case 0:
		return NewNotFoundErrorWithID(info.label(), keyDescription(key))
	default:
		return NewContractError("expected to delete exactly one %s, deleted %d",
			info.label(), res.RowsAffected)
	}
}

// keyDescription flattens primary key values for error reporting.
func keyDescription(key []LabeledValue) any {
	if len(key) == 1 {
		return key[0].Value.Payload()
	}
	parts := make([]string, len(key))
	for i, kv := range key {
		parts[i] = fmt.Sprintf("%s=%v", kv.Name, kv.Value.Payload())
	}
	return strings.Join(parts, ", ")
}

// DeleteMany deletes every row matching the condition and reports how many
// went away. A nil condition deletes all rows.
func DeleteMany[E any](ctx context.Context, ex Executor, condition Expr) (int64, error) {
	info := TableOf[E]()
	var out strings.Builder
	ex.Driver().Writer().WriteDelete(&out, info, condition)
	res, err := ex.Execute(ctx, NewQuery(out.String()))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// valueFromAny wraps an arbitrary Go value into a Value of the prototype's
// type. Values pass through when they already have the right type.
func valueFromAny(v any, proto Value) (Value, error) {
	if val, ok := v.(Value); ok {
		if !val.SameType(proto) {
			return Value{}, NewConversionError(val.Kind().String(), proto.Kind().String())
		}
		return val, nil
	}
	return valueFrom(reflect.ValueOf(v), proto)
}

// EntityStream yields decoded entities one at a time.
type EntityStream[E any] struct {
	rows    *RowStream
	current *E
	err     error
}

// Next advances the stream, decoding the next row.
func (s *EntityStream[E]) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.rows.Next() {
		return false
	}
	e, err := FromRow[E](s.rows.Row())
	if err != nil {
		s.err = err
		s.rows.Close()
		return false
	}
	s.current = e
	return true
}

// Entity returns the entity decoded by the last successful Next.
func (s *EntityStream[E]) Entity() *E {
	return s.current
}

// Err returns the first error the stream hit.
func (s *EntityStream[E]) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.rows.Err()
}

// Close releases the underlying cursor.
func (s *EntityStream[E]) Close() error {
	return s.rows.Close()
}

// All drains the stream into a slice, closing it.
func (s *EntityStream[E]) All() ([]*E, error) {
	defer s.Close()
	var entities []*E
	for s.Next() {
		entities = append(entities, s.current)
	}
	return entities, s.Err()
}
