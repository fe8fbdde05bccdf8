package tank_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tank "github.com/barsdeveloper/tank-sub000"
)

type warehouseShelf struct {
	ID       tank.Passive[int64] `tank:"id,primary_key,auto_increment"`
	Aisle    int32               `tank:"aisle,unique=loc"`
	Position int32               `tank:"position,unique=loc"`
	Label    *string             `tank:"label"`
	Capacity int32               `tank:",default=10"`
	Ignored  string              `tank:"-"`
}

// TestTableOfMetadata checks name derivation, tag parsing, primary key and
// unique group collection.
func TestTableOfMetadata(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[warehouseShelf]()
	assert.Equal(t, "warehouse_shelf", info.Table.Name)
	assert.Empty(t, info.Table.Schema)

	names := make([]string, len(info.Columns))
	for i, c := range info.Columns {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{"id", "aisle", "position", "label", "capacity"}, names)

	require.Len(t, info.PrimaryKey, 1)
	id := info.PrimaryKey[0]
	assert.Equal(t, "id", id.Name())
	assert.True(t, id.AutoIncrement)
	assert.True(t, id.Passive)

	require.Len(t, info.UniqueGroups, 1)
	require.Len(t, info.UniqueGroups[0], 2)
	assert.Equal(t, "aisle", info.UniqueGroups[0][0].Name())
	assert.Equal(t, "position", info.UniqueGroups[0][1].Name())

	capacity := info.ColumnByName("capacity")
	require.NotNil(t, capacity)
	assert.True(t, capacity.HasDefault)
	assert.Equal(t, "10", capacity.Default)

	label := info.ColumnByName("label")
	require.NotNil(t, label)
	assert.True(t, label.Nullable)

	assert.Nil(t, info.ColumnByName("ignored"))
}

// TestTableOfOverrides checks the TableNamer and TableSchemer hooks.
func TestTableOfOverrides(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[employee]()
	assert.Equal(t, "employee", info.Table.Name)
	assert.Equal(t, "company", info.Table.Schema)
	assert.Equal(t, `"company"."employee"`, renderTableRef(t, &info.Table))
}

func renderTableRef(t *testing.T, ref *tank.TableRef) string {
	t.Helper()
	return render(func(w tank.SqlWriter, out *strings.Builder) {
		w.WriteTableRef(&tank.Context{}, out, ref)
	})
}

func TestTableOfReferences(t *testing.T) {
	t.Parallel()

	type shipment struct {
		ID      int64 `tank:"id,primary_key"`
		ShelfID int64 `tank:"shelf_id,references=warehouse_shelf(id),on_delete=cascade"`
	}
	info := tank.TableOf[shipment]()
	ref := info.ColumnByName("shelf_id").References
	require.NotNil(t, ref)
	assert.Equal(t, "warehouse_shelf", ref.Table)
	assert.Equal(t, "id", ref.Column)
	assert.True(t, ref.HasDel)
	assert.Equal(t, "CASCADE", ref.OnDelete.String())
	assert.False(t, ref.HasUpd)
}

func TestPassive(t *testing.T) {
	t.Parallel()

	var p tank.Passive[int64]
	assert.False(t, p.IsSet())
	_, ok := p.Get()
	assert.False(t, ok)

	p.Assign(42)
	assert.True(t, p.IsSet())
	assert.Equal(t, int64(42), p.MustGet())

	p.Clear()
	assert.False(t, p.IsSet())

	q := tank.Set("hello")
	v, ok := q.Get()
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

// TestRowFullAndFiltered checks that only the filtered row drops unset
// passive fields, while both render nil pointers as typed NULLs.
func TestRowFullAndFiltered(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[warehouseShelf]()
	shelf := &warehouseShelf{Aisle: 3, Position: 7}

	full, err := info.RowFull(shelf)
	require.NoError(t, err)
	require.Len(t, full, 5)
	assert.Equal(t, "id", full[0].Name)
	assert.True(t, full[0].Value.IsNull())
	assert.Equal(t, tank.KindInt64, full[0].Value.Kind())
	assert.True(t, full[3].Value.IsNull())
	assert.Equal(t, tank.KindVarchar, full[3].Value.Kind())

	filtered, err := info.RowFiltered(shelf)
	require.NoError(t, err)
	require.Len(t, filtered, 4)
	assert.Equal(t, "aisle", filtered[0].Name)
	assert.Equal(t, tank.Int32(3), filtered[0].Value)

	shelf.ID.Assign(12)
	filtered, err = info.RowFiltered(shelf)
	require.NoError(t, err)
	require.Len(t, filtered, 5)
	assert.Equal(t, tank.Int64(12), filtered[0].Value)
}

func TestPrimaryKeyValues(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[warehouseShelf]()

	_, err := info.PrimaryKeyValues(&warehouseShelf{})
	require.Error(t, err)
	assert.True(t, tank.IsContractError(err))

	key, err := info.PrimaryKeyValues(&warehouseShelf{ID: tank.Set[int64](9)})
	require.NoError(t, err)
	require.Len(t, key, 1)
	assert.Equal(t, tank.Int64(9), key[0].Value)
}

func TestPrimaryKeyCondition(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[armyTank]()
	cond, err := info.PrimaryKeyCondition(&armyTank{Name: "Tiger I"})
	require.NoError(t, err)
	assert.Equal(t, `"name" = 'Tiger I'`, render(func(w tank.SqlWriter, out *strings.Builder) {
		cond.WriteQuery(w, &tank.Context{}, out)
	}))
}

// TestScan checks labeled row decoding, including string timestamps, byte
// slice uuids and passive fields.
func TestScan(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[employee]()
	access := uuid.MustParse("b0fa843f-6ae4-4a16-a13c-ddf5512f3bb2")
	row := &tank.RowLabeled{
		Labels: []string{"id", "name", "hire_date", "salary", "skills", "access", "deleted", "extra"},
		Values: []any{int64(3), "Ada", "2024-01-15", 1250.5, []any{"go", "sql"}, access.String(), true, "ignored"},
	}

	var e employee
	require.NoError(t, info.Scan(row, &e))
	assert.Equal(t, uint32(3), e.ID)
	assert.Equal(t, "Ada", e.Name)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), e.HireDate)
	assert.Equal(t, 1250.5, e.Salary)
	assert.Equal(t, []string{"go", "sql"}, e.Skills)
	assert.Equal(t, access, e.Access.MustGet())
	assert.True(t, e.Deleted)
	assert.Nil(t, e.WorkingHours)
}

// TestScanNullClearsPassive checks NULL handling for passive and pointer
// fields.
func TestScanNullClearsPassive(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[employee]()
	e := employee{Access: tank.Set(uuid.New())}
	row := &tank.RowLabeled{
		Labels: []string{"access", "working_hours"},
		Values: []any{nil, nil},
	}
	require.NoError(t, info.Scan(row, &e))
	assert.False(t, e.Access.IsSet())
	assert.Nil(t, e.WorkingHours)
}

// TestScanNarrowing checks that a lossy numeric conversion fails instead of
// truncating.
func TestScanNarrowing(t *testing.T) {
	t.Parallel()

	type tiny struct {
		N int8 `tank:"n,primary_key"`
	}
	info := tank.TableOf[tiny]()

	var e tiny
	err := info.Scan(&tank.RowLabeled{Labels: []string{"n"}, Values: []any{int64(300)}}, &e)
	require.Error(t, err)
	assert.True(t, tank.IsDecodeError(err))
	assert.True(t, tank.IsConversionError(err))

	err = info.Scan(&tank.RowLabeled{Labels: []string{"n"}, Values: []any{int64(-5)}}, &e)
	require.NoError(t, err)
	assert.Equal(t, int8(-5), e.N)

	type unsigned struct {
		N uint16 `tank:"n,primary_key"`
	}
	uinfo := tank.TableOf[unsigned]()
	var u unsigned
	err = uinfo.Scan(&tank.RowLabeled{Labels: []string{"n"}, Values: []any{int64(-1)}}, &u)
	require.Error(t, err)
	assert.True(t, tank.IsConversionError(err))
}

func TestFromRow(t *testing.T) {
	t.Parallel()

	row := &tank.RowLabeled{
		Labels: []string{"name", "country", "caliber", "speed", "is_operational", "units_produced"},
		Values: []any{"Tiger I", "Germany", int64(88), 45.4, false, int64(1347)},
	}
	e, err := tank.FromRow[armyTank](row)
	require.NoError(t, err)
	assert.Equal(t, "Tiger I", e.Name)
	assert.Equal(t, int32(88), e.Caliber)
	require.NotNil(t, e.UnitsProduced)
	assert.Equal(t, int32(1347), *e.UnitsProduced)
}

// TestScanTarget checks target validation.
func TestScanTarget(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[armyTank]()
	row := &tank.RowLabeled{Labels: []string{"name"}, Values: []any{"x"}}

	err := info.Scan(row, armyTank{})
	require.Error(t, err)
	assert.True(t, tank.IsContractError(err))

	err = info.Scan(row, &employee{})
	require.Error(t, err)
	assert.True(t, tank.IsContractError(err))
}
