package sqlite_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	tank "github.com/barsdeveloper/tank-sub000"
	"github.com/barsdeveloper/tank-sub000/dialect/sqlite"
)

type ledgerEntry struct {
	ID       int64     `tank:"id,primary_key"`
	Amount   float64   `tank:"amount"`
	Note     *string   `tank:"note,comment=free text"`
	Attached []byte    `tank:"attached"`
	PostedAt time.Time `tank:"posted_at,type=date"`
}

func (ledgerEntry) TableName() string   { return "ledger_entry" }
func (ledgerEntry) TableSchema() string { return "accounting" }

func render(f func(w tank.SqlWriter, out *strings.Builder)) string {
	var out strings.Builder
	f(sqlite.NewWriter(), &out)
	return out.String()
}

// TestWriteTableRef folds the schema into the table identifier, SQLite has
// no schemas of its own.
func TestWriteTableRef(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[ledgerEntry]()
	out := render(func(w tank.SqlWriter, out *strings.Builder) {
		w.WriteTableRef(&tank.Context{}, out, &info.Table)
	})
	assert.Equal(t, `"accounting.ledger_entry"`, out)
}

func TestWriteColumnRefQualified(t *testing.T) {
	t.Parallel()

	ref := &tank.ColumnRef{Name: "id", Table: "ledger_entry", Schema: "accounting"}
	out := render(func(w tank.SqlWriter, out *strings.Builder) {
		w.WriteColumnRef(&tank.Context{QualifyColumns: true}, out, ref)
	})
	assert.Equal(t, `"accounting.ledger_entry"."id"`, out)

	out = render(func(w tank.SqlWriter, out *strings.Builder) {
		w.WriteColumnRef(&tank.Context{}, out, ref)
	})
	assert.Equal(t, `"id"`, out)
}

// TestWriteCreateTable collapses every type onto the storage affinities and
// drops the comment statements.
func TestWriteCreateTable(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[ledgerEntry]()
	out := render(func(w tank.SqlWriter, out *strings.Builder) {
		w.WriteCreateTable(out, info, false)
	})
	assert.Equal(t, `CREATE TABLE "accounting.ledger_entry" (
"id" INTEGER PRIMARY KEY,
"amount" REAL NOT NULL,
"note" TEXT,
"attached" BLOB NOT NULL,
"posted_at" TEXT NOT NULL
);`, out)
}

func TestWriteColumnTypes(t *testing.T) {
	t.Parallel()

	cases := map[string]tank.Value{
		"INTEGER":    tank.Empty(tank.KindUInt64),
		"REAL":       tank.Empty(tank.KindFloat32),
		"REAL(10,2)": tank.DecimalType(10, 2),
		"TEXT":       tank.Empty(tank.KindTimestampTZ),
		"BLOB":       tank.Empty(tank.KindBlob),
	}
	for want, v := range cases {
		out := render(func(w tank.SqlWriter, out *strings.Builder) {
			w.WriteColumnType(&tank.Context{}, out, v)
		})
		assert.Equal(t, want, out)
	}
}

func TestWriteValues(t *testing.T) {
	t.Parallel()

	blob := render(func(w tank.SqlWriter, out *strings.Builder) {
		w.WriteValue(&tank.Context{}, out, tank.Blob([]byte{0xAB, 0x01}))
	})
	assert.Equal(t, "X'AB1'", blob)

	inf := render(func(w tank.SqlWriter, out *strings.Builder) {
		w.WriteValue(&tank.Context{}, out, tank.Float64(math.Inf(-1)))
	})
	assert.Equal(t, "-1.0e+10000", inf)
}

// TestSchemaStatementsAreNoOps emits nothing for CREATE and DROP SCHEMA.
func TestSchemaStatementsAreNoOps(t *testing.T) {
	t.Parallel()

	out := render(func(w tank.SqlWriter, out *strings.Builder) {
		w.WriteCreateSchema(out, "accounting", true)
		w.WriteDropSchema(out, "accounting", true)
	})
	assert.Empty(t, out)
}
