package mysql_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tank "github.com/barsdeveloper/tank-sub000"
	"github.com/barsdeveloper/tank-sub000/dialect/mysql"
)

type metric struct {
	Name     string            `tank:"name,primary_key"`
	Window   tank.Interval     `tank:"window"`
	Samples  []float64         `tank:"samples"`
	Labels   map[string]string `tank:"labels"`
	HelpText string            `tank:"help_text,comment=shown in the UI"`
}

func (metric) TableName() string { return "metric" }

func render(f func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder)) string {
	var out strings.Builder
	f(mysql.NewWriter(), &tank.Context{}, &out)
	return out.String()
}

func renderValue(v tank.Value) string {
	return render(func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder) {
		w.WriteValue(ctx, out, v)
	})
}

// TestWriteIdentifierQuoted uses backticks, doubling embedded ones.
func TestWriteIdentifierQuoted(t *testing.T) {
	t.Parallel()

	out := render(func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder) {
		w.WriteIdentifierQuoted(ctx, out, "we`ird")
	})
	assert.Equal(t, "`we``ird`", out)
}

func TestWriteColumnTypes(t *testing.T) {
	t.Parallel()

	cases := map[string]tank.Value{
		"BOOLEAN":              tank.Empty(tank.KindBool),
		"TINYINT UNSIGNED":     tank.Empty(tank.KindUInt8),
		"INTEGER UNSIGNED":     tank.Empty(tank.KindUInt32),
		"NUMERIC(39)":          tank.Empty(tank.KindInt128),
		"NUMERIC(39) UNSIGNED": tank.Empty(tank.KindUInt128),
		"DECIMAL(10,2)":        tank.DecimalType(10, 2),
		"TEXT":                 tank.Empty(tank.KindVarchar),
		"DATETIME":             tank.Empty(tank.KindTimestampTZ),
		"TIME":                 tank.Empty(tank.KindInterval),
		"CHAR(36)":             tank.Empty(tank.KindUUID),
		"JSON":                 tank.ListType(tank.Empty(tank.KindInt32)),
	}
	for want, v := range cases {
		out := render(func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder) {
			w.WriteColumnType(ctx, out, v)
		})
		assert.Equal(t, want, out)
	}
}

// TestWriteValueInterval spells intervals as signed TIME values, months at
// thirty days.
func TestWriteValueInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "'25:00:00'", renderValue(tank.IntervalValue(tank.FromHours(25))))
	assert.Equal(t, "'720:00:00'", renderValue(tank.IntervalValue(tank.FromMonths(1))))
	assert.Equal(t, "'0:00:01.5'", renderValue(tank.IntervalValue(tank.FromMillis(1500))))
	assert.Equal(t, "'0:00:00'", renderValue(tank.IntervalValue(tank.Interval{})))
}

// TestWriteValueListAndMap stores nested values as quoted JSON, nesting
// without requoting.
func TestWriteValueListAndMap(t *testing.T) {
	t.Parallel()

	list := tank.ListOf(tank.Empty(tank.KindVarchar), tank.Varchar("x"), tank.Varchar("y"))
	assert.Equal(t, `'["x","y"]'`, renderValue(list))

	m := tank.MapOf(tank.Empty(tank.KindVarchar), tank.Empty(tank.KindInt32),
		tank.MapEntry{Key: tank.Varchar("a"), Value: tank.Int32(1)})
	assert.Equal(t, `'{"a":1}'`, renderValue(m))

	nested := tank.ListOf(tank.ListType(tank.Empty(tank.KindInt32)),
		tank.ListOf(tank.Empty(tank.KindInt32), tank.Int32(1), tank.Int32(2)),
		tank.ListOf(tank.Empty(tank.KindInt32), tank.Int32(3)))
	assert.Equal(t, `'[[1,2],[3]]'`, renderValue(nested))
}

// TestWriteCreateTable spells comments inline and JSON for containers.
func TestWriteCreateTable(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[metric]()
	out := render(func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder) {
		w.WriteCreateTable(out, info, false)
	})
	assert.Equal(t, "CREATE TABLE `metric` (\n"+
		"`name` TEXT PRIMARY KEY,\n"+
		"`window` TIME NOT NULL,\n"+
		"`samples` JSON NOT NULL,\n"+
		"`labels` JSON NOT NULL,\n"+
		"`help_text` TEXT NOT NULL COMMENT 'shown in the UI'\n"+
		");", out)
}

// TestWriteInsertUpdateFragment uses ON DUPLICATE KEY UPDATE instead of ON
// CONFLICT.
func TestWriteInsertUpdateFragment(t *testing.T) {
	t.Parallel()

	info := tank.TableOf[metric]()
	row, err := info.RowFiltered(&metric{Name: "latency", HelpText: "p99"})
	require.NoError(t, err)
	out := render(func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder) {
		w.WriteInsert(out, info, [][]tank.LabeledValue{row}, true)
	})
	assert.True(t, strings.HasSuffix(out, "\nON DUPLICATE KEY UPDATE\n"+
		"`window` = VALUES(`window`),\n"+
		"`samples` = VALUES(`samples`),\n"+
		"`labels` = VALUES(`labels`),\n"+
		"`help_text` = VALUES(`help_text`);"), out)
}
