package postgres_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	tank "github.com/barsdeveloper/tank-sub000"
	"github.com/barsdeveloper/tank-sub000/dialect/postgres"
)

func render(f func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder)) string {
	var out strings.Builder
	f(postgres.NewWriter(), &tank.Context{}, &out)
	return out.String()
}

func TestWriteColumnTypes(t *testing.T) {
	t.Parallel()

	cases := map[string]tank.Value{
		"SMALLINT":                 tank.Empty(tank.KindUInt8),
		"INTEGER":                  tank.Empty(tank.KindUInt16),
		"BIGINT":                   tank.Empty(tank.KindUInt32),
		"NUMERIC(19)":              tank.Empty(tank.KindUInt64),
		"NUMERIC(38)":              tank.Empty(tank.KindInt128),
		"NUMERIC(10,2)":            tank.DecimalType(10, 2),
		"CHARACTER(1)":             tank.Empty(tank.KindChar),
		"TEXT":                     tank.Empty(tank.KindVarchar),
		"BYTEA":                    tank.Empty(tank.KindBlob),
		"TIMESTAMP WITH TIME ZONE": tank.Empty(tank.KindTimestampTZ),
		"INTEGER[]":                tank.ListType(tank.Empty(tank.KindInt32)),
		"TEXT[3]":                  tank.ArrayType(tank.Empty(tank.KindVarchar), 3),
		"BOOLEAN":                  tank.Empty(tank.KindBool),
	}
	for want, v := range cases {
		out := render(func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder) {
			w.WriteColumnType(ctx, out, v)
		})
		assert.Equal(t, want, out)
	}
}

// TestWriteValueList spells lists as ARRAY literals with an explicit cast.
func TestWriteValueList(t *testing.T) {
	t.Parallel()

	list := tank.ListOf(tank.Empty(tank.KindInt32), tank.Int32(1), tank.Int32(2))
	out := render(func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder) {
		w.WriteValue(ctx, out, list)
	})
	assert.Equal(t, "ARRAY[1,2]::INTEGER[]", out)
}

func TestWriteValueBlob(t *testing.T) {
	t.Parallel()

	out := render(func(w tank.SqlWriter, ctx *tank.Context, out *strings.Builder) {
		w.WriteValue(ctx, out, tank.Blob([]byte{0xAB, 0xCD}))
	})
	assert.Equal(t, `'\xABCD'`, out)
}

// TestWritePlaceholder numbers placeholders through the shared context, so
// one statement counts up without gaps.
func TestWritePlaceholder(t *testing.T) {
	t.Parallel()

	w := postgres.NewWriter()
	ctx := &tank.Context{}
	var out strings.Builder
	w.WritePlaceholder(ctx, &out)
	out.WriteString(", ")
	w.WritePlaceholder(ctx, &out)
	out.WriteString(", ")
	w.WritePlaceholder(ctx, &out)
	assert.Equal(t, "$1, $2, $3", out.String())
}
