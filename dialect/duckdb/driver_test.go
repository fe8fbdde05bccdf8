package duckdb

import (
	"database/sql/driver"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tank "github.com/barsdeveloper/tank-sub000"
	duckdbgo "github.com/duckdb/duckdb-go/v2"
)

// TestAppendArg lowers values into what the native appender accepts.
func TestAppendArg(t *testing.T) {
	t.Parallel()

	v, err := appendArg(tank.Empty(tank.KindInt32))
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = appendArg(tank.Int64(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = appendArg(tank.Varchar("bolt"))
	require.NoError(t, err)
	assert.Equal(t, "bolt", v)

	v, err = appendArg(tank.IntervalValue(tank.NewInterval(1, 2, 3_000)))
	require.NoError(t, err)
	assert.Equal(t, duckdbgo.Interval{Months: 1, Days: 2, Micros: 3}, v)

	v, err = appendArg(tank.Char('x'))
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	id := uuid.MustParse("b0fa843f-6ae4-4a16-a13c-ddf5512f3bb2")
	v, err = appendArg(tank.UUID(id))
	require.NoError(t, err)
	assert.Equal(t, id.String(), v)

	v, err = appendArg(tank.ListOf(tank.Empty(tank.KindInt32), tank.Int32(1), tank.Int32(2)))
	require.NoError(t, err)
	assert.Equal(t, []driver.Value{int32(1), int32(2)}, v)

	_, err = appendArg(tank.MapOf(tank.Empty(tank.KindVarchar), tank.Empty(tank.KindInt32)))
	require.Error(t, err)
	assert.True(t, tank.IsConversionError(err))
}
