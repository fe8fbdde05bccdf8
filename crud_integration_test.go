package tank_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tank "github.com/barsdeveloper/tank-sub000"
	_ "github.com/barsdeveloper/tank-sub000/dialect/duckdb"
)

type inventoryItem struct {
	SKU      string           `tank:"sku,primary_key"`
	Labels   []string         `tank:"labels"`
	Props    map[string]int32 `tank:"props"`
	Note     *string          `tank:"note"`
	Quantity int32            `tank:"quantity"`
}

// TestRoundTripDuckDB inserts entities with list, map and optional columns
// into an embedded database and reads them back by primary key.
func TestRoundTripDuckDB(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	conn, err := tank.Connect(ctx, "duckdb://")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, tank.CreateTable[inventoryItem](ctx, conn, false, false))

	note := "fragile"
	first := &inventoryItem{
		SKU:      "SKU-1",
		Labels:   []string{"warehouse", "export"},
		Props:    map[string]int32{"volume": 3, "weight": 12},
		Note:     &note,
		Quantity: 7,
	}
	second := &inventoryItem{
		SKU:    "SKU-2",
		Labels: []string{},
		Props:  map[string]int32{},
	}
	_, err = tank.InsertMany(ctx, conn, first, second)
	require.NoError(t, err)

	got, err := tank.FindPK[inventoryItem](ctx, conn, "SKU-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first, got)

	got, err = tank.FindPK[inventoryItem](ctx, conn, "SKU-2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Note)
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.Props)
	assert.Equal(t, int32(0), got.Quantity)

	got, err = tank.FindPK[inventoryItem](ctx, conn, "SKU-404")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, tank.DeleteOne(ctx, conn, first))
	err = tank.DeleteOne(ctx, conn, first)
	require.Error(t, err)
	assert.True(t, tank.IsNotFound(err))
}
