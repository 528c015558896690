package database

import (
	"context"
	"testing"

	"github.com/example/pastelaria-api/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_StartMigratesAndReportsHealth(t *testing.T) {
	db, err := store.Open(store.Config{Driver: store.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)

	m := NewModule(db, store.DriverSQLite)
	ctx := context.Background()
	require.NoError(t, m.Start(ctx))

	for _, table := range []string{"customers", "product_types", "products", "orders", "order_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	h := m.Health(ctx)
	assert.True(t, h.Healthy)
	assert.Equal(t, "sqlite", h.Details["driver"])

	require.NoError(t, m.Stop(ctx))
	require.NoError(t, store.Close(db))

	assert.False(t, m.Health(ctx).Healthy, "a closed database is unhealthy")
}
