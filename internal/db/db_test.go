package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/garage-booking/internal/config"
	"github.com/BruksfildServices01/garage-booking/internal/models"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite"} {
		d, err := Dialector(driver, "dsn")
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector("oracle", "dsn")
	assert.Error(t, err)
}

func TestNewDBMigrates(t *testing.T) {
	cfg := &config.Config{
		DBDriver:       "sqlite",
		DBUrl:          "file:newdb_test?mode=memory&cache=shared",
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}

	gdb, err := NewDB(cfg, zap.NewNop())
	require.NoError(t, err)

	assert.True(t, gdb.Migrator().HasTable(&models.Service{}))
	assert.True(t, gdb.Migrator().HasTable(&models.AuditLog{}))
	assert.True(t, gdb.Migrator().HasIndex(&models.Booking{}, "uq_bookings_active_slot"))

	require.NoError(t, Ping(context.Background(), gdb))

	// migrating an existing schema is a no-op
	assert.NoError(t, Migrate(gdb))
}
