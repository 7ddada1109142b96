package database

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/core/internal/infrastructure/config"
)

func TestOpenStore_Memory(t *testing.T) {
	store, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory})
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, store.Driver)
	assert.NotNil(t, store.Users)
	assert.NotNil(t, store.Tasks)
	require.NoError(t, store.HealthCheck(context.Background()))
	require.NoError(t, store.Close(context.Background()))
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), config.DatabaseConfig{Driver: "sqlite"})
	require.Error(t, err)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))

	users, err := fs.ReadFile(migrationFiles, "migrations/000001_create_users.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(users), "UNIQUE (email)")
}
