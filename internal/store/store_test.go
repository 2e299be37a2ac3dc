package store

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piensaperu/api/internal/config"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := config.Defaults().Database
	cfg.Driver = "mysql"

	s, err := Open(context.Background(), cfg, slog.New(slog.DiscardHandler))

	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), `"mysql"`)
}

func TestOpen_Postgres_InvalidDSN(t *testing.T) {
	cfg := config.Defaults().Database
	cfg.Driver = config.DriverPostgres
	cfg.PostgresDSN = "postgres://%zz"

	_, err := Open(context.Background(), cfg, slog.New(slog.DiscardHandler))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse postgres dsn")
}

func TestStore_Close_WithoutConnection(t *testing.T) {
	assert.NoError(t, (&Store{}).Close())
}
