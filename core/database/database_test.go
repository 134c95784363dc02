package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSQLiteInMemory(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	sqlDB.Close()
}

func TestConnectDefaultsToSQLite(t *testing.T) {
	db, err := Connect(Config{Path: ":memory:"})
	require.NoError(t, err)
	require.NotNil(t, db)
}

func TestConnectUnsupportedDriver(t *testing.T) {
	_, err := Connect(Config{Driver: "postgres"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestConnectMySQLUnreachable(t *testing.T) {
	_, err := Connect(Config{
		Driver:         "mysql",
		Host:           "127.0.0.1",
		Port:           1, // nothing listens here
		User:           "root",
		Name:           "gameshelf",
		TimeoutSeconds: 1,
	})
	assert.Error(t, err)
}
