package db

import (
	"path/filepath"
	"testing"

	"finance_tracker/internal/config"
	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "test.db")}
	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	for _, model := range []any{&domain.User{}, &domain.Transaction{}, &domain.Reminder{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasIndex(&domain.User{}, "Email"))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
