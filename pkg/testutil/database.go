package testutil

import (
	"context"
	"testing"

	"github.com/questx-lab/questkit/internal/entity"
	"github.com/questx-lab/questkit/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory database. Every connection to
// ":memory:" opens a new empty database, so the pool is limited to one.
func NewTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, entity.MigrateTable(db))
	return db
}

// MockContext returns a context carrying a fresh test database.
func MockContext(t *testing.T) context.Context {
	return xcontext.WithDB(context.Background(), NewTestDB(t))
}
