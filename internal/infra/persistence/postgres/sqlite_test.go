package postgres

import (
	"testing"

	"depot/internal/infra/persistence/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a per-test in-memory database carrying the full schema.
// A single pooled connection keeps concurrent test writers queued instead of
// tripping over SQLite's write lock.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.BrandModel{},
		&model.ProductModel{},
		&model.RetailerModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
		&model.SequenceModel{},
	))

	return db
}
