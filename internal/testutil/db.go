// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret is a signing secret long enough for the token service.
const JWTSecret = "test-secret-0123456789abcdef0123456789"

// NewTestDB opens a migrated in-memory SQLite database that lives for the
// duration of the test. The pool is pinned to one connection because every
// new connection to ":memory:" would see an empty database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user with a placeholder hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTask inserts a task owned by ownerID.
func CreateTask(t *testing.T, db *gorm.DB, ownerID uint64, title, description string) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:       title,
		Description: description,
		UserID:      ownerID,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}
