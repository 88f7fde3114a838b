package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/gorm"
)

// EnsureIndexes creates the lookup indexes declared on the models if the
// migrator did not already create them. Every owner-scoped query filters on
// tasks.user_id and every login filters on users.username.
func EnsureIndexes(db *gorm.DB) error {
	indexes := []struct {
		model any
		field string
	}{
		{&models.User{}, "Username"},
		{&models.Task{}, "UserID"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.field) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.field); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", idx.field, err)
		}
		slog.Info("created index", "field", idx.field)
	}

	return nil
}
