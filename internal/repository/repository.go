package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the lookup, including rows
	// that exist but belong to another owner.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("repository: duplicate record")
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts a user. Returns ErrDuplicate when the username is taken.
	Create(ctx context.Context, user *models.User) error

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// TaskRepository stores tasks. Every lookup after Create is filtered by the
// owner id supplied by the caller, so rows of other owners are unreachable.
type TaskRepository interface {
	// Create inserts a task for task.UserID
	Create(ctx context.Context, task *models.Task) error

	// ListByOwner returns every task owned by ownerID, oldest first. The slice
	// is empty, never nil, when the owner has no tasks.
	ListByOwner(ctx context.Context, ownerID uint64) ([]models.Task, error)

	// FindOne finds a task by ID within the owner's tasks
	FindOne(ctx context.Context, id, ownerID uint64) (*models.Task, error)

	// Update replaces title and description of an owned task
	Update(ctx context.Context, id, ownerID uint64, title, description string) (*models.Task, error)

	// Delete removes an owned task and returns it
	Delete(ctx context.Context, id, ownerID uint64) (*models.Task, error)
}

// translate maps gorm errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
