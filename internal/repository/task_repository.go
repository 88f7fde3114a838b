package repository

import (
	"context"

	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return translate(r.db.WithContext(ctx).Create(task).Error)
}

// ListByOwner retrieves all tasks of one owner
func (r *GormTaskRepository) ListByOwner(ctx context.Context, ownerID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Scopes(database.OwnedBy(ownerID), database.CreationOrder).
		Find(&tasks).Error; err != nil {
		return nil, translate(err)
	}
	return tasks, nil
}

// FindOne finds an owned task by ID
func (r *GormTaskRepository) FindOne(ctx context.Context, id, ownerID uint64) (*models.Task, error) {
	return r.findOne(r.db.WithContext(ctx), id, ownerID)
}

// Update loads the owned task, replaces its fields and saves it. The read and
// the write are separate statements; concurrent updates are last-write-wins.
func (r *GormTaskRepository) Update(ctx context.Context, id, ownerID uint64, title, description string) (*models.Task, error) {
	db := r.db.WithContext(ctx)

	task, err := r.findOne(db, id, ownerID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = description
	if err := db.Save(task).Error; err != nil {
		return nil, translate(err)
	}
	return task, nil
}

// Delete soft deletes an owned task
func (r *GormTaskRepository) Delete(ctx context.Context, id, ownerID uint64) (*models.Task, error) {
	db := r.db.WithContext(ctx)

	task, err := r.findOne(db, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := db.Scopes(database.OwnedBy(ownerID)).Delete(task).Error; err != nil {
		return nil, translate(err)
	}
	return task, nil
}

func (r *GormTaskRepository) findOne(db *gorm.DB, id, ownerID uint64) (*models.Task, error) {
	var task models.Task
	if err := db.Scopes(database.OwnedBy(ownerID)).First(&task, id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}
