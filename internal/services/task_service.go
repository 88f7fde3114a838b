package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic. The owner id always comes from
// the authenticated identity, never from the request body or path.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// TaskInput carries the editable fields of a task.
type TaskInput struct {
	Title       string
	Description string
}

// CreateTask creates a task owned by ownerID
func (s *TaskService) CreateTask(ctx context.Context, ownerID uint64, input TaskInput) (*models.Task, error) {
	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		UserID:      ownerID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// ListTasks returns every task owned by ownerID
func (s *TaskService) ListTasks(ctx context.Context, ownerID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns one owned task
func (s *TaskService) GetTask(ctx context.Context, taskID, ownerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindOne(ctx, taskID, ownerID)
	if err != nil {
		return nil, mapTaskError(err, "failed to get task")
	}
	return task, nil
}

// UpdateTask replaces the title and description of an owned task
func (s *TaskService) UpdateTask(ctx context.Context, taskID, ownerID uint64, input TaskInput) (*models.Task, error) {
	task, err := s.taskRepo.Update(ctx, taskID, ownerID, input.Title, input.Description)
	if err != nil {
		return nil, mapTaskError(err, "failed to update task")
	}
	return task, nil
}

// DeleteTask deletes an owned task
func (s *TaskService) DeleteTask(ctx context.Context, taskID, ownerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.Delete(ctx, taskID, ownerID)
	if err != nil {
		return nil, mapTaskError(err, "failed to delete task")
	}
	return task, nil
}

func mapTaskError(err error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("%s: %w", action, err)
}
