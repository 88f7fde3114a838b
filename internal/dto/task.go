package dto

import (
	"time"

	"github.com/yukikurage/task-tracker/internal/models"
)

// CredentialsRequest is the body of register and login. Fields are not
// validated beyond presence.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TaskRequest is the body of task create and update.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MessageResponse acknowledges a successful mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uint64    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks. The result is empty, never nil, so
// it encodes as [] rather than null.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
