package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks owned by the current user
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID)
	if err != nil {
		h.internalError(c, err, constants.MsgFailedToFetchTasks)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns one task owned by the current user
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, taskID, ok := h.identify(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID, userID)
	if err != nil {
		h.taskError(c, err, constants.MsgFailedToFetchTask)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return
	}

	var req dto.TaskRequest
	if err := bindJSON(c, &req); err != nil {
		h.internalError(c, err, constants.MsgFailedToCreateTask)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.internalError(c, err, constants.MsgFailedToCreateTask)
		return
	}

	slog.DebugContext(c.Request.Context(), "task created", "task_id", task.ID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: constants.MsgTaskCreated})
}

// UpdateTask replaces the title and description of an owned task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, taskID, ok := h.identify(c)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := bindJSON(c, &req); err != nil {
		h.internalError(c, err, constants.MsgFailedToUpdateTask)
		return
	}

	if _, err := h.taskService.UpdateTask(c.Request.Context(), taskID, userID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
	}); err != nil {
		h.taskError(c, err, constants.MsgFailedToUpdateTask)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgTaskUpdated})
}

// DeleteTask deletes an owned task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, taskID, ok := h.identify(c)
	if !ok {
		return
	}

	if _, err := h.taskService.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		h.taskError(c, err, constants.MsgFailedToDeleteTask)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: constants.MsgTaskDeleted})
}

// identify returns the caller and the task id from the route, responding
// on failure.
func (h *TaskHandler) identify(c *gin.Context) (uint64, uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c)
		return 0, 0, false
	}

	taskID, exists := middleware.GetTaskID(c)
	if !exists {
		apierrors.NotFound(c, constants.MsgTaskNotFound)
		return 0, 0, false
	}

	return userID, taskID, true
}

// taskError reports a missing or foreign task as 404 and anything else as 500.
func (h *TaskHandler) taskError(c *gin.Context, err error, message string) {
	if errors.Is(err, services.ErrTaskNotFound) {
		_ = c.Error(err)
		apierrors.NotFound(c, constants.MsgTaskNotFound)
		return
	}
	h.internalError(c, err, message)
}

func (h *TaskHandler) internalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	slog.ErrorContext(c.Request.Context(), message, "error", err)
	apierrors.InternalError(c, message)
}
