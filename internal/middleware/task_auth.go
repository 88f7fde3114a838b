package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/constants"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
)

// TaskIDParam parses the task id route parameter. An id that cannot name a
// task is reported exactly like a task owned by someone else.
func TaskIDParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param(constants.ParamTaskID), 10, 64)
		if err != nil || taskID == 0 {
			apierrors.NotFound(c, constants.MsgTaskNotFound)
			return
		}

		c.Set(constants.ContextKeyTaskID, taskID)
		c.Next()
	}
}

// GetTaskID retrieves the task ID parsed by TaskIDParam
func GetTaskID(c *gin.Context) (uint64, bool) {
	taskID, exists := c.Get(constants.ContextKeyTaskID)
	if !exists {
		return 0, false
	}
	id, ok := taskID.(uint64)
	return id, ok
}
