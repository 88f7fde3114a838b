package constants

// Context and header keys
const (
	ContextKeyTaskID    = "task_id"
	ContextKeyRequestID = "request_id"

	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	BearerScheme        = "Bearer"
)

// Route parameters
const (
	ParamTaskID = "taskId"
)

// Response messages
const (
	MsgUserRegistered = "User registered successfully"
	MsgTaskCreated    = "Task created successfully"
	MsgTaskUpdated    = "Task updated successfully"
	MsgTaskDeleted    = "Task deleted successfully"

	MsgAuthenticationFailed = "Authentication failed"
	MsgTaskNotFound         = "Task not found"

	MsgFailedToRegister     = "Failed to register user"
	MsgFailedToAuthenticate = "Failed to authenticate"
	MsgFailedToCreateTask   = "Failed to create task"
	MsgFailedToFetchTasks   = "Failed to fetch tasks"
	MsgFailedToFetchTask    = "Failed to fetch task"
	MsgFailedToUpdateTask   = "Failed to update task"
	MsgFailedToDeleteTask   = "Failed to delete task"
)

// MinJWTSecretLength is the shortest signing secret accepted at startup.
const MinJWTSecretLength = 32
