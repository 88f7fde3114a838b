package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/database"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"gorm.io/gorm"
)

// HealthHandler reports whether the service can reach its store.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health pings the database.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		slog.WarnContext(c.Request.Context(), "health check failed", "error", err)
		apierrors.ServiceUnavailable(c, "Database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Task Tracker API is running",
	})
}
