package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/auth"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
	"github.com/yukikurage/task-tracker/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errConnRefused = errors.New("connection refused")

// newMockDB returns a postgres-dialect gorm handle backed by sqlmock.
// With pings monitored, the ping issued by gorm.Open is expected up front.
func newMockDB(t *testing.T, monitorPings bool) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(monitorPings))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	if monitorPings {
		mock.ExpectPing()
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), database.GormConfig(logger.Silent))
	require.NoError(t, err)
	return db, mock
}

func newMockTaskHandler(t *testing.T) (*TaskHandler, sqlmock.Sqlmock) {
	db, mock := newMockDB(t, false)
	return NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(db))), mock
}

func serveWithUser(handler gin.HandlerFunc, method, body string, userID, taskID uint64) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, "/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req.WithContext(auth.WithUserID(req.Context(), userID))
	if taskID != 0 {
		c.Set(constants.ContextKeyTaskID, taskID)
	}

	handler(c)
	return w
}

func TestTaskHandler_StoreFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list", func(t *testing.T) {
		h, mock := newMockTaskHandler(t)
		mock.ExpectQuery(`SELECT \* FROM "tasks"`).WillReturnError(errConnRefused)

		w := serveWithUser(h.ListTasks, http.MethodGet, "", 1, 0)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch tasks"}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get", func(t *testing.T) {
		h, mock := newMockTaskHandler(t)
		mock.ExpectQuery(`SELECT \* FROM "tasks"`).WillReturnError(errConnRefused)

		w := serveWithUser(h.GetTask, http.MethodGet, "", 1, 7)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch task"}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create", func(t *testing.T) {
		h, mock := newMockTaskHandler(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "tasks"`).WillReturnError(errConnRefused)
		mock.ExpectRollback()

		w := serveWithUser(h.CreateTask, http.MethodPost, `{"title":"t"}`, 1, 0)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to create task"}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update", func(t *testing.T) {
		h, mock := newMockTaskHandler(t)
		mock.ExpectQuery(`SELECT \* FROM "tasks"`).WillReturnError(errConnRefused)

		w := serveWithUser(h.UpdateTask, http.MethodPut, `{"title":"t"}`, 1, 7)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to update task"}`, w.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		h, mock := newMockTaskHandler(t)
		mock.ExpectQuery(`SELECT \* FROM "tasks"`).WillReturnError(errConnRefused)

		w := serveWithUser(h.DeleteTask, http.MethodDelete, "", 1, 7)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to delete task"}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		h, _ := newMockTaskHandler(t)

		w := serveWithUser(h.CreateTask, http.MethodPost, `{"title":`, 1, 0)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to create task"}`, w.Body.String())
	})
}

func TestAuthHandler_LoginStoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock := newMockDB(t, false)
	tokens, err := auth.NewJWTService(testutil.JWTSecret, 0)
	require.NoError(t, err)
	handler := NewAuthHandler(services.NewAuthService(repository.NewUserRepository(db), auth.NewBcryptHasher(bcrypt.MinCost), tokens))

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errConnRefused)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(`{"username":"alice","password":"pw1"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to authenticate"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(testutil.NewTestDB(t))
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

		h.Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
	})

	t.Run("database down", func(t *testing.T) {
		db, mock := newMockDB(t, true)
		mock.ExpectPing().WillReturnError(errConnRefused)

		h := NewHealthHandler(db)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

		h.Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"error":"Database unavailable"}`, w.Body.String())
	})
}
