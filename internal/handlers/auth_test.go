package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/auth"
	"github.com/yukikurage/task-tracker/internal/dto"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
	"github.com/yukikurage/task-tracker/internal/testutil"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	tokens      *auth.JWTService
	router      *gin.Engine
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	tokens, err := auth.NewJWTService(testutil.JWTSecret, 0)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(bcrypt.MinCost), tokens)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.POST("/users/register", handler.Register)
	r.POST("/users/login", handler.Login)

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		tokens:      tokens,
		router:      r,
	}
}

func (env authTestEnv) post(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	switch p := payload.(type) {
	case string:
		body = []byte(p)
	default:
		var err error
		body, err = json.Marshal(p)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := env.post(t, "/users/register", map[string]string{
		"username": "alice",
		"password": "pw1",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"User registered successfully"}`, w.Body.String())

	var stored models.User
	require.NoError(t, env.db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")))
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	env := setupAuthTestEnv(t)
	payload := map[string]string{"username": "alice", "password": "pw1"}

	require.Equal(t, http.StatusCreated, env.post(t, "/users/register", payload).Code)

	w := env.post(t, "/users/register", payload)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to register user"}`, w.Body.String())
}

func TestAuthHandler_RegisterMissingFields(t *testing.T) {
	env := setupAuthTestEnv(t)

	for _, payload := range []any{
		map[string]string{"username": "alice"},
		map[string]string{"password": "pw1"},
		"",
		"{not json",
	} {
		w := env.post(t, "/users/register", payload)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to register user"}`, w.Body.String())
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(context.Background(), services.Credentials{
		Username: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := env.post(t, "/users/login", map[string]string{
		"username": "existing",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token)

	userID, err := env.tokens.Verify(context.Background(), response.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(context.Background(), services.Credentials{
		Username: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	for name, payload := range map[string]any{
		"wrong password": map[string]string{"username": "existing", "password": "guess"},
		"unknown user":   map[string]string{"username": "ghost", "password": "supersecret"},
		"empty body":     "",
	} {
		t.Run(name, func(t *testing.T) {
			w := env.post(t, "/users/login", payload)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Authentication failed"}`, w.Body.String())
		})
	}
}
