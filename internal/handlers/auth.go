package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, constants.MsgFailedToRegister)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		// Duplicates and missing fields are reported like any other
		// registration failure.
		_ = c.Error(err)
		if !errors.Is(err, services.ErrUsernameTaken) && !errors.Is(err, services.ErrMissingCredentials) {
			slog.ErrorContext(c.Request.Context(), "failed to register user", "error", err)
		}
		apierrors.InternalError(c, constants.MsgFailedToRegister)
		return
	}

	slog.InfoContext(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: constants.MsgUserRegistered})
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := bindJSON(c, &req); err != nil {
		_ = c.Error(err)
		apierrors.InternalError(c, constants.MsgFailedToAuthenticate)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), services.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Unauthorized(c)
			return
		}
		slog.ErrorContext(c.Request.Context(), "failed to authenticate", "error", err)
		apierrors.InternalError(c, constants.MsgFailedToAuthenticate)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
