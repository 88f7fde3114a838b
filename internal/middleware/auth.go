package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/auth"
	"github.com/yukikurage/task-tracker/internal/constants"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
)

// RequireAuth validates the bearer token of each request and stores the
// authenticated user id in the request context. Requests without a valid
// token are rejected with 401 before any later handler runs; every failure
// produces the same response.
func RequireAuth(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(constants.HeaderAuthorization))
		if !ok {
			apierrors.Unauthorized(c)
			return
		}

		userID, err := tokens.Verify(c.Request.Context(), token)
		if err != nil {
			apierrors.Unauthorized(c)
			return
		}

		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUserID retrieves the authenticated user ID from the request context
func GetUserID(c *gin.Context) (uint64, bool) {
	if c.Request == nil {
		return 0, false
	}
	return auth.UserIDFromContext(c.Request.Context())
}
