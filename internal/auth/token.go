package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yukikurage/task-tracker/internal/constants"
)

// TokenService issues and verifies signed identity tokens.
type TokenService interface {
	// Issue returns a signed token asserting userID.
	Issue(ctx context.Context, userID uint64) (string, error)

	// Verify checks the token signature and returns the asserted user id.
	// It fails with ErrInvalidToken or ErrExpiredToken.
	Verify(ctx context.Context, token string) (uint64, error)
}

// identityClaims is the token payload: the user id plus registered claims.
type identityClaims struct {
	UserID uint64 `json:"userId"`
	jwt.RegisteredClaims
}

// JWTService implements TokenService with HMAC-SHA256 signed JWTs.
//
// A zero ttl issues tokens without an expiry claim; such tokens stay valid
// for as long as the signing secret is unchanged.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ TokenService = (*JWTService)(nil)

// NewJWTService creates a JWTService. Secrets shorter than
// constants.MinJWTSecretLength are rejected with ErrWeakSecret.
func NewJWTService(secret string, ttl time.Duration) (*JWTService, error) {
	if len(secret) < constants.MinJWTSecretLength {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrWeakSecret, constants.MinJWTSecretLength)
	}
	if ttl < 0 {
		ttl = 0
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source. Used by tests.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

// Issue implements TokenService.
func (s *JWTService) Issue(ctx context.Context, userID uint64) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("issue token: %w", ErrInvalidToken)
	}

	now := s.now()
	claims := identityClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		slog.ErrorContext(ctx, "failed to sign token", "error", err, "user_id", userID)
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify implements TokenService.
func (s *JWTService) Verify(ctx context.Context, tokenString string) (uint64, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&identityClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			slog.DebugContext(ctx, "token rejected: expired")
			return 0, ErrExpiredToken
		}
		slog.DebugContext(ctx, "token rejected", "error", err)
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		slog.DebugContext(ctx, "token rejected: unusable claims")
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
