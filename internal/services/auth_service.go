package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/yukikurage/task-tracker/internal/auth"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   auth.Hasher
	tokens   auth.TokenService

	placeholderOnce sync.Once
	placeholder     string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, hasher auth.Hasher, tokens auth.TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Credentials is a username and plaintext password pair.
type Credentials struct {
	Username string
	Password string
}

// Register creates a new user. Only the salted hash of the password is stored.
func (s *AuthService) Register(ctx context.Context, input Credentials) (*models.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	if _, err := s.userRepo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can win between the check and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a token for the user. Unknown users
// and wrong passwords both yield ErrInvalidCredentials, and both pay for one
// hash comparison.
func (s *AuthService) Login(ctx context.Context, input Credentials) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(input.Password, s.placeholderHash())
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// placeholderHash is a digest no user owns, built once with the configured
// hasher so its comparison costs the same as a real one.
func (s *AuthService) placeholderHash() string {
	s.placeholderOnce.Do(func() {
		if hashed, err := s.hasher.Hash("placeholder-for-unknown-user"); err == nil {
			s.placeholder = hashed
		}
	})
	return s.placeholder
}
