package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/side105/devconnector/internal/gravatar"
	"github.com/side105/devconnector/internal/models"
	"github.com/side105/devconnector/internal/repository"
	"github.com/side105/devconnector/internal/token"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	users      repository.UserRepository
	tokens     *token.Service
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *token.Service, bcryptCost int, logger *zap.Logger) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a new user with a bcrypt-hashed password and an
// avatar derived from the email address.
func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Failed to check existing email", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Avatar:   gravatar.URL(email),
		Date:     time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The unique index closes the race between the check above and
		// the insert.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("email", user.Email))
	return user, nil
}

// Login verifies the credentials and returns a bearer token string of
// the form "Bearer <jwt>".
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.ID.Hex(), user.Name, user.Avatar)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("email", user.Email))
	return "Bearer " + tokenString, nil
}
