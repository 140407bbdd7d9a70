package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tallybook/tallybook/internal/events"
	"github.com/tallybook/tallybook/internal/models"
	"github.com/tallybook/tallybook/internal/repository"
	"github.com/tallybook/tallybook/internal/session"
	"github.com/tallybook/tallybook/internal/utils"
)

// UserStore is the credential store consumed by AuthService.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService orchestrates registration, login and logout against the
// credential store and the session table. The events publisher is optional.
type AuthService struct {
	users     UserStore
	sessions  session.Store
	publisher *events.Publisher
}

func NewAuthService(users UserStore, sessions session.Store, publisher *events.Publisher) *AuthService {
	return &AuthService{users: users, sessions: sessions, publisher: publisher}
}

// Register creates the user and starts a session for it, returning the
// normalised email and the new session token.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.users.Create(ctx, email, passwordHash); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", "", ErrUserExists
		}
		return "", "", err
	}

	token, err := s.sessions.Create(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("failed to start session: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
			Email: email,
		}); err != nil {
			log.Printf("Failed to publish user.registered event: %v", err)
		}
	}

	return email, token, nil
}

// Login verifies the credentials and starts a session. An unknown email and a
// wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return "", "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("failed to start session: %w", err)
	}

	return email, token, nil
}

// Logout invalidates the session. Logging out an absent or expired session is
// not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	return nil
}

// CurrentUser resolves a session token to the owner email of an unexpired
// session.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (string, error) {
	return s.sessions.Get(ctx, token)
}
