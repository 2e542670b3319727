package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/profilehub/profilehub-go/internal/crypto"
	"github.com/profilehub/profilehub-go/internal/model"
	"github.com/profilehub/profilehub-go/internal/repository"
	"github.com/profilehub/profilehub-go/internal/session"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, fn func(*model.User)) (*model.User, error)
}

// SessionIssuer starts and ends sessions.
type SessionIssuer interface {
	Issue(ctx context.Context, userID string) (session.Ticket, error)
	Revoke(ctx context.Context, token string) error
}

// AuthResult is returned by a successful signup or login.
type AuthResult struct {
	User   model.UserResponse
	Ticket session.Ticket
}

// AccountService handles signup, login and logout.
type AccountService struct {
	repo     UserRepository
	sessions SessionIssuer
	now      func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo UserRepository, sessions SessionIssuer) *AccountService {
	return &AccountService{
		repo:     repo,
		sessions: sessions,
		now:      time.Now,
	}
}

// Signup creates a new account and starts a session for it.
func (s *AccountService) Signup(ctx context.Context, req model.SignupRequest) (AuthResult, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return AuthResult{}, ErrSignupFieldsRequired
	}
	if len(req.Password) > crypto.MaxPasswordBytes {
		return AuthResult{}, ErrPasswordTooLong
	}

	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return AuthResult{}, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return AuthResult{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UnixMilli(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	ticket, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	slog.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return AuthResult{User: user.Public(), Ticket: ticket}, nil
}

// Login verifies credentials and starts a new session. A session the client
// already holds (currentToken) is revoked first.
func (s *AccountService) Login(ctx context.Context, req model.LoginRequest, currentToken string) (AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return AuthResult{}, ErrLoginFieldsRequired
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			crypto.DummyVerify(req.Password)
			slog.InfoContext(ctx, "login rejected", "reason", "unknown email")
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, err
	}
	if !match {
		slog.InfoContext(ctx, "login rejected", "reason", "wrong password", "user_id", user.ID)
		return AuthResult{}, ErrInvalidCredentials
	}

	if err := s.sessions.Revoke(ctx, currentToken); err != nil {
		slog.WarnContext(ctx, "failed to revoke previous session", "error", err)
	}

	ticket, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return AuthResult{}, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return AuthResult{User: user.Public(), Ticket: ticket}, nil
}

// Logout ends the session behind token, if any.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
