package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/scaudit/internal/core/domain"
	"github.com/lcalzada-xor/scaudit/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrInvalidSession     = errors.New("invalid session")
)

const maxLoginAttempts = 5

// Session represents an active user session.
type Session struct {
	UserID    string
	Role      domain.Role
	ExpiresAt time.Time
}

// AuthService coordinates credential validation and session management.
// Sessions are held in memory; restarting the server logs everyone out.
type AuthService struct {
	repo          ports.UserRepository
	sessions      map[string]Session
	loginAttempts map[string]int
	mu            sync.RWMutex
	sessionTTL    time.Duration
}

// NewAuthService creates an authentication service with the given session TTL.
func NewAuthService(repo ports.UserRepository, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:          repo,
		sessions:      make(map[string]Session),
		loginAttempts: make(map[string]int),
		sessionTTL:    sessionTTL,
	}
}

// Login validates user credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if err := s.checkRateLimit(creds.Username); err != nil {
		return "", err
	}

	user, err := s.repo.GetByUsername(ctx, creds.Username)
	if err != nil {
		s.incrementAttempts(creds.Username)
		return "", ErrInvalidCredentials // Generic error to avoid enumeration
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		s.incrementAttempts(creds.Username)
		return "", ErrInvalidCredentials
	}

	s.resetAttempts(creds.Username)

	user.UpdateLastLogin()
	if err := s.repo.Save(ctx, *user); err != nil {
		return "", fmt.Errorf("failed to update last login: %w", err)
	}

	return s.createSession(user), nil
}

// ValidateToken verifies a session token and returns the associated user.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*domain.User, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if time.Now().After(session.ExpiresAt) {
		s.Logout(ctx, token)
		return nil, ErrTokenExpired
	}

	user, err := s.repo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}

// Logout invalidates a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// CreateUser provisions a new user with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, user domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now().UTC()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	return s.repo.Save(ctx, user)
}

// Private helpers

func (s *AuthService) checkRateLimit(username string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loginAttempts[username] >= maxLoginAttempts {
		return ErrRateLimitExceeded
	}
	return nil
}

func (s *AuthService) incrementAttempts(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginAttempts[username]++
}

func (s *AuthService) resetAttempts(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loginAttempts, username)
}

func (s *AuthService) createSession(user *domain.User) string {
	token := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = Session{
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	return token
}
