package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"dietcoach/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested console session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the console session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrOperatorNotFound indicates that the operator does not exist.
	ErrOperatorNotFound = errors.New("operator not found")
)

const consoleSessionTTL = 24 * time.Hour

// AuthService handles operator console authentication and sessions.
type AuthService struct {
	operators domain.OperatorRepository
	sessions  domain.ConsoleSessionRepository
}

// NewAuthService creates a new operator authentication service.
func NewAuthService(operators domain.OperatorRepository, sessions domain.ConsoleSessionRepository) *AuthService {
	return &AuthService{operators: operators, sessions: sessions}
}

// Login authenticates an operator and creates a console session.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	op, err := s.operators.GetByUsername(ctx, username)
	if err != nil || op == nil || op.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.createSession(ctx, op.ID)
}

// Logout invalidates a console session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession checks a session token and returns its operator.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Operator, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil || session == nil {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	op, err := s.operators.GetByID(ctx, session.OperatorID)
	if err != nil || op == nil {
		return nil, ErrOperatorNotFound
	}
	return op, nil
}

// CreateInitialOperator creates the first operator if none exist.
func (s *AuthService) CreateInitialOperator(ctx context.Context, username, password string) error {
	count, err := s.operators.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("operators already exist")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.operators.Create(ctx, username, string(hash))
	return err
}

// LoginSSO creates a session for an operator authenticated upstream
// (OIDC), auto-provisioning one with an empty password hash on first
// login. Password login stays disabled for such operators.
func (s *AuthService) LoginSSO(ctx context.Context, username string) (string, error) {
	op, err := s.operators.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if op == nil {
		op, err = s.operators.Create(ctx, username, "")
		if err != nil {
			// Creation may race with a concurrent login on the unique
			// username constraint; re-read before giving up.
			op, err = s.operators.GetByUsername(ctx, username)
			if err != nil || op == nil {
				return "", err
			}
		}
	}
	return s.createSession(ctx, op.ID)
}

func (s *AuthService) createSession(ctx context.Context, operatorID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	expiresAt := time.Now().Add(consoleSessionTTL)
	if err := s.sessions.Create(ctx, operatorID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
