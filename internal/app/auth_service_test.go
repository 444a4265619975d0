package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"dietcoach/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

type mockOperatorRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.Operator, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.Operator, error)
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.Operator, error)
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockOperatorRepo) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockOperatorRepo) GetByID(ctx context.Context, id int64) (*domain.Operator, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockOperatorRepo) Create(ctx context.Context, username, passwordHash string) (*domain.Operator, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.Operator{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockOperatorRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockConsoleSessionRepo struct {
	createFn        func(ctx context.Context, operatorID int64, token string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.ConsoleSession, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockConsoleSessionRepo) Create(ctx context.Context, operatorID int64, token string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, operatorID, token, expiresAt)
	}
	return nil
}

func (m *mockConsoleSessionRepo) GetByToken(ctx context.Context, token string) (*domain.ConsoleSession, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, errors.New("not found")
}

func (m *mockConsoleSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockConsoleSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	password := "testpass123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	operators := &mockOperatorRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.Operator, error) {
			return &domain.Operator{
				ID:           1,
				Username:     "coach",
				PasswordHash: string(hash),
			}, nil
		},
	}

	sessions := &mockConsoleSessionRepo{
		createFn: func(ctx context.Context, operatorID int64, token string, expiresAt time.Time) error {
			if operatorID != 1 {
				t.Errorf("expected operatorID 1, got %d", operatorID)
			}
			if token == "" {
				t.Error("token should not be empty")
			}
			return nil
		},
	}

	svc := NewAuthService(operators, sessions)
	token, err := svc.Login(ctx, "coach", password)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected token, got empty string")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.DefaultCost)

	operators := &mockOperatorRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.Operator, error) {
			return &domain.Operator{
				ID:           1,
				Username:     "coach",
				PasswordHash: string(hash),
			}, nil
		},
	}

	svc := NewAuthService(operators, &mockConsoleSessionRepo{})

	_, err := svc.Login(ctx, "coach", "wrongpass")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_SSOOnlyOperator(t *testing.T) {
	ctx := context.Background()

	operators := &mockOperatorRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.Operator, error) {
			// Auto-provisioned via SSO: no password hash.
			return &domain.Operator{ID: 1, Username: "coach"}, nil
		},
	}

	svc := NewAuthService(operators, &mockConsoleSessionRepo{})

	_, err := svc.Login(ctx, "coach", "anything")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ValidateSession_Valid(t *testing.T) {
	ctx := context.Background()
	token := "validtoken"

	sessions := &mockConsoleSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.ConsoleSession, error) {
			return &domain.ConsoleSession{
				Token:      token,
				OperatorID: 1,
				ExpiresAt:  time.Now().Add(1 * time.Hour),
			}, nil
		},
	}

	operators := &mockOperatorRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.Operator, error) {
			return &domain.Operator{ID: 1, Username: "coach"}, nil
		},
	}

	svc := NewAuthService(operators, sessions)
	op, err := svc.ValidateSession(ctx, token)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if op.Username != "coach" {
		t.Errorf("expected username 'coach', got %s", op.Username)
	}
}

func TestAuthService_ValidateSession_Expired(t *testing.T) {
	ctx := context.Background()
	token := "expiredtoken"

	deleted := false
	sessions := &mockConsoleSessionRepo{
		getByTokenFn: func(ctx context.Context, tok string) (*domain.ConsoleSession, error) {
			return &domain.ConsoleSession{
				Token:      token,
				OperatorID: 1,
				ExpiresAt:  time.Now().Add(-1 * time.Hour),
			}, nil
		},
		deleteFn: func(ctx context.Context, tok string) error {
			deleted = true
			return nil
		},
	}

	svc := NewAuthService(&mockOperatorRepo{}, sessions)

	_, err := svc.ValidateSession(ctx, token)
	if !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if !deleted {
		t.Error("expected session to be deleted")
	}
}

func TestAuthService_CreateInitialOperator_Success(t *testing.T) {
	ctx := context.Background()

	operators := &mockOperatorRepo{
		countFn: func(ctx context.Context) (int, error) {
			return 0, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.Operator, error) {
			if username != "admin" {
				t.Errorf("expected username 'admin', got %s", username)
			}
			if passwordHash == "" {
				t.Error("password hash should not be empty")
			}
			return &domain.Operator{ID: 1, Username: username}, nil
		},
	}

	svc := NewAuthService(operators, &mockConsoleSessionRepo{})

	if err := svc.CreateInitialOperator(ctx, "admin", "password123"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestAuthService_CreateInitialOperator_OperatorsExist(t *testing.T) {
	ctx := context.Background()

	operators := &mockOperatorRepo{
		countFn: func(ctx context.Context) (int, error) {
			return 1, nil
		},
	}

	svc := NewAuthService(operators, &mockConsoleSessionRepo{})

	if err := svc.CreateInitialOperator(ctx, "admin", "password123"); err == nil {
		t.Error("expected error when operators exist")
	}
}

func TestAuthService_LoginSSO_NewOperator(t *testing.T) {
	ctx := context.Background()

	created := false
	operators := &mockOperatorRepo{
		getByUsernameFn: func(ctx context.Context, username string) (*domain.Operator, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, username, passwordHash string) (*domain.Operator, error) {
			created = true
			if passwordHash != "" {
				t.Error("SSO operators should have no password hash")
			}
			return &domain.Operator{ID: 2, Username: username}, nil
		},
	}

	svc := NewAuthService(operators, &mockConsoleSessionRepo{})

	token, err := svc.LoginSSO(ctx, "new@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Error("expected token")
	}
	if !created {
		t.Error("expected operator to be auto-provisioned")
	}
}
