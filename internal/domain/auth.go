package domain

import (
	"context"
	"time"
)

// Operator is a human coach or admin with access to the console API.
// Chat users are identified by transport user IDs and never log in.
type Operator struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// ConsoleSession is an active operator console session.
type ConsoleSession struct {
	Token      string
	OperatorID int64
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// OperatorRepository defines the port for operator persistence operations.
type OperatorRepository interface {
	GetByUsername(ctx context.Context, username string) (*Operator, error)
	GetByID(ctx context.Context, id int64) (*Operator, error)
	Create(ctx context.Context, username, passwordHash string) (*Operator, error)
	Count(ctx context.Context) (int, error)
}

// ConsoleSessionRepository defines the port for console session persistence.
type ConsoleSessionRepository interface {
	Create(ctx context.Context, operatorID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*ConsoleSession, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
