package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dietcoach/internal/domain"
)

// GetByUsername retrieves an operator by username.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	var op domain.Operator
	err := d.sql.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM operators WHERE username = $1;`,
		username,
	).Scan(&op.ID, &op.Username, &op.PasswordHash, &op.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// GetByID retrieves an operator by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.Operator, error) {
	var op domain.Operator
	err := d.sql.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM operators WHERE id = $1;`,
		id,
	).Scan(&op.ID, &op.Username, &op.PasswordHash, &op.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// Create creates a new operator.
func (d *DB) Create(ctx context.Context, username, passwordHash string) (*domain.Operator, error) {
	var op domain.Operator
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO operators (username, password_hash, created_at) VALUES ($1, $2, $3)
		 RETURNING id, username, password_hash, created_at;`,
		username, passwordHash, time.Now().UTC(),
	).Scan(&op.ID, &op.Username, &op.PasswordHash, &op.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// Count returns the total number of operators.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM operators;`).Scan(&count)
	return count, err
}

// ConsoleSessionRepo implements console session operations on DB.
type ConsoleSessionRepo struct {
	db *DB
}

// NewConsoleSessionRepo wraps a DB as a ConsoleSessionRepository.
func NewConsoleSessionRepo(db *DB) *ConsoleSessionRepo {
	return &ConsoleSessionRepo{db: db}
}

// Create creates a new console session.
func (r *ConsoleSessionRepo) Create(ctx context.Context, operatorID int64, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		`INSERT INTO console_sessions (operator_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4);`,
		operatorID, token, expiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// GetByToken retrieves a console session by token.
func (r *ConsoleSessionRepo) GetByToken(ctx context.Context, token string) (*domain.ConsoleSession, error) {
	var s domain.ConsoleSession
	err := r.db.sql.QueryRowContext(ctx,
		`SELECT token, operator_id, expires_at, created_at FROM console_sessions WHERE token = $1;`,
		token,
	).Scan(&s.Token, &s.OperatorID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a console session by token.
func (r *ConsoleSessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM console_sessions WHERE token = $1;`, token)
	return err
}

// DeleteExpired deletes all expired console sessions.
func (r *ConsoleSessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, `DELETE FROM console_sessions WHERE expires_at < $1;`, time.Now().UTC())
	return err
}
