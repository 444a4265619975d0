package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dietcoach/internal/domain"
)

// GetSession retrieves a conversation state by user ID, or nil when unknown.
func (d *DB) GetSession(ctx context.Context, userID string) (*domain.ChatSession, error) {
	var s domain.ChatSession
	err := d.sql.QueryRowContext(ctx,
		`SELECT user_id, stage, updated_at FROM chat_sessions WHERE user_id = $1;`, userID,
	).Scan(&s.UserID, &s.Stage, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// PutSession inserts or updates a conversation state.
func (d *DB) PutSession(ctx context.Context, s *domain.ChatSession) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO chat_sessions (user_id, stage, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET stage = EXCLUDED.stage, updated_at = EXCLUDED.updated_at;`,
		s.UserID, s.Stage, s.UpdatedAt.UTC(),
	)
	return err
}

// DeleteSession removes a conversation state.
func (d *DB) DeleteSession(ctx context.Context, userID string) error {
	_, err := d.sql.ExecContext(ctx, `DELETE FROM chat_sessions WHERE user_id = $1;`, userID)
	return err
}
