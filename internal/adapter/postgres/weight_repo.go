package postgres

import (
	"context"
	"time"

	"dietcoach/internal/domain"
)

// AppendWeight inserts a new ledger entry.
func (d *DB) AppendWeight(ctx context.Context, log domain.WeightLog) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO weight_logs (user_id, value_kg, created_at) VALUES ($1, $2, $3) RETURNING id;`,
		log.UserID, log.ValueKg, log.CreatedAt.UTC(),
	).Scan(&id)
	return id, err
}

// ListWeightsSince returns a user's entries at or after since, in
// ascending timestamp order.
func (d *DB) ListWeightsSince(ctx context.Context, userID string, since time.Time) ([]domain.WeightLog, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, value_kg, created_at FROM weight_logs
		 WHERE user_id = $1 AND created_at >= $2 ORDER BY created_at ASC;`,
		userID, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightLog
	for rows.Next() {
		var l domain.WeightLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.ValueKg, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// PurgeWeights deletes a user's entire ledger.
func (d *DB) PurgeWeights(ctx context.Context, userID string) error {
	_, err := d.sql.ExecContext(ctx, `DELETE FROM weight_logs WHERE user_id = $1;`, userID)
	return err
}
