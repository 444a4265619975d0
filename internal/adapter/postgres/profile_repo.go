package postgres

import (
	"context"
	"database/sql"
	"errors"

	"dietcoach/internal/domain"
)

// GetProfile retrieves a profile by user ID, or nil when unknown.
func (d *DB) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := d.sql.QueryRowContext(ctx,
		`SELECT user_id, sex, age, height_cm, weight_kg, activity, goal, unit, created_at, updated_at
		 FROM profiles WHERE user_id = $1;`, userID,
	).Scan(&p.UserID, &p.Sex, &p.Age, &p.HeightCm, &p.WeightKg, &p.Activity, &p.Goal, &p.Unit, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PutProfile inserts or updates a profile.
func (d *DB) PutProfile(ctx context.Context, p *domain.Profile) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles (user_id, sex, age, height_cm, weight_kg, activity, goal, unit, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
			sex = EXCLUDED.sex, age = EXCLUDED.age, height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg, activity = EXCLUDED.activity,
			goal = EXCLUDED.goal, unit = EXCLUDED.unit, updated_at = EXCLUDED.updated_at;`,
		p.UserID, p.Sex, p.Age, p.HeightCm, p.WeightKg, p.Activity, p.Goal, p.Unit,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	return err
}

// DeleteProfile removes a profile. Unknown users are a no-op.
func (d *DB) DeleteProfile(ctx context.Context, userID string) error {
	_, err := d.sql.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1;`, userID)
	return err
}
