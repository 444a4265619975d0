package domain

import (
	"context"
	"time"
)

// MaxWeightKg is the sanity ceiling for a single weight observation.
const MaxWeightKg = 400.0

// WeightLog is a single weight observation in the append-only ledger.
type WeightLog struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	ValueKg   float64   `json:"valueKg"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateWeight checks that a logged value is a plausible bodyweight.
func ValidateWeight(valueKg float64) error {
	if valueKg <= 0 || valueKg >= MaxWeightKg {
		return &ValidationError{Field: "weight", Hint: "a number between 0 and 400, e.g. log 65.2"}
	}
	return nil
}

// WeightRepository is the port for the weight ledger. Appends only;
// reads return entries in ascending timestamp order.
type WeightRepository interface {
	AppendWeight(ctx context.Context, log WeightLog) (int64, error)
	ListWeightsSince(ctx context.Context, userID string, since time.Time) ([]WeightLog, error)
	PurgeWeights(ctx context.Context, userID string) error
}
