package app

import (
	"fmt"
	"sort"
	"time"

	"dietcoach/internal/domain"
)

// SuggestConfig tunes the post-log coaching policy. Rates are kilograms
// per day over the recent window.
type SuggestConfig struct {
	RecentWindowDays int
	MinSamples       int
	// MaxLossRate / MaxGainRate bound a healthy pace; DriftRate is the
	// daily change treated as standing still.
	MaxLossRate float64
	MaxGainRate float64
	DriftRate   float64
	// AdjustStepKcal is the target adjustment suggested when the trend
	// needs correcting.
	AdjustStepKcal int
}

// DefaultSuggestConfig returns the standard coaching policy.
func DefaultSuggestConfig() SuggestConfig {
	return SuggestConfig{
		RecentWindowDays: 7,
		MinSamples:       2,
		MaxLossRate:      0.15,
		MaxGainRate:      0.25,
		DriftRate:        0.05,
		AdjustStepKcal:   100,
	}
}

// SuggestService turns a fresh weight log into immediate coaching
// feedback. Deterministic: identical inputs always produce the same
// suggestion.
type SuggestService struct {
	cfg SuggestConfig
}

// NewSuggestService creates a SuggestService with the given policy.
func NewSuggestService(cfg SuggestConfig) *SuggestService {
	return &SuggestService{cfg: cfg}
}

// Suggest evaluates the recent daily rate of change against the goal.
// logs must already include the new observation.
func (s *SuggestService) Suggest(plan domain.Plan, goal domain.Goal, logs []domain.WeightLog, now time.Time) domain.Suggestion {
	cutoff := now.AddDate(0, 0, -s.cfg.RecentWindowDays)
	window := make([]domain.WeightLog, 0, len(logs))
	for _, l := range logs {
		if !l.CreatedAt.Before(cutoff) {
			window = append(window, l)
		}
	}
	sort.Slice(window, func(i, j int) bool {
		return window[i].CreatedAt.Before(window[j].CreatedAt)
	})

	if len(window) < s.cfg.MinSamples {
		return domain.Suggestion{
			Kind: domain.SuggestInsufficientData,
			Text: "Keep logging; one or two weeks of consistent morning weigh-ins give a usable trend.",
		}
	}

	first, last := window[0], window[len(window)-1]
	days := last.CreatedAt.Sub(first.CreatedAt).Hours() / 24
	if days < 1 {
		days = 1
	}
	rate := (last.ValueKg - first.ValueKg) / days

	step := s.cfg.AdjustStepKcal
	switch goal {
	case domain.GoalLose:
		switch {
		case rate < -s.cfg.MaxLossRate:
			return suggestion(domain.SuggestAdjustUp, step,
				"Losing faster than is sustainable; raise the target by ~%d kcal.", step)
		case rate > s.cfg.DriftRate:
			return suggestion(domain.SuggestAdjustDown, -step,
				"Weight is drifting up against a loss goal; reduce the target by ~%d kcal.", step)
		}
	case domain.GoalGain:
		switch {
		case rate > s.cfg.MaxGainRate:
			return suggestion(domain.SuggestAdjustDown, -step,
				"Gaining faster than lean progress allows; reduce the target by ~%d kcal.", step)
		case rate < s.cfg.DriftRate:
			return suggestion(domain.SuggestAdjustUp, step,
				"Weight is not moving up; add ~%d kcal to the target.", step)
		}
	default: // maintain
		switch {
		case rate > s.cfg.DriftRate:
			return suggestion(domain.SuggestAdjustDown, -step,
				"Drifting above maintenance; trim ~%d kcal from the target.", step)
		case rate < -s.cfg.DriftRate:
			return suggestion(domain.SuggestAdjustUp, step,
				"Drifting below maintenance; add ~%d kcal to the target.", step)
		}
	}

	return domain.Suggestion{
		Kind: domain.SuggestReinforce,
		Text: fmt.Sprintf("On track. Keep the target near %d kcal and log at the same time each day.", plan.TargetKcal),
	}
}

func suggestion(kind domain.SuggestionKind, delta int, format string, step int) domain.Suggestion {
	return domain.Suggestion{
		Kind:      kind,
		DeltaKcal: delta,
		Text:      fmt.Sprintf(format, step),
	}
}
