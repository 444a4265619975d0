package app

import (
	"sort"
	"time"

	"dietcoach/internal/domain"
)

// TrendConfig tunes the history summarizer.
type TrendConfig struct {
	// NoiseThresholdKg is the delta magnitude below which the trend
	// reads as flat.
	NoiseThresholdKg float64
}

// DefaultTrendConfig returns the standard summarizer settings.
func DefaultTrendConfig() TrendConfig {
	return TrendConfig{NoiseThresholdKg: 0.3}
}

// TrendService summarizes the weight ledger over look-back windows.
type TrendService struct {
	cfg TrendConfig
}

// NewTrendService creates a TrendService with the given settings.
func NewTrendService(cfg TrendConfig) *TrendService {
	return &TrendService{cfg: cfg}
}

// Summarize reduces the entries within [now-windowDays, now] to an
// average, a first-to-last delta and a direction. Fewer than two samples
// yield an insufficient-data summary with trend flat by convention.
// Entries are sorted before computation; append order is expected
// monotonic but not trusted.
func (s *TrendService) Summarize(logs []domain.WeightLog, windowDays int, now time.Time) domain.Summary {
	cutoff := now.AddDate(0, 0, -windowDays)

	window := make([]domain.WeightLog, 0, len(logs))
	for _, l := range logs {
		if !l.CreatedAt.Before(cutoff) && !l.CreatedAt.After(now) {
			window = append(window, l)
		}
	}
	sort.Slice(window, func(i, j int) bool {
		return window[i].CreatedAt.Before(window[j].CreatedAt)
	})

	sum := domain.Summary{
		WindowDays:  windowDays,
		SampleCount: len(window),
		Trend:       domain.TrendFlat,
	}
	if len(window) < 2 {
		return sum
	}

	var total float64
	for _, l := range window {
		total += l.ValueKg
	}
	sum.Sufficient = true
	sum.AverageKg = total / float64(len(window))
	sum.DeltaKg = window[len(window)-1].ValueKg - window[0].ValueKg

	switch {
	case sum.DeltaKg > s.cfg.NoiseThresholdKg:
		sum.Trend = domain.TrendUp
	case sum.DeltaKg < -s.cfg.NoiseThresholdKg:
		sum.Trend = domain.TrendDown
	}
	return sum
}
