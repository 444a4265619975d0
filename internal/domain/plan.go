package domain

// Plan is the derived daily calorie and macro plan. Recomputed on demand,
// never persisted.
type Plan struct {
	BmrKcal         float64 `json:"bmrKcal"`
	TdeeKcal        float64 `json:"tdeeKcal"`
	MaintenanceKcal int     `json:"maintenanceKcal"`
	TargetKcal      int     `json:"targetKcal"`
	ProteinG        int     `json:"proteinG"`
	FatG            int     `json:"fatG"`
	CarbG           int     `json:"carbG"`
	Note            string  `json:"note,omitempty"` // set when the target was clamped to the safety floor
}

// Trend is the direction of a weight summary window.
type Trend string

// Trend directions.
const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Summary is a derived look-back over the weight ledger.
type Summary struct {
	WindowDays  int     `json:"windowDays"`
	SampleCount int     `json:"sampleCount"`
	AverageKg   float64 `json:"averageKg"`
	DeltaKg     float64 `json:"deltaKg"`
	Trend       Trend   `json:"trend"`
	// Sufficient is false when fewer than two samples fall in the window;
	// AverageKg and DeltaKg carry no meaning then.
	Sufficient bool `json:"sufficient"`
}

// SuggestionKind classifies the coaching feedback after a weight log.
type SuggestionKind string

// Suggestion kinds.
const (
	SuggestReinforce        SuggestionKind = "reinforce"
	SuggestAdjustDown       SuggestionKind = "adjust-down"
	SuggestAdjustUp         SuggestionKind = "adjust-up"
	SuggestInsufficientData SuggestionKind = "insufficient-data"
)

// Suggestion is the immediate coaching feedback returned after a log.
type Suggestion struct {
	Kind      SuggestionKind `json:"kind"`
	DeltaKcal int            `json:"deltaKcal"` // suggested target adjustment, signed; 0 when none
	Text      string         `json:"text"`
}
