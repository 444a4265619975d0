// Package app holds the application services and business logic.
package app

import (
	"math"

	"dietcoach/internal/domain"
)

// PlanConfig carries the tunable tables behind the plan calculation.
// The zero value is not usable; start from DefaultPlanConfig.
type PlanConfig struct {
	// ActivityFactors maps activity level to the TDEE multiplier.
	ActivityFactors map[domain.ActivityLevel]float64
	// GoalOffsetPct adjusts TDEE toward the goal, e.g. -0.15 for lose.
	GoalOffsetPct map[domain.Goal]float64
	// FloorKcal is the per-sex safety floor the target never drops below.
	FloorKcal map[domain.Sex]int
	// ProteinGPerKg sets the protein allocation per kg of bodyweight.
	ProteinGPerKg map[domain.Goal]float64
	// FatKcalShare is the fraction of target calories allocated to fat.
	FatKcalShare float64
}

// DefaultPlanConfig returns the standard coaching tables.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		ActivityFactors: map[domain.ActivityLevel]float64{
			domain.ActivitySedentary:  1.2,
			domain.ActivityLight:      1.375,
			domain.ActivityActive:     1.55,
			domain.ActivityVeryActive: 1.725,
		},
		GoalOffsetPct: map[domain.Goal]float64{
			domain.GoalLose:     -0.15,
			domain.GoalMaintain: 0,
			domain.GoalGain:     0.12,
		},
		FloorKcal: map[domain.Sex]int{
			domain.SexFemale: 1200,
			domain.SexMale:   1500,
		},
		ProteinGPerKg: map[domain.Goal]float64{
			domain.GoalLose:     2.0,
			domain.GoalMaintain: 1.6,
			domain.GoalGain:     1.8,
		},
		FatKcalShare: 0.25,
	}
}

// PlanService computes daily calorie and macro plans from a profile.
type PlanService struct {
	cfg PlanConfig
}

// NewPlanService creates a PlanService with the given tables.
func NewPlanService(cfg PlanConfig) *PlanService {
	return &PlanService{cfg: cfg}
}

// Compute derives a Plan from a complete profile. currentWeightKg, when
// positive, overrides the onboarded weight (callers pass the latest
// logged weight). Returns IncompleteProfileError when required fields
// are missing; a target below the safety floor is clamped with a note,
// never an error.
func (s *PlanService) Compute(p *domain.Profile, currentWeightKg float64) (domain.Plan, error) {
	if missing := p.MissingFields(); len(missing) > 0 {
		return domain.Plan{}, &domain.IncompleteProfileError{Missing: missing}
	}

	weight := p.WeightKg
	if currentWeightKg > 0 {
		weight = currentWeightKg
	}

	// Mifflin-St Jeor, sex-conditioned constant term.
	bmr := 10*weight + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Sex == domain.SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * s.cfg.ActivityFactors[p.Activity]
	target := int(math.Round(tdee * (1 + s.cfg.GoalOffsetPct[p.Goal])))

	plan := domain.Plan{
		BmrKcal:         round2(bmr),
		TdeeKcal:        round2(tdee),
		MaintenanceKcal: int(math.Round(tdee)),
	}

	if floor := s.cfg.FloorKcal[p.Sex]; target < floor {
		target = floor
		plan.Note = "target raised to the safety floor"
	}
	plan.TargetKcal = target

	plan.ProteinG = int(math.Round(s.cfg.ProteinGPerKg[p.Goal] * weight))
	plan.FatG = int(math.Round(float64(target) * s.cfg.FatKcalShare / 9))
	carbKcal := target - plan.ProteinG*4 - plan.FatG*9
	if carbKcal < 0 {
		carbKcal = 0
	}
	plan.CarbG = carbKcal / 4

	return plan, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
