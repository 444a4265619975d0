package app_test

import (
	"errors"
	"math"
	"testing"

	"dietcoach/internal/app"
	"dietcoach/internal/domain"
)

func completeProfile() *domain.Profile {
	return &domain.Profile{
		UserID:   "u1",
		Sex:      domain.SexMale,
		Age:      30,
		HeightCm: 175,
		WeightKg: 80,
		Activity: domain.ActivityActive,
		Goal:     domain.GoalLose,
		Unit:     "kg",
	}
}

func TestPlanCompute_MifflinStJeor(t *testing.T) {
	svc := app.NewPlanService(app.DefaultPlanConfig())

	plan, err := svc.Compute(completeProfile(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10*80 + 6.25*175 - 5*30 + 5 = 1748.75
	if math.Abs(plan.BmrKcal-1748.75) > 0.01 {
		t.Errorf("BMR = %v, want 1748.75", plan.BmrKcal)
	}
	// 1748.75 * 1.55 = 2710.5625
	if math.Abs(plan.TdeeKcal-2710.56) > 0.01 {
		t.Errorf("TDEE = %v, want 2710.56", plan.TdeeKcal)
	}
	if plan.MaintenanceKcal != 2711 {
		t.Errorf("maintenance = %d, want 2711", plan.MaintenanceKcal)
	}
	// lose: -15% => round(2710.5625 * 0.85) = 2304
	if plan.TargetKcal != 2304 {
		t.Errorf("target = %d, want 2304", plan.TargetKcal)
	}
	if plan.ProteinG != 160 {
		t.Errorf("protein = %d, want 160", plan.ProteinG)
	}
	if plan.FatG != 64 {
		t.Errorf("fat = %d, want 64", plan.FatG)
	}
	// (2304 - 160*4 - 64*9) / 4 = 272
	if plan.CarbG != 272 {
		t.Errorf("carb = %d, want 272", plan.CarbG)
	}
	if plan.Note != "" {
		t.Errorf("unexpected note: %q", plan.Note)
	}
}

func TestPlanCompute_FemaleConstant(t *testing.T) {
	svc := app.NewPlanService(app.DefaultPlanConfig())
	p := completeProfile()
	p.Sex = domain.SexFemale

	plan, err := svc.Compute(p, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Same inputs, female constant: 1748.75 - 5 - 161 = 1582.75
	if math.Abs(plan.BmrKcal-1582.75) > 0.01 {
		t.Errorf("BMR = %v, want 1582.75", plan.BmrKcal)
	}
}

func TestPlanCompute_SafetyFloorClamp(t *testing.T) {
	svc := app.NewPlanService(app.DefaultPlanConfig())
	p := &domain.Profile{
		UserID:   "u1",
		Sex:      domain.SexFemale,
		Age:      60,
		HeightCm: 150,
		WeightKg: 40,
		Activity: domain.ActivitySedentary,
		Goal:     domain.GoalLose,
		Unit:     "kg",
	}

	plan, err := svc.Compute(p, 0)
	if err != nil {
		t.Fatalf("clamping must not error: %v", err)
	}
	if plan.TargetKcal != 1200 {
		t.Errorf("target = %d, want floor 1200", plan.TargetKcal)
	}
	if plan.Note == "" {
		t.Error("expected a note about the safety floor")
	}
}

func TestPlanCompute_TargetNeverBelowFloor(t *testing.T) {
	svc := app.NewPlanService(app.DefaultPlanConfig())
	cfg := app.DefaultPlanConfig()

	for _, sex := range []domain.Sex{domain.SexMale, domain.SexFemale} {
		for _, act := range []domain.ActivityLevel{domain.ActivitySedentary, domain.ActivityLight, domain.ActivityActive, domain.ActivityVeryActive} {
			for _, goal := range []domain.Goal{domain.GoalLose, domain.GoalMaintain, domain.GoalGain} {
				p := &domain.Profile{
					UserID: "u1", Sex: sex, Age: 75, HeightCm: 145, WeightKg: 38,
					Activity: act, Goal: goal, Unit: "kg",
				}
				plan, err := svc.Compute(p, 0)
				if err != nil {
					t.Fatalf("%s/%s/%s: %v", sex, act, goal, err)
				}
				if plan.TargetKcal < cfg.FloorKcal[sex] {
					t.Errorf("%s/%s/%s: target %d below floor %d", sex, act, goal, plan.TargetKcal, cfg.FloorKcal[sex])
				}
			}
		}
	}
}

func TestPlanCompute_IncompleteProfile(t *testing.T) {
	svc := app.NewPlanService(app.DefaultPlanConfig())
	p := completeProfile()
	p.Goal = ""

	_, err := svc.Compute(p, 0)
	var incomplete *domain.IncompleteProfileError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected IncompleteProfileError, got %v", err)
	}
	if len(incomplete.Missing) != 1 || incomplete.Missing[0] != "goal" {
		t.Errorf("missing = %v, want [goal]", incomplete.Missing)
	}
}

func TestPlanCompute_LatestWeightOverride(t *testing.T) {
	svc := app.NewPlanService(app.DefaultPlanConfig())

	base, _ := svc.Compute(completeProfile(), 0)
	overridden, err := svc.Compute(completeProfile(), 75)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overridden.BmrKcal >= base.BmrKcal {
		t.Errorf("lower current weight should lower BMR: %v >= %v", overridden.BmrKcal, base.BmrKcal)
	}
}

func TestPlanCompute_Deterministic(t *testing.T) {
	svc := app.NewPlanService(app.DefaultPlanConfig())

	a, err := svc.Compute(completeProfile(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := svc.Compute(completeProfile(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("identical profiles produced different plans: %+v vs %+v", a, b)
	}
}
