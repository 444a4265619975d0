package guide

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dietcoach/internal/domain"
)

func TestLookup_DefaultTable(t *testing.T) {
	table := Default()

	got := table.Lookup(domain.GoalLose, domain.ActivityActive)
	if !strings.Contains(got, "protein") {
		t.Errorf("lose/active guidance = %q, want protein advice", got)
	}

	override := table.Lookup(domain.GoalLose, domain.ActivitySedentary)
	if override == got {
		t.Error("sedentary override should differ from the goal default")
	}
	if !strings.Contains(override, "walk") {
		t.Errorf("sedentary/lose guidance = %q", override)
	}
}

func TestLookup_UnknownGoalFallsBack(t *testing.T) {
	table := Default()
	got := table.Lookup(domain.Goal("bulk"), domain.ActivityActive)
	if !strings.Contains(got, "`start`") {
		t.Errorf("unknown goal should point back to onboarding, got %q", got)
	}
}

func TestLoad_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guides.yaml")
	const doc = `
lose:
  default: "Eat less, hold protein."
  by_activity:
    sedentary: "Walk more first."
maintain:
  default: "Hold steady."
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := table.Lookup(domain.GoalLose, domain.ActivitySedentary); got != "Walk more first." {
		t.Errorf("Lookup = %q", got)
	}
	if got := table.Lookup(domain.GoalLose, domain.ActivityActive); got != "Eat less, hold protein." {
		t.Errorf("Lookup = %q", got)
	}
	if got := table.Lookup(domain.GoalMaintain, domain.ActivityLight); got != "Hold steady." {
		t.Errorf("Lookup = %q", got)
	}
}

func TestLoad_MissingDefaultRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guides.yaml")
	const doc = `
lose:
  by_activity:
    sedentary: "Walk more first."
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a goal without default text")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
