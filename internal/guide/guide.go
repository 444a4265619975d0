// Package guide maps (goal, activity level) to eating guidance text.
// The table lives outside the conversation logic so deployments can
// swap it via a YAML file without touching the engine.
package guide

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dietcoach/internal/domain"
)

type goalGuide struct {
	Default    string            `yaml:"default"`
	ByActivity map[string]string `yaml:"by_activity"`
}

// Table resolves guidance text per goal, optionally specialized per
// activity level.
type Table struct {
	byGoal map[string]goalGuide
}

// Default returns the built-in guidance table.
func Default() *Table {
	return &Table{byGoal: map[string]goalGuide{
		string(domain.GoalLose): {
			Default: "Aim for ~2 g protein per kg bodyweight, keep fat moderate, fill the rest with carbs. Go easy on late-evening snacks and keep daily steps up.",
			ByActivity: map[string]string{
				string(domain.ActivitySedentary): "Protein ~2 g/kg, moderate fat, the rest carbs. With a sedentary routine, prioritize a daily walk; it protects the deficit more than cutting further.",
			},
		},
		string(domain.GoalMaintain): {
			Default: "Keep protein high, watch the weekly average rather than daily readings, and fine-tune within ±0.25 kg per week. Sleep and consistency beat tweaks.",
		},
		string(domain.GoalGain): {
			Default: "Protein ~1.8 g/kg with carbs concentrated around training. Keep the weekly gain under ~0.5 kg; faster is mostly not muscle.",
			ByActivity: map[string]string{
				string(domain.ActivityVeryActive): "Protein ~1.8 g/kg and generous carbs around your sessions; with your training volume, a surplus slightly above +0.3 kg/week can still be lean.",
			},
		},
	}}
}

// Load reads a guidance table from a YAML file of the form:
//
//	lose:
//	  default: "..."
//	  by_activity:
//	    sedentary: "..."
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("guide: read %s: %w", path, err)
	}
	var byGoal map[string]goalGuide
	if err := yaml.Unmarshal(raw, &byGoal); err != nil {
		return nil, fmt.Errorf("guide: parse %s: %w", path, err)
	}
	for goal, g := range byGoal {
		if g.Default == "" {
			return nil, fmt.Errorf("guide: %s: missing default text", goal)
		}
	}
	return &Table{byGoal: byGoal}, nil
}

// Lookup returns the guidance for a goal, preferring an
// activity-specific entry when one exists. Unknown goals yield a
// generic fallback rather than an error; the conversation should never
// break over a missing template.
func (t *Table) Lookup(goal domain.Goal, activity domain.ActivityLevel) string {
	g, ok := t.byGoal[string(goal)]
	if !ok {
		return "Finish your profile with `start` to get goal-specific guidance."
	}
	if text, ok := g.ByActivity[string(activity)]; ok {
		return text
	}
	return g.Default
}
