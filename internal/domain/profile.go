// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Sex is the biological sex used by the BMR equation.
type Sex string

// Valid Sex values.
const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ParseSex validates and normalizes a free-form sex answer.
func ParseSex(s string) (Sex, error) {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale, nil
	case SexFemale:
		return SexFemale, nil
	}
	return "", &ValidationError{Field: "sex", Hint: "male or female"}
}

// ActivityLevel describes habitual daily activity.
type ActivityLevel string

// Valid ActivityLevel values.
const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ParseActivityLevel validates and normalizes an activity-level answer.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	switch ActivityLevel(strings.ToLower(strings.TrimSpace(s))) {
	case ActivitySedentary:
		return ActivitySedentary, nil
	case ActivityLight:
		return ActivityLight, nil
	case ActivityActive:
		return ActivityActive, nil
	case ActivityVeryActive:
		return ActivityVeryActive, nil
	}
	return "", &ValidationError{Field: "activity", Hint: "sedentary, light, active or very_active"}
}

// Goal is the coaching objective.
type Goal string

// Valid Goal values.
const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// ParseGoal validates and normalizes a goal answer.
func ParseGoal(s string) (Goal, error) {
	switch Goal(strings.ToLower(strings.TrimSpace(s))) {
	case GoalLose:
		return GoalLose, nil
	case GoalMaintain:
		return GoalMaintain, nil
	case GoalGain:
		return GoalGain, nil
	}
	return "", &ValidationError{Field: "goal", Hint: "lose, maintain or gain"}
}

// Profile holds everything the coach knows about a chat user.
// A zero field means "not collected yet"; Complete reports whether the
// plan calculator has enough to work with.
type Profile struct {
	UserID    string        `json:"userId"`
	Sex       Sex           `json:"sex"`
	Age       int           `json:"age"`
	HeightCm  float64       `json:"heightCm"`
	WeightKg  float64       `json:"weightKg"`
	Activity  ActivityLevel `json:"activity"`
	Goal      Goal          `json:"goal"`
	Unit      string        `json:"unit"` // display preference: "kg" or "lb"
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// NewProfile creates an empty profile for a first-contact user.
func NewProfile(userID string, now time.Time) *Profile {
	return &Profile{UserID: userID, Unit: "kg", CreatedAt: now.UTC(), UpdatedAt: now.UTC()}
}

// MissingFields returns the names of required fields not yet collected,
// in onboarding order.
func (p *Profile) MissingFields() []string {
	var missing []string
	if p.Sex == "" {
		missing = append(missing, "sex")
	}
	if p.Age == 0 {
		missing = append(missing, "age")
	}
	if p.HeightCm == 0 {
		missing = append(missing, "height")
	}
	if p.WeightKg == 0 {
		missing = append(missing, "weight")
	}
	if p.Activity == "" {
		missing = append(missing, "activity")
	}
	if p.Goal == "" {
		missing = append(missing, "goal")
	}
	return missing
}

// Complete reports whether all required fields are set.
func (p *Profile) Complete() bool {
	return len(p.MissingFields()) == 0
}

// Describe renders the profile fields for a `profile show` reply.
func (p *Profile) Describe() string {
	field := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	num := func(v float64, unit string) string {
		if v == 0 {
			return "-"
		}
		return fmt.Sprintf("%g %s", v, unit)
	}
	age := "-"
	if p.Age > 0 {
		age = fmt.Sprintf("%d", p.Age)
	}
	return fmt.Sprintf(
		"sex: %s\nage: %s\nheight: %s\nweight: %s\nactivity: %s\ngoal: %s\nunit: %s",
		field(string(p.Sex)), age, num(p.HeightCm, "cm"), num(p.WeightKg, "kg"),
		field(string(p.Activity)), field(string(p.Goal)), field(p.Unit),
	)
}

// ProfileRepository is the port for profile persistence.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	PutProfile(ctx context.Context, p *Profile) error
	DeleteProfile(ctx context.Context, userID string) error
}
