package app

import (
	"fmt"
	"strconv"
	"strings"

	"dietcoach/internal/domain"
)

// onboardingOrder is the fixed question sequence.
var onboardingOrder = []domain.OnboardingStage{
	domain.StageAwaitingSex,
	domain.StageAwaitingAge,
	domain.StageAwaitingHeight,
	domain.StageAwaitingWeight,
	domain.StageAwaitingActivity,
	domain.StageAwaitingGoal,
}

var onboardingPrompts = map[domain.OnboardingStage]string{
	domain.StageAwaitingSex:      "What is your sex? (male/female)",
	domain.StageAwaitingAge:      "How old are you? (whole years)",
	domain.StageAwaitingHeight:   "How tall are you in cm? e.g. 170",
	domain.StageAwaitingWeight:   "What is your current weight in kg? e.g. 65.5",
	domain.StageAwaitingActivity: "How active are you? (sedentary/light/active/very_active)",
	domain.StageAwaitingGoal:     "What is your goal? (lose/maintain/gain)",
}

// Onboarding drives the multi-turn profile collection flow. It mutates
// the session and profile it is handed; callers persist both only after
// a successful step, which keeps each message all-or-nothing.
type Onboarding struct{}

// Start begins or resumes onboarding. If the profile is already
// complete it short-circuits to the complete stage and says so.
func (Onboarding) Start(sess *domain.ChatSession, p *domain.Profile) string {
	if p.Complete() {
		sess.Stage = domain.StageComplete
		return "Your profile is already complete. Send `plan` for your targets or `log <kg>` to record a weight."
	}
	sess.Stage = firstMissingStage(p)
	return fmt.Sprintf("Let's set up your profile.\n%s\n%s",
		progressBar(onboardingStepsDone(p), len(onboardingOrder)),
		onboardingPrompts[sess.Stage])
}

// Advance consumes one answer for the current stage. On invalid input
// the stage does not move and a validation error is returned; the
// caller re-prompts. completed is true once the last field is set.
func (Onboarding) Advance(sess *domain.ChatSession, p *domain.Profile, input string) (reply string, completed bool, err error) {
	if err := applyStageInput(sess.Stage, p, input); err != nil {
		return "", false, err
	}

	if p.Complete() {
		sess.Stage = domain.StageComplete
		return fmt.Sprintf("Onboarding complete!\n%s",
			progressBar(len(onboardingOrder), len(onboardingOrder))), true, nil
	}

	sess.Stage = firstMissingStage(p)
	return fmt.Sprintf("%s\n%s",
		progressBar(onboardingStepsDone(p), len(onboardingOrder)),
		onboardingPrompts[sess.Stage]), false, nil
}

// Prompt returns the question for a stage, for re-prompting after a
// rejected answer.
func (Onboarding) Prompt(stage domain.OnboardingStage) string {
	return onboardingPrompts[stage]
}

func applyStageInput(stage domain.OnboardingStage, p *domain.Profile, input string) error {
	input = strings.TrimSpace(input)
	switch stage {
	case domain.StageAwaitingSex:
		sex, err := domain.ParseSex(input)
		if err != nil {
			return err
		}
		p.Sex = sex
	case domain.StageAwaitingAge:
		age, err := parseAge(input)
		if err != nil {
			return err
		}
		p.Age = age
	case domain.StageAwaitingHeight:
		h, err := parseHeight(input)
		if err != nil {
			return err
		}
		p.HeightCm = h
	case domain.StageAwaitingWeight:
		w, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return &domain.ValidationError{Field: "weight", Hint: "a number in kg, e.g. 65.5"}
		}
		if err := domain.ValidateWeight(w); err != nil {
			return err
		}
		p.WeightKg = w
	case domain.StageAwaitingActivity:
		a, err := domain.ParseActivityLevel(input)
		if err != nil {
			return err
		}
		p.Activity = a
	case domain.StageAwaitingGoal:
		g, err := domain.ParseGoal(input)
		if err != nil {
			return err
		}
		p.Goal = g
	default:
		return &domain.ValidationError{Field: "input", Hint: "send `start` to begin onboarding"}
	}
	return nil
}

func parseAge(input string) (int, error) {
	age, err := strconv.Atoi(input)
	if err != nil || age < 10 || age > 120 {
		return 0, &domain.ValidationError{Field: "age", Hint: "a whole number between 10 and 120"}
	}
	return age, nil
}

func parseHeight(input string) (float64, error) {
	h, err := strconv.ParseFloat(input, 64)
	if err != nil || h < 80 || h > 250 {
		return 0, &domain.ValidationError{Field: "height", Hint: "centimeters between 80 and 250, e.g. 170"}
	}
	return h, nil
}

func firstMissingStage(p *domain.Profile) domain.OnboardingStage {
	missing := p.MissingFields()
	if len(missing) == 0 {
		return domain.StageComplete
	}
	byField := map[string]domain.OnboardingStage{
		"sex":      domain.StageAwaitingSex,
		"age":      domain.StageAwaitingAge,
		"height":   domain.StageAwaitingHeight,
		"weight":   domain.StageAwaitingWeight,
		"activity": domain.StageAwaitingActivity,
		"goal":     domain.StageAwaitingGoal,
	}
	return byField[missing[0]]
}

func onboardingStepsDone(p *domain.Profile) int {
	return len(onboardingOrder) - len(p.MissingFields())
}

// progressBar renders a fixed-width completion bar like [███░░░░░░░] 2/6.
func progressBar(done, total int) string {
	const width = 10
	if done < 0 {
		done = 0
	}
	if done > total {
		done = total
	}
	filled := 0
	if total > 0 {
		filled = width * done / total
	}
	return fmt.Sprintf("[%s%s] %d/%d",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), done, total)
}
