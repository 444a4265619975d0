package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"dietcoach/internal/domain"
	"dietcoach/internal/guide"
)

const helpText = "Commands:\n" +
	"- start — begin or resume onboarding\n" +
	"- plan — recompute your calorie/macro plan\n" +
	"- log <kg> — record a weight, e.g. log 65.2\n" +
	"- history — 7-day and 30-day trend summary\n" +
	"- profile show / profile set <key> <value>\n" +
	"- guide — eating guidance for your goal\n" +
	"- reset — clear profile and session\n" +
	"- help — this list"

const unrecognizedHint = "I didn't understand that. Send `help` for the command list."

// CoachConfig carries the router-level policy knobs.
type CoachConfig struct {
	// ResetPurgesHistory makes `reset` delete weight logs as well as
	// the profile and session.
	ResetPurgesHistory bool
	// SuggestLookbackDays is how much history feeds the post-log
	// suggestion.
	SuggestLookbackDays int
}

// DefaultCoachConfig returns the standard router policy.
func DefaultCoachConfig() CoachConfig {
	return CoachConfig{ResetPurgesHistory: false, SuggestLookbackDays: 14}
}

// CoachService is the conversation router: it classifies each inbound
// message, threads it through the onboarding state machine or the right
// computation service, and assembles the reply. All state transitions
// for one user are serialized; different users proceed in parallel.
type CoachService struct {
	profiles domain.ProfileRepository
	sessions domain.ChatSessionRepository
	weights  domain.WeightRepository

	plans      *PlanService
	trends     *TrendService
	suggests   *SuggestService
	guides     *guide.Table
	onboarding Onboarding

	cfg CoachConfig
	now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCoachService wires the router to its stores and computation
// services.
func NewCoachService(
	profiles domain.ProfileRepository,
	sessions domain.ChatSessionRepository,
	weights domain.WeightRepository,
	plans *PlanService,
	trends *TrendService,
	suggests *SuggestService,
	guides *guide.Table,
	cfg CoachConfig,
) *CoachService {
	return &CoachService{
		profiles: profiles,
		sessions: sessions,
		weights:  weights,
		plans:    plans,
		trends:   trends,
		suggests: suggests,
		guides:   guides,
		cfg:      cfg,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// userLock returns the per-user mutex, creating it on first contact.
func (s *CoachService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Handle processes one inbound message and returns the reply text.
// A non-nil error means a store failure; every conversational problem
// (bad input, incomplete profile, unknown command) becomes a reply.
func (s *CoachService) Handle(ctx context.Context, userID, text string) (string, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := s.now()

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return "", &domain.StoreUnavailableError{Op: "get profile", Err: err}
	}
	if profile == nil {
		profile = domain.NewProfile(userID, now)
		if err := s.profiles.PutProfile(ctx, profile); err != nil {
			return "", &domain.StoreUnavailableError{Op: "create profile", Err: err}
		}
	}

	sess, err := s.sessions.GetSession(ctx, userID)
	if err != nil {
		return "", &domain.StoreUnavailableError{Op: "get session", Err: err}
	}
	if sess == nil {
		sess = domain.NewChatSession(userID, now)
	}

	intent, perr := ParseIntent(text)
	if perr != nil {
		return fmt.Sprintf("%s.", capitalize(perr.Error())), nil
	}

	switch intent.Kind {
	case IntentHelp:
		return helpText, nil
	case IntentReset:
		return s.handleReset(ctx, userID)
	case IntentStart:
		reply := s.onboarding.Start(sess, profile)
		sess.UpdatedAt = now.UTC()
		if err := s.sessions.PutSession(ctx, sess); err != nil {
			return "", &domain.StoreUnavailableError{Op: "put session", Err: err}
		}
		return reply, nil
	case IntentProfileShow:
		return "Your profile:\n" + profile.Describe(), nil
	case IntentProfileSet:
		return s.handleProfileSet(ctx, profile, intent.Key, intent.Value, now)
	case IntentPlan:
		return s.requireComplete(profile, func() (string, error) {
			return s.handlePlan(ctx, profile)
		})
	case IntentLog:
		return s.requireComplete(profile, func() (string, error) {
			return s.handleLog(ctx, profile, intent.WeightKg, now)
		})
	case IntentHistory:
		return s.requireComplete(profile, func() (string, error) {
			return s.handleHistory(ctx, profile, now)
		})
	case IntentGuide:
		return s.requireComplete(profile, func() (string, error) {
			return s.guides.Lookup(profile.Goal, profile.Activity), nil
		})
	}

	// Not a command: mid-onboarding it is an answer, otherwise a miss.
	if sess.Onboarding() {
		return s.handleOnboardingAnswer(ctx, sess, profile, text, now)
	}
	return unrecognizedHint, nil
}

// requireComplete gates commands that need a finished profile behind a
// guidance reply instead of an error.
func (s *CoachService) requireComplete(p *domain.Profile, next func() (string, error)) (string, error) {
	if !p.Complete() {
		return fmt.Sprintf("Your profile isn't complete yet (missing: %s). Send `start` to finish onboarding.",
			strings.Join(p.MissingFields(), ", ")), nil
	}
	return next()
}

func (s *CoachService) handleReset(ctx context.Context, userID string) (string, error) {
	if err := s.sessions.DeleteSession(ctx, userID); err != nil {
		return "", &domain.StoreUnavailableError{Op: "delete session", Err: err}
	}
	if err := s.profiles.DeleteProfile(ctx, userID); err != nil {
		return "", &domain.StoreUnavailableError{Op: "delete profile", Err: err}
	}
	reply := "Profile and session cleared."
	if s.cfg.ResetPurgesHistory {
		if err := s.weights.PurgeWeights(ctx, userID); err != nil {
			return "", &domain.StoreUnavailableError{Op: "purge weights", Err: err}
		}
		reply = "Profile, session and weight history cleared."
	}
	return reply + " Send `start` to begin again.", nil
}

func (s *CoachService) handleProfileSet(ctx context.Context, p *domain.Profile, key, value string, now time.Time) (string, error) {
	if err := setProfileField(p, key, value); err != nil {
		return fmt.Sprintf("%s.", capitalize(err.Error())), nil
	}
	p.UpdatedAt = now.UTC()
	if err := s.profiles.PutProfile(ctx, p); err != nil {
		return "", &domain.StoreUnavailableError{Op: "put profile", Err: err}
	}
	return fmt.Sprintf("Updated %s to %s.", key, value), nil
}

func (s *CoachService) handlePlan(ctx context.Context, p *domain.Profile) (string, error) {
	latest, err := s.latestWeight(ctx, p.UserID)
	if err != nil {
		return "", err
	}
	plan, cerr := s.plans.Compute(p, latest)
	if cerr != nil {
		// Complete() is checked by the caller; reaching this means the
		// profile lost a field mid-flight. Treat as guidance.
		return "Your profile isn't complete yet. Send `start` to finish onboarding.", nil
	}
	return renderPlan(plan), nil
}

func (s *CoachService) handleLog(ctx context.Context, p *domain.Profile, valueKg float64, now time.Time) (string, error) {
	entry := domain.WeightLog{UserID: p.UserID, ValueKg: valueKg, CreatedAt: now.UTC()}
	if _, err := s.weights.AppendWeight(ctx, entry); err != nil {
		return "", &domain.StoreUnavailableError{Op: "append weight", Err: err}
	}

	since := now.AddDate(0, 0, -s.cfg.SuggestLookbackDays)
	logs, err := s.weights.ListWeightsSince(ctx, p.UserID, since)
	if err != nil {
		return "", &domain.StoreUnavailableError{Op: "list weights", Err: err}
	}

	plan, cerr := s.plans.Compute(p, valueKg)
	if cerr != nil {
		return fmt.Sprintf("Logged %s.", domain.DisplayWeight(valueKg, p.Unit)), nil
	}
	suggestion := s.suggests.Suggest(plan, p.Goal, logs, now)
	return fmt.Sprintf("Logged %s.\n%s", domain.DisplayWeight(valueKg, p.Unit), suggestion.Text), nil
}

func (s *CoachService) handleHistory(ctx context.Context, p *domain.Profile, now time.Time) (string, error) {
	logs, err := s.weights.ListWeightsSince(ctx, p.UserID, now.AddDate(0, 0, -30))
	if err != nil {
		return "", &domain.StoreUnavailableError{Op: "list weights", Err: err}
	}
	s7 := s.trends.Summarize(logs, 7, now)
	s30 := s.trends.Summarize(logs, 30, now)
	return "Weight history\n" + renderSummary(s7, p.Unit) + "\n" + renderSummary(s30, p.Unit), nil
}

func (s *CoachService) handleOnboardingAnswer(ctx context.Context, sess *domain.ChatSession, p *domain.Profile, text string, now time.Time) (string, error) {
	reply, done, aerr := s.onboarding.Advance(sess, p, text)
	if aerr != nil {
		// Stage unchanged, nothing persisted: idempotent under rejection.
		return fmt.Sprintf("%s.\n%s", capitalize(aerr.Error()), s.onboarding.Prompt(sess.Stage)), nil
	}

	p.UpdatedAt = now.UTC()
	if err := s.profiles.PutProfile(ctx, p); err != nil {
		return "", &domain.StoreUnavailableError{Op: "put profile", Err: err}
	}
	sess.UpdatedAt = now.UTC()
	if err := s.sessions.PutSession(ctx, sess); err != nil {
		return "", &domain.StoreUnavailableError{Op: "put session", Err: err}
	}

	if done {
		if plan, cerr := s.plans.Compute(p, 0); cerr == nil {
			reply += "\n\n" + renderPlan(plan)
		}
	}
	return reply, nil
}

// latestWeight returns the most recent logged weight, or 0 when the
// ledger is empty.
func (s *CoachService) latestWeight(ctx context.Context, userID string) (float64, error) {
	logs, err := s.weights.ListWeightsSince(ctx, userID, time.Time{})
	if err != nil {
		return 0, &domain.StoreUnavailableError{Op: "list weights", Err: err}
	}
	if len(logs) == 0 {
		return 0, nil
	}
	return logs[len(logs)-1].ValueKg, nil
}

func setProfileField(p *domain.Profile, key, value string) error {
	switch key {
	case "sex":
		sex, err := domain.ParseSex(value)
		if err != nil {
			return err
		}
		p.Sex = sex
	case "age":
		age, err := parseAge(value)
		if err != nil {
			return err
		}
		p.Age = age
	case "height":
		h, err := parseHeight(value)
		if err != nil {
			return err
		}
		p.HeightCm = h
	case "weight":
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return &domain.ValidationError{Field: "weight", Hint: "a number in kg"}
		}
		if err := domain.ValidateWeight(w); err != nil {
			return err
		}
		p.WeightKg = w
	case "activity":
		a, err := domain.ParseActivityLevel(value)
		if err != nil {
			return err
		}
		p.Activity = a
	case "goal":
		g, err := domain.ParseGoal(value)
		if err != nil {
			return err
		}
		p.Goal = g
	case "unit":
		if value != "kg" && value != "lb" {
			return &domain.ValidationError{Field: "unit", Hint: "kg or lb"}
		}
		p.Unit = value
	default:
		return &domain.ValidationError{Field: "key", Hint: "one of sex, age, height, weight, activity, goal, unit"}
	}
	return nil
}

func renderPlan(plan domain.Plan) string {
	lines := []string{
		"Plan",
		fmt.Sprintf("BMR: %.0f kcal / TDEE: %.0f kcal", plan.BmrKcal, plan.TdeeKcal),
		fmt.Sprintf("Target: %d kcal (maintenance %d kcal)", plan.TargetKcal, plan.MaintenanceKcal),
		fmt.Sprintf("Macros: P %dg / F %dg / C %dg", plan.ProteinG, plan.FatG, plan.CarbG),
	}
	if plan.Note != "" {
		lines = append(lines, "Note: "+plan.Note)
	}
	lines = append(lines, "Estimates only, not medical advice.")
	return strings.Join(lines, "\n")
}

func renderSummary(sum domain.Summary, unit string) string {
	if !sum.Sufficient {
		return fmt.Sprintf("%d-day: %d entries, not enough data yet", sum.WindowDays, sum.SampleCount)
	}
	return fmt.Sprintf("%d-day: %d entries, avg %s, change %+.1f kg (%s)",
		sum.WindowDays, sum.SampleCount, domain.DisplayWeight(sum.AverageKg, unit), sum.DeltaKg, sum.Trend)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
