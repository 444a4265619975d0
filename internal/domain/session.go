package domain

import (
	"context"
	"time"
)

// OnboardingStage tracks which profile field the conversation is waiting on.
type OnboardingStage string

// Onboarding stages in conversation order.
const (
	StageIdle             OnboardingStage = "idle"
	StageAwaitingSex      OnboardingStage = "awaiting_sex"
	StageAwaitingAge      OnboardingStage = "awaiting_age"
	StageAwaitingHeight   OnboardingStage = "awaiting_height"
	StageAwaitingWeight   OnboardingStage = "awaiting_weight"
	StageAwaitingActivity OnboardingStage = "awaiting_activity"
	StageAwaitingGoal     OnboardingStage = "awaiting_goal"
	StageComplete         OnboardingStage = "complete"
)

// ChatSession is the transient per-user conversation state. It exists
// between `start` and onboarding completion and is cleared on `reset`.
type ChatSession struct {
	UserID    string          `json:"userId"`
	Stage     OnboardingStage `json:"stage"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewChatSession creates a session at the idle stage.
func NewChatSession(userID string, now time.Time) *ChatSession {
	return &ChatSession{UserID: userID, Stage: StageIdle, UpdatedAt: now.UTC()}
}

// Onboarding reports whether the session is mid-onboarding.
func (s *ChatSession) Onboarding() bool {
	switch s.Stage {
	case StageIdle, StageComplete:
		return false
	}
	return true
}

// ChatSessionRepository is the port for conversation-state persistence.
type ChatSessionRepository interface {
	GetSession(ctx context.Context, userID string) (*ChatSession, error)
	PutSession(ctx context.Context, s *ChatSession) error
	DeleteSession(ctx context.Context, userID string) error
}
