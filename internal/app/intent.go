package app

import (
	"strconv"
	"strings"

	"dietcoach/internal/domain"
)

// IntentKind is the closed set of message classifications.
type IntentKind string

// Intent kinds.
const (
	IntentStart        IntentKind = "start"
	IntentPlan         IntentKind = "plan"
	IntentLog          IntentKind = "log"
	IntentHistory      IntentKind = "history"
	IntentProfileShow  IntentKind = "profile-show"
	IntentProfileSet   IntentKind = "profile-set"
	IntentGuide        IntentKind = "guide"
	IntentReset        IntentKind = "reset"
	IntentHelp         IntentKind = "help"
	IntentUnrecognized IntentKind = "unrecognized"
)

// Intent is a classified inbound message with its parsed arguments.
type Intent struct {
	Kind     IntentKind
	WeightKg float64 // IntentLog
	Key      string  // IntentProfileSet
	Value    string  // IntentProfileSet
}

// ParseIntent classifies a raw message. Keyword matching is
// case-insensitive. Syntactically malformed arguments (e.g. `log abc`)
// return the intent's kind along with a ValidationError so the caller
// can re-prompt with the right usage hint. Free text that matches no
// command comes back as IntentUnrecognized, never an error.
func ParseIntent(text string) (Intent, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(fields) == 0 {
		return Intent{Kind: IntentUnrecognized}, nil
	}

	switch fields[0] {
	case "start":
		return Intent{Kind: IntentStart}, nil
	case "plan":
		return Intent{Kind: IntentPlan}, nil
	case "history":
		return Intent{Kind: IntentHistory}, nil
	case "guide":
		return Intent{Kind: IntentGuide}, nil
	case "reset":
		return Intent{Kind: IntentReset}, nil
	case "help":
		return Intent{Kind: IntentHelp}, nil
	case "log":
		if len(fields) != 2 {
			return Intent{Kind: IntentLog}, &domain.ValidationError{Field: "log", Hint: "`log <kg>`, e.g. log 65.2"}
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Intent{Kind: IntentLog}, &domain.ValidationError{Field: "log", Hint: "`log <kg>`, e.g. log 65.2"}
		}
		if err := domain.ValidateWeight(v); err != nil {
			return Intent{Kind: IntentLog}, err
		}
		return Intent{Kind: IntentLog, WeightKg: v}, nil
	case "profile":
		if len(fields) >= 2 && fields[1] == "show" {
			return Intent{Kind: IntentProfileShow}, nil
		}
		if len(fields) >= 2 && fields[1] == "set" {
			if len(fields) != 4 {
				return Intent{Kind: IntentProfileSet}, &domain.ValidationError{
					Field: "profile set", Hint: "`profile set <key> <value>`, e.g. profile set activity light",
				}
			}
			return Intent{Kind: IntentProfileSet, Key: fields[2], Value: fields[3]}, nil
		}
		return Intent{Kind: IntentUnrecognized}, nil
	}

	return Intent{Kind: IntentUnrecognized}, nil
}
