// Package nav recomputes the screen state from persisted data. It runs on
// startup and after every state change, so storage stays the single source
// of truth and dangling references are healed in place.
package nav

import (
	"github.com/radarsat1/re-up/internal/store"
	"github.com/radarsat1/re-up/internal/study"
)

// State is the top-level screen the app shows.
type State string

const (
	StateSetup       State = "setup"
	StateStudyPlan   State = "study_plan"
	StateQuiz        State = "quiz"
	StateFeedback    State = "feedback"
	StateLoadingPlan State = "loading_plan"
)

// Resolution is the reconciled navigation target: which state to show and
// which plan and session (if any) it refers to.
type Resolution struct {
	State     State
	PlanID    string
	SessionID string
}

// Resolve recomputes navigation from the KV keys.
//
// Precedence: an active session wins and forces its owning plan active
// (quiz while in progress, feedback once completed); otherwise an active
// plan shows the plan view; otherwise setup. Dangling ids are cleared in
// storage as they are found, so Resolve is idempotent: calling it again
// returns the same result without further writes.
func Resolve(kv store.KV) Resolution {
	sessionID := store.Load(kv, store.KeyActiveSessionID, "")
	if sessionID != "" {
		if rec, ok := findSession(kv, sessionID); ok {
			if planID := store.Load(kv, store.KeyActivePlanID, ""); planID != rec.PlanID {
				store.Save(kv, store.KeyActivePlanID, rec.PlanID)
			}
			state := StateFeedback
			if rec.Status == study.StatusInProgress {
				state = StateQuiz
			}
			return Resolution{State: state, PlanID: rec.PlanID, SessionID: rec.ID}
		}
		store.Save(kv, store.KeyActiveSessionID, "")
	}

	planID := store.Load(kv, store.KeyActivePlanID, "")
	if planID != "" {
		if planExists(kv, planID) {
			return Resolution{State: StateStudyPlan, PlanID: planID}
		}
		store.Save(kv, store.KeyActivePlanID, "")
	}

	return Resolution{State: StateSetup}
}

func findSession(kv store.KV, sessionID string) (*study.SessionRecord, bool) {
	history := store.Load(kv, store.KeySessionHistory, []study.SessionRecord{})
	for i := range history {
		if history[i].ID == sessionID {
			return &history[i], true
		}
	}
	return nil, false
}

func planExists(kv store.KV, planID string) bool {
	for _, p := range store.Load(kv, store.KeyStudyPlans, []study.StudyPlan{}) {
		if p.ID == planID {
			return true
		}
	}
	return false
}
