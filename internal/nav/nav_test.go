package nav

import (
	"testing"

	"github.com/radarsat1/re-up/internal/store"
	"github.com/radarsat1/re-up/internal/study"
)

func seed(kv store.KV, plans []study.StudyPlan, history []study.SessionRecord) {
	store.Save(kv, store.KeyStudyPlans, plans)
	store.Save(kv, store.KeySessionHistory, history)
}

func TestResolveEmptyStore(t *testing.T) {
	kv := store.NewMemKV()
	res := Resolve(kv)
	if res.State != StateSetup {
		t.Errorf("state = %q, want setup", res.State)
	}
}

func TestResolveActivePlan(t *testing.T) {
	kv := store.NewMemKV()
	seed(kv, []study.StudyPlan{{ID: "p1", Topic: "Go"}}, nil)
	store.Save(kv, store.KeyActivePlanID, "p1")

	res := Resolve(kv)
	if res.State != StateStudyPlan || res.PlanID != "p1" {
		t.Errorf("resolution = %+v", res)
	}
}

func TestResolveInProgressSession(t *testing.T) {
	kv := store.NewMemKV()
	seed(kv,
		[]study.StudyPlan{{ID: "p1", Topic: "Go"}},
		[]study.SessionRecord{{ID: "s1", PlanID: "p1", Status: study.StatusInProgress}},
	)
	store.Save(kv, store.KeyActivePlanID, "p1")
	store.Save(kv, store.KeyActiveSessionID, "s1")

	res := Resolve(kv)
	if res.State != StateQuiz || res.SessionID != "s1" {
		t.Errorf("resolution = %+v", res)
	}
}

func TestResolveCompletedSession(t *testing.T) {
	kv := store.NewMemKV()
	seed(kv,
		[]study.StudyPlan{{ID: "p1", Topic: "Go"}},
		[]study.SessionRecord{{ID: "s1", PlanID: "p1", Status: study.StatusCompleted}},
	)
	store.Save(kv, store.KeyActiveSessionID, "s1")

	res := Resolve(kv)
	if res.State != StateFeedback {
		t.Errorf("state = %q, want feedback", res.State)
	}
}

func TestResolveForcesOwningPlan(t *testing.T) {
	kv := store.NewMemKV()
	seed(kv,
		[]study.StudyPlan{{ID: "p1"}, {ID: "p2"}},
		[]study.SessionRecord{{ID: "s1", PlanID: "p1", Status: study.StatusInProgress}},
	)
	store.Save(kv, store.KeyActivePlanID, "p2")
	store.Save(kv, store.KeyActiveSessionID, "s1")

	res := Resolve(kv)
	if res.PlanID != "p1" {
		t.Errorf("plan = %q, want owning plan p1", res.PlanID)
	}
	if got := store.Load(kv, store.KeyActivePlanID, ""); got != "p1" {
		t.Errorf("stored active plan = %q, want p1", got)
	}
}

func TestResolveDanglingSessionFallsThrough(t *testing.T) {
	kv := store.NewMemKV()
	seed(kv, []study.StudyPlan{{ID: "p1"}}, nil)
	store.Save(kv, store.KeyActivePlanID, "p1")
	store.Save(kv, store.KeyActiveSessionID, "ghost")

	res := Resolve(kv)
	if res.State != StateStudyPlan {
		t.Errorf("state = %q, want study_plan", res.State)
	}
	if got := store.Load(kv, store.KeyActiveSessionID, "x"); got != "" {
		t.Errorf("dangling session id not cleared: %q", got)
	}
}

func TestResolveDanglingPlanCleared(t *testing.T) {
	kv := store.NewMemKV()
	store.Save(kv, store.KeyActivePlanID, "ghost")

	res := Resolve(kv)
	if res.State != StateSetup {
		t.Errorf("state = %q, want setup", res.State)
	}
	if got := store.Load(kv, store.KeyActivePlanID, "x"); got != "" {
		t.Errorf("dangling plan id not cleared: %q", got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	kv := store.NewMemKV()
	seed(kv, []study.StudyPlan{{ID: "p1"}}, nil)
	store.Save(kv, store.KeyActivePlanID, "p1")
	store.Save(kv, store.KeyActiveSessionID, "ghost")

	first := Resolve(kv)
	writes := kv.Writes(store.KeyActiveSessionID) + kv.Writes(store.KeyActivePlanID)
	second := Resolve(kv)
	writesAfter := kv.Writes(store.KeyActiveSessionID) + kv.Writes(store.KeyActivePlanID)

	if first != second {
		t.Errorf("resolutions differ: %+v vs %+v", first, second)
	}
	if writesAfter != writes {
		t.Errorf("second Resolve wrote %d more times", writesAfter-writes)
	}
}
