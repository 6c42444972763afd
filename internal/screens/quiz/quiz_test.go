package quiz

import (
	"testing"

	"github.com/radarsat1/re-up/internal/screen"
	"github.com/radarsat1/re-up/internal/session"
	"github.com/radarsat1/re-up/internal/store"
	"github.com/radarsat1/re-up/internal/study"
)

func seedSession(t *testing.T, kv *store.MemKV, rec study.SessionRecord) *session.Engine {
	t.Helper()
	store.Save(kv, store.KeySessionHistory, []study.SessionRecord{rec})
	store.Save(kv, store.KeyActiveSessionID, rec.ID)
	return session.NewEngine(kv, nil)
}

func TestNewWithEmptyQuestions(t *testing.T) {
	kv := store.NewMemKV()
	engine := seedSession(t, kv, study.SessionRecord{
		ID:     "s1",
		PlanID: "p1",
		Status: study.StatusInProgress,
	})

	s := New(engine, "s1")
	if s.rec != nil {
		t.Fatal("record without questions must be treated as missing")
	}
	if s.View(80, 24) != "" {
		t.Error("unrenderable session must render empty")
	}

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("Init must request navigation away")
	}
	if _, ok := cmd().(screen.RefreshNavMsg); !ok {
		t.Errorf("Init cmd = %T, want RefreshNavMsg", cmd())
	}
	if engine.ActiveSessionID() != "" {
		t.Errorf("active session not cleared: %q", engine.ActiveSessionID())
	}
}

func TestNewWithMissingSession(t *testing.T) {
	kv := store.NewMemKV()
	engine := session.NewEngine(kv, nil)

	s := New(engine, "nope")
	if s.rec != nil {
		t.Fatal("missing session must leave rec nil")
	}
	if s.View(80, 24) != "" {
		t.Error("missing session must render empty")
	}
}

func TestNewPadsShortAnswers(t *testing.T) {
	kv := store.NewMemKV()
	engine := seedSession(t, kv, study.SessionRecord{
		ID:     "s1",
		PlanID: "p1",
		Status: study.StatusInProgress,
		Questions: []study.Question{
			{Question: "q1?"}, {Question: "q2?"}, {Question: "q3?"},
		},
		UserAnswers: []string{"a1"},
	})

	s := New(engine, "s1")
	if s.rec == nil {
		t.Fatal("record with questions must load")
	}
	if len(s.answers) != 3 {
		t.Fatalf("answers length = %d, want 3", len(s.answers))
	}
	if s.answers[0] != "a1" || s.answers[2] != "" {
		t.Errorf("answers = %v", s.answers)
	}
}
