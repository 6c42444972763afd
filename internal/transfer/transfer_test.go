package transfer

import (
	"strings"
	"testing"

	"github.com/radarsat1/re-up/internal/store"
	"github.com/radarsat1/re-up/internal/study"
)

func seededKV() *store.MemKV {
	kv := store.NewMemKV()
	store.Save(kv, store.KeyStudyPlans, []study.StudyPlan{
		{ID: "p1", Topic: "Go"},
		{ID: "p2", Topic: "SQL"},
	})
	store.Save(kv, store.KeySessionHistory, []study.SessionRecord{
		{ID: "s1", PlanID: "p1", Status: study.StatusCompleted},
		{ID: "s2", PlanID: "p2", Status: study.StatusInProgress},
	})
	return kv
}

func TestExportFull(t *testing.T) {
	env := ExportFull(seededKV())
	if env.Version != 1 || env.Type != TypeFull {
		t.Errorf("envelope header = %d/%q", env.Version, env.Type)
	}
	if env.Timestamp == "" {
		t.Error("missing timestamp")
	}
	if len(env.Data.StudyPlans) != 2 || len(env.Data.SessionHistory) != 2 {
		t.Errorf("data = %d plans, %d sessions", len(env.Data.StudyPlans), len(env.Data.SessionHistory))
	}
}

func TestExportPlanFiltersHistory(t *testing.T) {
	env, err := ExportPlan(seededKV(), "p1")
	if err != nil {
		t.Fatalf("ExportPlan: %v", err)
	}
	if env.Type != TypeSinglePlan {
		t.Errorf("type = %q", env.Type)
	}
	if len(env.Data.StudyPlans) != 1 || env.Data.StudyPlans[0].ID != "p1" {
		t.Errorf("plans = %+v", env.Data.StudyPlans)
	}
	if len(env.Data.SessionHistory) != 1 || env.Data.SessionHistory[0].ID != "s1" {
		t.Errorf("sessions = %+v", env.Data.SessionHistory)
	}
}

func TestExportPlanUnknown(t *testing.T) {
	if _, err := ExportPlan(seededKV(), "ghost"); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseRoundTrip(t *testing.T) {
	raw := []byte(`{
		"version": 1,
		"type": "full",
		"timestamp": "2026-03-01T12:00:00Z",
		"data": {"studyPlans": [{"id":"p1","topic":"Go"}], "sessionHistory": []}
	}`)
	env, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(env.Data.StudyPlans) != 1 || env.Data.StudyPlans[0].Topic != "Go" {
		t.Errorf("plans = %+v", env.Data.StudyPlans)
	}
}

func TestParseRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"not json", `{]`, "not valid JSON"},
		{"wrong version", `{"version":2,"type":"full","data":{"studyPlans":[],"sessionHistory":[]}}`, "version"},
		{"bad type", `{"version":1,"type":"partial","data":{"studyPlans":[],"sessionHistory":[]}}`, "type"},
		{"no data", `{"version":1,"type":"full"}`, "data"},
		{"missing plans", `{"version":1,"type":"full","data":{"sessionHistory":[]}}`, "studyPlans"},
		{"missing history", `{"version":1,"type":"full","data":{"studyPlans":[]}}`, "sessionHistory"},
		{"plans not array", `{"version":1,"type":"full","data":{"studyPlans":{},"sessionHistory":[]}}`, "array"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestMergeImportedWins(t *testing.T) {
	kv := seededKV()
	env := &Envelope{
		Version: 1,
		Type:    TypeFull,
		Data: Data{
			StudyPlans: []study.StudyPlan{
				{ID: "p1", Topic: "Go (updated)"},
				{ID: "p3", Topic: "Kubernetes"},
			},
			SessionHistory: []study.SessionRecord{
				{ID: "s1", PlanID: "p1", Status: study.StatusInProgress},
			},
		},
	}

	Merge(kv, env)

	plans := store.Load(kv, store.KeyStudyPlans, []study.StudyPlan{})
	if len(plans) != 3 {
		t.Fatalf("plans = %d, want 3", len(plans))
	}
	byID := map[string]study.StudyPlan{}
	for _, p := range plans {
		byID[p.ID] = p
	}
	if byID["p1"].Topic != "Go (updated)" {
		t.Errorf("imported plan did not win: %q", byID["p1"].Topic)
	}
	if byID["p2"].Topic != "SQL" {
		t.Error("non-conflicting existing plan lost")
	}
	if byID["p3"].Topic != "Kubernetes" {
		t.Error("non-conflicting imported plan lost")
	}

	history := store.Load(kv, store.KeySessionHistory, []study.SessionRecord{})
	if len(history) != 2 {
		t.Fatalf("history = %d, want 2", len(history))
	}
	for _, r := range history {
		if r.ID == "s1" && r.Status != study.StatusInProgress {
			t.Error("imported session did not win")
		}
	}
}

func TestMergeIntoEmptyStore(t *testing.T) {
	kv := store.NewMemKV()
	Merge(kv, &Envelope{
		Version: 1,
		Type:    TypeSinglePlan,
		Data: Data{
			StudyPlans:     []study.StudyPlan{{ID: "p9", Topic: "Rust"}},
			SessionHistory: []study.SessionRecord{},
		},
	})

	plans := store.Load(kv, store.KeyStudyPlans, []study.StudyPlan{})
	if len(plans) != 1 || plans[0].ID != "p9" {
		t.Errorf("plans = %+v", plans)
	}
}

func TestWriteReadFile(t *testing.T) {
	path := t.TempDir() + "/export.json"
	orig := ExportFull(seededKV())
	if err := WriteFile(path, orig); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	env, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(env.Data.StudyPlans) != 2 {
		t.Errorf("plans after round trip = %d", len(env.Data.StudyPlans))
	}
}
