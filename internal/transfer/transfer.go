// Package transfer implements the versioned export/import envelope and the
// identity merge that imports apply to stored data.
package transfer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/radarsat1/re-up/internal/store"
	"github.com/radarsat1/re-up/internal/study"
)

// Version is the only envelope version this build reads or writes.
const Version = 1

// Envelope types.
const (
	TypeFull       = "full"
	TypeSinglePlan = "single_plan"
)

// Envelope is the export file format.
type Envelope struct {
	Version   int    `json:"version"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Data      Data   `json:"data"`
}

// Data carries the exported entity lists.
type Data struct {
	StudyPlans     []study.StudyPlan     `json:"studyPlans"`
	SessionHistory []study.SessionRecord `json:"sessionHistory"`
}

// ExportFull builds a full export of all stored plans and history.
func ExportFull(kv store.KV) *Envelope {
	return &Envelope{
		Version:   Version,
		Type:      TypeFull,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data: Data{
			StudyPlans:     store.Load(kv, store.KeyStudyPlans, []study.StudyPlan{}),
			SessionHistory: store.Load(kv, store.KeySessionHistory, []study.SessionRecord{}),
		},
	}
}

// ExportPlan builds a single-plan export: one plan plus only its sessions.
func ExportPlan(kv store.KV, planID string) (*Envelope, error) {
	var plan *study.StudyPlan
	for _, p := range store.Load(kv, store.KeyStudyPlans, []study.StudyPlan{}) {
		if p.ID == planID {
			plan = &p
			break
		}
	}
	if plan == nil {
		return nil, fmt.Errorf("study plan not found: %s", planID)
	}

	sessions := []study.SessionRecord{}
	for _, r := range store.Load(kv, store.KeySessionHistory, []study.SessionRecord{}) {
		if r.PlanID == planID {
			sessions = append(sessions, r)
		}
	}

	return &Envelope{
		Version:   Version,
		Type:      TypeSinglePlan,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data: Data{
			StudyPlans:     []study.StudyPlan{*plan},
			SessionHistory: sessions,
		},
	}, nil
}

// rawEnvelope defers data field decoding so validation can distinguish a
// missing array from an empty one.
type rawEnvelope struct {
	Version   int             `json:"version"`
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

type rawData struct {
	StudyPlans     json.RawMessage `json:"studyPlans"`
	SessionHistory json.RawMessage `json:"sessionHistory"`
}

// Parse decodes and validates an export file. Any mismatch returns a
// descriptive error and no envelope; Parse never touches storage.
func Parse(raw []byte) (*Envelope, error) {
	var outer rawEnvelope
	if err := json.Unmarshal(raw, &outer); err != nil {
		return nil, fmt.Errorf("import file is not valid JSON: %w", err)
	}
	if outer.Version != Version {
		return nil, fmt.Errorf("unsupported export version %d, want %d", outer.Version, Version)
	}
	if outer.Type != TypeFull && outer.Type != TypeSinglePlan {
		return nil, fmt.Errorf("unknown export type %q", outer.Type)
	}
	if len(outer.Data) == 0 {
		return nil, fmt.Errorf("export file has no data section")
	}

	var fields rawData
	if err := json.Unmarshal(outer.Data, &fields); err != nil {
		return nil, fmt.Errorf("export data section is malformed: %w", err)
	}
	if fields.StudyPlans == nil {
		return nil, fmt.Errorf("export data is missing the studyPlans array")
	}
	if fields.SessionHistory == nil {
		return nil, fmt.Errorf("export data is missing the sessionHistory array")
	}

	env := &Envelope{Version: outer.Version, Type: outer.Type, Timestamp: outer.Timestamp}
	if err := json.Unmarshal(fields.StudyPlans, &env.Data.StudyPlans); err != nil {
		return nil, fmt.Errorf("studyPlans is not an array of plans: %w", err)
	}
	if err := json.Unmarshal(fields.SessionHistory, &env.Data.SessionHistory); err != nil {
		return nil, fmt.Errorf("sessionHistory is not an array of sessions: %w", err)
	}
	return env, nil
}

// Merge applies an imported envelope to storage by identity: entries with
// matching ids are replaced by the imported version, everything else from
// both sides survives. Existing order is kept; new imports append.
func Merge(kv store.KV, env *Envelope) {
	plans := store.Load(kv, store.KeyStudyPlans, []study.StudyPlan{})
	imported := make(map[string]study.StudyPlan, len(env.Data.StudyPlans))
	for _, p := range env.Data.StudyPlans {
		imported[p.ID] = p
	}
	for i, p := range plans {
		if in, ok := imported[p.ID]; ok {
			plans[i] = in
			delete(imported, p.ID)
		}
	}
	for _, p := range env.Data.StudyPlans {
		if _, ok := imported[p.ID]; ok {
			plans = append(plans, p)
		}
	}
	store.Save(kv, store.KeyStudyPlans, plans)

	history := store.Load(kv, store.KeySessionHistory, []study.SessionRecord{})
	importedSessions := make(map[string]study.SessionRecord, len(env.Data.SessionHistory))
	for _, r := range env.Data.SessionHistory {
		importedSessions[r.ID] = r
	}
	for i, r := range history {
		if in, ok := importedSessions[r.ID]; ok {
			history[i] = in
			delete(importedSessions, r.ID)
		}
	}
	for _, r := range env.Data.SessionHistory {
		if _, ok := importedSessions[r.ID]; ok {
			history = append(history, r)
		}
	}
	store.Save(kv, store.KeySessionHistory, history)
}

// WriteFile serializes the envelope to path with indentation.
func WriteFile(path string, env *Envelope) error {
	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize export: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// ReadFile reads and validates an export file.
func ReadFile(path string) (*Envelope, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return Parse(raw)
}
