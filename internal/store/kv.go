package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
)

// Logical KV keys. Each holds one whole-value JSON document and is read
// and written independently; there are no cross-key transactions.
const (
	KeyStudyPlans      = "studyPlans"
	KeyActivePlanID    = "activePlanId"
	KeySessionHistory  = "sessionHistory"
	KeyActiveSessionID = "activeSessionId"
)

// KV is whole-value JSON key/value persistence. Reads never fail from the
// caller's perspective: a missing or unreadable key reports ok=false and
// the caller falls back to a default. Writes are best-effort: failures are
// logged and swallowed so in-memory state stays consistent even when
// persistence silently fails.
type KV interface {
	// Get returns the raw value for key, or ok=false if absent or unreadable.
	Get(key string) (value []byte, ok bool)

	// Set stores the raw value for key. Failures are logged, not returned.
	Set(key string, value []byte)
}

// Load reads key from kv and unmarshals it into T. A missing key or
// malformed JSON returns def and logs a warning; it never fails.
func Load[T any](kv KV, key string, def T) T {
	raw, ok := kv.Get(key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Fprintf(os.Stderr, "warning: malformed value for key %q, using default: %v\n", key, err)
		return def
	}
	return v
}

// Save marshals v and writes it under key. Serialization failures are
// logged, not propagated.
func Save[T any](kv KV, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to serialize value for key %q: %v\n", key, err)
		return
	}
	kv.Set(key, raw)
}

// sqliteKV implements KV over the store's kv table.
type sqliteKV struct {
	db *sql.DB
}

func (k *sqliteKV) Get(key string) ([]byte, bool) {
	var value string
	err := k.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			fmt.Fprintf(os.Stderr, "warning: read key %q: %v\n", key, err)
		}
		return nil, false
	}
	return []byte(value), true
}

func (k *sqliteKV) Set(key string, value []byte) {
	_, err := k.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(value),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: write key %q: %v\n", key, err)
	}
}

