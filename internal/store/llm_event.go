package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// eventRepo implements EventRepo over the llm_events table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
			(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolToInt(data.Success), data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	var b strings.Builder
	b.WriteString(`SELECT id, timestamp, provider, model, purpose,
		input_tokens, output_tokens, latency_ms, success, error_message
		FROM llm_events`)

	var args []any
	if opts.Purpose != "" {
		b.WriteString(" WHERE purpose = ?")
		args = append(args, opts.Purpose)
	}
	b.WriteString(" ORDER BY id DESC")
	if opts.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEventRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success, error_message
		 FROM llm_events WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query llm event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanLLMEvent(rows)
}

func scanLLMEvent(rows *sql.Rows) (*LLMRequestEventRecord, error) {
	var rec LLMRequestEventRecord
	var success int
	err := rows.Scan(
		&rec.ID, &rec.Timestamp, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &success, &rec.ErrorMessage,
	)
	if err != nil {
		return nil, fmt.Errorf("scan llm event: %w", err)
	}
	rec.Success = success != 0
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
