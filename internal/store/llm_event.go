package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, e LLMRequestEventData) error {
	err := r.insert(ctx, llmRequestsTable, time.Time{},
		column{"provider", e.Provider},
		column{"model", e.Model},
		column{"purpose", e.Purpose},
		column{"input_tokens", e.InputTokens},
		column{"output_tokens", e.OutputTokens},
		column{"latency_ms", e.LatencyMs},
		column{"success", e.Success},
		column{"error_message", e.ErrorMessage},
		column{"request_body", e.RequestBody},
		column{"response_body", e.ResponseBody},
	)
	if err != nil {
		return fmt.Errorf("save llm event: %w", err)
	}
	return nil
}

func selectLLMEvents() *entsql.Selector {
	return builder().Select(
		"id", "sequence", "ts",
		"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms",
		"success", "error_message", "request_body", "response_body",
	).From(entsql.Table(llmRequestsTable))
}

func scanLLMEvent(rows *entsql.Rows, e *LLMRequestEventRecord) error {
	var ts int64
	err := rows.Scan(
		&e.ID, &e.Sequence, &ts,
		&e.Provider, &e.Model, &e.Purpose, &e.InputTokens, &e.OutputTokens, &e.LatencyMs,
		&e.Success, &e.ErrorMessage, &e.RequestBody, &e.ResponseBody,
	)
	e.Timestamp = time.UnixMilli(ts)
	return err
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	sel := opts.apply(selectLLMEvents().OrderBy(entsql.Desc("sequence")))
	events, err := scanAll(ctx, r.drv, sel, scanLLMEvent)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	events, err := scanAll(ctx, r.drv, selectLLMEvents().Where(entsql.EQ("id", id)), scanLLMEvent)
	if err != nil {
		return nil, fmt.Errorf("get llm event %d: %w", id, err)
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	sel := builder().Select(
		"purpose",
		entsql.Count("*"),
		"COALESCE(SUM(input_tokens), 0)",
		"COALESCE(SUM(output_tokens), 0)",
		"CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)",
	).
		From(entsql.Table(llmRequestsTable)).
		GroupBy("purpose").
		OrderBy("purpose")

	out, err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows, s *LLMUsageStats) error {
		return rows.Scan(&s.Purpose, &s.Calls, &s.InputTokens, &s.OutputTokens, &s.AvgLatencyMs)
	})
	if err != nil {
		return nil, fmt.Errorf("llm usage by purpose: %w", err)
	}
	return out, nil
}

// LLMUsageByModel counts successful calls only; failed calls carry no
// billable output.
func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	sel := builder().Select(
		"model",
		entsql.Count("*"),
		"COALESCE(SUM(input_tokens), 0)",
		"COALESCE(SUM(output_tokens), 0)",
	).
		From(entsql.Table(llmRequestsTable)).
		Where(entsql.EQ("success", true)).
		GroupBy("model").
		OrderBy("model")

	out, err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows, m *LLMModelUsage) error {
		return rows.Scan(&m.Model, &m.Calls, &m.InputTokens, &m.OutputTokens)
	})
	if err != nil {
		return nil, fmt.Errorf("llm usage by model: %w", err)
	}
	return out, nil
}
