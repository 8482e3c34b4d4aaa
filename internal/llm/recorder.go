package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/wizquest/internal/store"
)

// PurposeWordDraft labels catalog drafting requests.
const PurposeWordDraft = "word-draft"

type purposeKey struct{}

// WithPurpose labels the requests made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// Recorder stores one event per LLM call. store.EventRepo satisfies it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type recordingProvider struct {
	Provider
	rec Recorder
	log *slog.Logger
}

// WithRecorder records every call, failed ones included. A nil recorder
// is a no-op. Recording errors are logged and never fail the call.
func WithRecorder(rec Recorder, logger *slog.Logger) Middleware {
	if rec == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return func(p Provider) Provider {
		return &recordingProvider{Provider: p, rec: rec, log: logger}
	}
}

func (r *recordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.Provider.Generate(ctx, req)

	ev := requestEvent(r.Name(), r.ModelID(), PurposeFrom(ctx), req, resp, err)
	ev.LatencyMs = time.Since(start).Milliseconds()

	r.log.Debug("llm call",
		"provider", ev.Provider,
		"model", ev.Model,
		"purpose", ev.Purpose,
		"latency_ms", ev.LatencyMs,
		"ok", ev.Success)

	if recErr := r.rec.AppendLLMRequest(context.WithoutCancel(ctx), ev); recErr != nil {
		r.log.Warn("record llm call", "error", recErr)
	}
	return resp, err
}

func requestEvent(provider, model, purpose string, req Request, resp *Response, err error) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    provider,
		Model:       model,
		Purpose:     purpose,
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		var e *Error
		if errors.As(err, &e) && len(e.Content) > 0 {
			ev.ResponseBody = string(e.Content)
		}
	}
	return ev
}

// transcript renders a request as plain text for the event log.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
