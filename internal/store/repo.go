package store

import (
	"context"
	"time"

	"github.com/abhisek/wizquest/internal/scoring"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// ProfileRepo persists player progress.
type ProfileRepo interface {
	// Load returns the named profile, or nil if it does not exist.
	Load(ctx context.Context, name string) (*scoring.Progress, error)

	// Save creates or replaces a profile.
	Save(ctx context.Context, p scoring.Progress) error

	// Delete removes a profile and its round and session history.
	Delete(ctx context.Context, name string) error

	// List returns every profile ordered by name.
	List(ctx context.Context) ([]scoring.Progress, error)
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID    string
	Player       string
	Action       string // "start" or "end"
	Mode         string
	Level        int
	Rounds       int
	Correct      int
	XP           int
	DurationSecs int
}

// RoundEventData captures one resolved round.
type RoundEventData struct {
	SessionID   string
	Player      string
	Round       int
	Mode        string
	Tier        string
	ExerciseKey string
	Prompt      string
	Answer      string
	Solution    string
	Correct     bool
	TimedOut    bool
	Remaining   int
	XP          int
	Streak      int
	Hints       int

	// Timestamp defaults to now when zero. It also decides the day the
	// round counts toward.
	Timestamp time.Time
}

// RoundEventRecord is a stored round event.
type RoundEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	RoundEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM calls for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendRoundEvent records a resolved round.
	AppendRoundEvent(ctx context.Context, data RoundEventData) error

	// DailyStats aggregates a player's rounds on the calendar day of day.
	DailyStats(ctx context.Context, player string, day time.Time) (scoring.Stats, error)

	// RecentRounds returns a player's latest rounds, newest first.
	RecentRounds(ctx context.Context, player string, limit int) ([]RoundEventRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
