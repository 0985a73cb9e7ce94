package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // exact session match
	Purpose   string    // LLM events only
}

// LLMRequestEventData captures a single model call.
type LLMRequestEventData struct {
	SessionID    string
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

// LLMEventRecord is a stored model call.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates calls by model for cost estimates.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Session lifecycle actions.
const (
	SessionActionStart  = "start"
	SessionActionFinish = "finish"
	SessionActionReset  = "reset"
)

// SessionEventData captures a practice-session lifecycle transition.
type SessionEventData struct {
	SessionID      string
	Action         string
	Level          string
	PlannedCount   int
	QuestionsAsked int
	Answered       int
	DurationSecs   int
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to recorded events.
type EventRepo interface {
	// AppendLLMRequest records a model API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns model calls, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one model call by ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendSessionEvent records a session lifecycle transition.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns session events, newest first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)
}

// Review is the post-session feedback tuple.
type Review struct {
	SessionID    string
	Level        string
	Rating       int
	Comment      string
	AverageScore float64
}

// ReviewRecord is a stored review.
type ReviewRecord struct {
	ID        int
	Timestamp time.Time
	Review
}

// ReviewStats summarizes all stored reviews.
type ReviewStats struct {
	Count        int
	AvgRating    float64
	AvgScore     float64
	ByLevelCount map[string]int
}

// ReviewRepo persists post-session reviews.
type ReviewRepo interface {
	// SaveReview stores a review and returns its ID.
	SaveReview(ctx context.Context, r Review) (int, error)

	// ListReviews returns reviews, newest first. limit <= 0 means all.
	ListReviews(ctx context.Context, limit int) ([]ReviewRecord, error)

	// Stats aggregates rating and score over all reviews.
	Stats(ctx context.Context) (ReviewStats, error)
}
