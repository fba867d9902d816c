package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	MatchRequests     atomic.Int64
	RankRequests      atomic.Int64
	GapAnalyses       atomic.Int64
	RecommendRequests atomic.Int64
	ChatTurns         atomic.Int64
	ChatBusy          atomic.Int64
	CompletionCalls   atomic.Int64
	CompletionErrors  atomic.Int64
	StoreQueries      atomic.Int64
	StoreErrors       atomic.Int64
}

// Incrementors for the mentorserver and chat packages.
func IncrMatchRequests()     { metrics.MatchRequests.Add(1) }
func IncrRankRequests()      { metrics.RankRequests.Add(1) }
func IncrGapAnalyses()       { metrics.GapAnalyses.Add(1) }
func IncrRecommendRequests() { metrics.RecommendRequests.Add(1) }
func IncrChatTurns()         { metrics.ChatTurns.Add(1) }
func IncrChatBusy()          { metrics.ChatBusy.Add(1) }
func IncrStoreQueries()      { metrics.StoreQueries.Add(1) }
func IncrStoreErrors()       { metrics.StoreErrors.Add(1) }

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"match_requests":     metrics.MatchRequests.Load(),
		"rank_requests":      metrics.RankRequests.Load(),
		"gap_analyses":       metrics.GapAnalyses.Load(),
		"recommend_requests": metrics.RecommendRequests.Load(),
		"chat_turns":         metrics.ChatTurns.Load(),
		"chat_busy":          metrics.ChatBusy.Load(),
		"completion_calls":   metrics.CompletionCalls.Load(),
		"completion_errors":  metrics.CompletionErrors.Load(),
		"store_queries":      metrics.StoreQueries.Load(),
		"store_errors":       metrics.StoreErrors.Load(),
		"cache_hits":         hits,
		"cache_misses":       misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the server runner.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"match_requests", "rank_requests", "gap_analyses", "recommend_requests",
		"chat_turns", "chat_busy",
		"completion_calls", "completion_errors",
		"store_queries", "store_errors",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// slowOpThreshold is the latency above which a tool call is worth flagging.
// Gap analysis over a large job corpus and mentor turns are the usual suspects.
const slowOpThreshold = 5 * time.Second

// TrackOperation runs fn and logs a warning if it takes longer than
// slowOpThreshold. The error from fn is returned unchanged.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	if elapsed := time.Since(start); elapsed > slowOpThreshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
