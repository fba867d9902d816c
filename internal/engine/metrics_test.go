package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTrackOperation_ReturnsFnError(t *testing.T) {
	want := errors.New("boom")
	err := TrackOperation(context.Background(), "test_op", func(ctx context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("TrackOperation() = %v, want %v", err, want)
	}
}

func TestTrackOperation_NilOnSuccess(t *testing.T) {
	called := false
	err := TrackOperation(context.Background(), "test_op", func(ctx context.Context) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("TrackOperation() = %v, want nil", err)
	}
	if !called {
		t.Error("fn was not invoked")
	}
}

func TestTrackOperation_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")
	err := TrackOperation(ctx, "test_op", func(got context.Context) error {
		if got.Value(key{}) != "v" {
			t.Error("fn did not receive the caller's context")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("TrackOperation() = %v, want nil", err)
	}
}

func TestFormatMetrics_ListsAllCounters(t *testing.T) {
	out := FormatMetrics()
	for _, k := range []string{
		"match_requests", "rank_requests", "gap_analyses", "recommend_requests",
		"chat_turns", "chat_busy", "completion_calls", "completion_errors",
		"store_queries", "store_errors", "cache_hits", "cache_misses",
	} {
		if !strings.Contains(out, k+" ") {
			t.Errorf("FormatMetrics() missing %q:\n%s", k, out)
		}
	}
}
