// Package toolutil provides shared helpers for the career engine's MCP
// tools: store reads with retry and consistent error shaping, and cached
// tool results.
package toolutil

import (
	"context"
	"fmt"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/store"
)

// storeRetry backs off transient store failures (connection drops, DNS).
// Package var so tests can shrink the waits.
var storeRetry = engine.DefaultRetryConfig

// ProfileFor fetches a profile by ID, mapping an empty ID to InvalidInput
// before touching the store.
func ProfileFor(ctx context.Context, st store.Store, profileID string) (engine.Profile, error) {
	if profileID == "" {
		return engine.Profile{}, fmt.Errorf("%w: profile_id is required", engine.ErrInvalidInput)
	}
	return engine.RetryDo(ctx, storeRetry, func() (engine.Profile, error) {
		return st.FindProfile(ctx, profileID)
	})
}

// JobFor fetches a single posting by ID through the bulk-read contract.
func JobFor(ctx context.Context, st store.Store, jobID string) (engine.JobPosting, error) {
	if jobID == "" {
		return engine.JobPosting{}, fmt.Errorf("%w: job_id is required", engine.ErrInvalidInput)
	}
	jobs, err := JobsFor(ctx, st, store.JobFilter{ID: jobID})
	if err != nil {
		return engine.JobPosting{}, err
	}
	if len(jobs) == 0 {
		return engine.JobPosting{}, fmt.Errorf("job %s: %w", jobID, store.ErrNotFound)
	}
	return jobs[0], nil
}

// JobsFor reads jobs through the retry wrapper. Non-transient failures
// surface immediately.
func JobsFor(ctx context.Context, st store.Store, f store.JobFilter) ([]engine.JobPosting, error) {
	return engine.RetryDo(ctx, storeRetry, func() ([]engine.JobPosting, error) {
		return st.FindJobs(ctx, f)
	})
}

// ResourcesFor reads catalog resources through the retry wrapper.
func ResourcesFor(ctx context.Context, st store.Store, f store.ResourceFilter) ([]engine.LearningResource, error) {
	return engine.RetryDo(ctx, storeRetry, func() ([]engine.LearningResource, error) {
		return st.FindResources(ctx, f)
	})
}

// CacheLoadJSON tries to load a cached tool result of type T.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	return engine.CacheLoadJSON[T](ctx, key)
}

// CacheStoreJSON stores a tool result in the engine cache.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	engine.CacheStoreJSON(ctx, key, v)
}
