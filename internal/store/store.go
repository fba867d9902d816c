// Package store provides the document store the engine reads profiles,
// job postings, and learning resources from. The engine never assumes a
// query language; any backend offering filtered bulk reads satisfies Store.
package store

import (
	"context"
	"errors"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
)

// ErrNotFound marks a lookup for an entity that does not exist. Distinct
// from engine.ErrUpstream: the store answered, there was just no document.
var ErrNotFound = errors.New("not found")

// JobFilter narrows FindJobs. ID is an exact match, Track a case-insensitive
// partial match. Limit <= 0 means no limit.
type JobFilter struct {
	ID    string
	Track string
	Limit int
}

// ResourceFilter narrows FindResources. Skill is a case-insensitive partial
// match against a resource's related skills. Limit <= 0 means no limit.
type ResourceFilter struct {
	Skill string
	Limit int
}

// Store is the narrow interface over the platform's document persistence.
type Store interface {
	FindProfile(ctx context.Context, id string) (engine.Profile, error)
	FindJobs(ctx context.Context, f JobFilter) ([]engine.JobPosting, error)
	FindResources(ctx context.Context, f ResourceFilter) ([]engine.LearningResource, error)

	UpsertProfile(ctx context.Context, p engine.Profile) error
	UpsertJob(ctx context.Context, j engine.JobPosting) error
	UpsertResource(ctx context.Context, r engine.LearningResource) error

	Close()
}
