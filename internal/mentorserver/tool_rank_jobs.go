package mentorserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine/match"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/store"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/toolutil"
)

// RankJobsInput is the input for rank_jobs.
type RankJobsInput struct {
	ProfileID string `json:"profile_id"`
	Track     string `json:"track,omitempty"` // partial, case-insensitive
	Limit     int    `json:"limit,omitempty"` // default 15
}

// RankJobsOutput lists the corpus ranked by match score.
type RankJobsOutput struct {
	Jobs    []match.JobMatch `json:"jobs"`
	Total   int              `json:"total"`
	Summary string           `json:"summary"`
}

func registerRankJobs(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rank_jobs",
		Description: "Rank all job postings (optionally filtered by track) against a candidate profile, best match first. Returns per-job match results with sub-scores and skill partitions.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input RankJobsInput) (*mcp.CallToolResult, RankJobsOutput, error) {
		if input.Limit < 0 {
			return nil, RankJobsOutput{}, fmt.Errorf("%w: limit must not be negative", engine.ErrInvalidInput)
		}
		limit := input.Limit
		if limit == 0 {
			limit = engine.Cfg.RecommendLimit
		}

		profile, err := toolutil.ProfileFor(ctx, st, input.ProfileID)
		if err != nil {
			return nil, RankJobsOutput{}, err
		}
		jobs, err := toolutil.JobsFor(ctx, st, store.JobFilter{Track: input.Track})
		if err != nil {
			return nil, RankJobsOutput{}, err
		}

		engine.IncrRankRequests()
		ranked := match.RankJobs(profile, jobs, engine.Cfg.Scoring, limit)

		summary := "No jobs found."
		if len(ranked) > 0 {
			summary = fmt.Sprintf("Ranked %d of %d jobs. Top match: %s (%d/100).",
				len(ranked), len(jobs), ranked[0].Title, ranked[0].Result.MatchScore)
		}
		return nil, RankJobsOutput{Jobs: ranked, Total: len(jobs), Summary: summary}, nil
	})
}
