package mentorserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine/match"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/store"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/toolutil"
)

// ScoreJobInput is the input for score_job.
type ScoreJobInput struct {
	ProfileID string `json:"profile_id"`
	JobID     string `json:"job_id"`
}

// ScoreJobOutput pairs the match result with inline resource suggestions for
// the posting's missing skills.
type ScoreJobOutput struct {
	JobID     string                 `json:"job_id"`
	Title     string                 `json:"title"`
	Company   string                 `json:"company,omitempty"`
	Result    match.MatchResult      `json:"result"`
	Resources []match.RankedResource `json:"resources,omitempty"`
}

func registerScoreJob(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "score_job",
		Description: "Score how well a candidate profile fits a single job posting. Returns a 0-100 weighted match score with skill/experience/track sub-scores, matched and missing skills, human-readable match reasons, and a short list of learning resources covering the missing skills.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input ScoreJobInput) (*mcp.CallToolResult, ScoreJobOutput, error) {
		profile, err := toolutil.ProfileFor(ctx, st, input.ProfileID)
		if err != nil {
			return nil, ScoreJobOutput{}, err
		}
		job, err := toolutil.JobFor(ctx, st, input.JobID)
		if err != nil {
			return nil, ScoreJobOutput{}, err
		}

		engine.IncrMatchRequests()
		result := match.CalculateMatch(profile, job, engine.Cfg.Scoring)

		out := ScoreJobOutput{
			JobID:   job.ID,
			Title:   job.Title,
			Company: job.Company,
			Result:  result,
		}

		if len(result.MissingSkills) > 0 {
			catalog, err := toolutil.ResourcesFor(ctx, st, store.ResourceFilter{})
			if err != nil {
				// Inline suggestions are best-effort; the score stands alone.
				slog.Warn("score_job: resource lookup failed", slog.Any("error", err))
				return nil, out, nil
			}
			ranked, err := match.Recommend(result.MissingSkills, catalog, engine.Cfg.InlineRecommendLimit)
			if err == nil {
				out.Resources = ranked
			}
		}
		return nil, out, nil
	})
}
