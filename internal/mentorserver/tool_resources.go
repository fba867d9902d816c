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

// RecommendResourcesInput is the input for recommend_resources. Skills may
// be given directly; when omitted, the profile's aggregated gaps are used.
type RecommendResourcesInput struct {
	ProfileID string   `json:"profile_id,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Limit     int      `json:"limit,omitempty"` // default 15
}

// RecommendResourcesOutput lists catalog resources ranked by how many of the
// requested skills each covers.
type RecommendResourcesOutput struct {
	Resources []match.RankedResource `json:"resources"`
	Total     int                    `json:"total"`
}

func registerRecommendResources(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend_resources",
		Description: "Recommend learning resources for a set of skills. Pass skills explicitly or a profile_id to use the profile's aggregated skill gaps. Resources are ranked by overlap count with deterministic ordering and deduplicated.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input RecommendResourcesInput) (*mcp.CallToolResult, RecommendResourcesOutput, error) {
		if input.Limit < 0 {
			return nil, RecommendResourcesOutput{}, fmt.Errorf("%w: limit must not be negative", engine.ErrInvalidInput)
		}
		limit := input.Limit
		if limit == 0 {
			limit = engine.Cfg.RecommendLimit
		}

		skills := input.Skills
		if len(skills) == 0 {
			if input.ProfileID == "" {
				return nil, RecommendResourcesOutput{}, fmt.Errorf("%w: skills or profile_id is required", engine.ErrInvalidInput)
			}
			profile, err := toolutil.ProfileFor(ctx, st, input.ProfileID)
			if err != nil {
				return nil, RecommendResourcesOutput{}, err
			}
			jobs, err := toolutil.JobsFor(ctx, st, store.JobFilter{})
			if err != nil {
				return nil, RecommendResourcesOutput{}, err
			}
			skills = gapSkills(match.AnalyzeGaps(profile, jobs, gapOptions("")).Gaps)
		}

		catalog, err := toolutil.ResourcesFor(ctx, st, store.ResourceFilter{})
		if err != nil {
			return nil, RecommendResourcesOutput{}, err
		}

		engine.IncrRecommendRequests()
		ranked, err := match.Recommend(skills, catalog, limit)
		if err != nil {
			return nil, RecommendResourcesOutput{}, err
		}
		return nil, RecommendResourcesOutput{Resources: ranked, Total: len(ranked)}, nil
	})
}
