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

// SkillGapInput is the input for skill_gap_analysis.
type SkillGapInput struct {
	ProfileID string `json:"profile_id"`
	Track     string `json:"track,omitempty"` // partial, case-insensitive
}

// SkillGapOutput is the full learning-plan picture: prioritized gaps, corpus
// summary, and the ranked resources covering those gaps.
type SkillGapOutput struct {
	Analysis  match.GapAnalysis      `json:"analysis"`
	Resources []match.RankedResource `json:"resources"`
	Summary   string                 `json:"summary"`
}

func registerSkillGapAnalysis(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "skill_gap_analysis",
		Description: "Aggregate missing skills across the job corpus (optionally filtered by track) for a candidate profile. Returns gaps prioritized high/medium/low by missing frequency, corpus summary statistics, and ranked learning resources covering the gaps.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input SkillGapInput) (*mcp.CallToolResult, SkillGapOutput, error) {
		var out SkillGapOutput
		err := engine.TrackOperation(ctx, "skill_gap_analysis", func(ctx context.Context) error {
			var err error
			out, err = runSkillGap(ctx, input)
			return err
		})
		if err != nil {
			return nil, SkillGapOutput{}, err
		}
		return nil, out, nil
	})
}

// runSkillGap is the full corpus scan behind skill_gap_analysis.
func runSkillGap(ctx context.Context, input SkillGapInput) (SkillGapOutput, error) {
	profile, err := toolutil.ProfileFor(ctx, st, input.ProfileID)
	if err != nil {
		return SkillGapOutput{}, err
	}

	cacheKey := engine.CacheKey("skill_gap", input.ProfileID, input.Track)
	if out, ok := toolutil.CacheLoadJSON[SkillGapOutput](ctx, cacheKey); ok {
		return out, nil
	}

	jobs, err := toolutil.JobsFor(ctx, st, store.JobFilter{Track: input.Track})
	if err != nil {
		return SkillGapOutput{}, err
	}

	engine.IncrGapAnalyses()
	analysis := match.AnalyzeGaps(profile, jobs, gapOptions(input.Track))

	out := SkillGapOutput{
		Analysis:  analysis,
		Resources: []match.RankedResource{},
	}
	if len(analysis.Gaps) > 0 {
		catalog, err := toolutil.ResourcesFor(ctx, st, store.ResourceFilter{})
		if err != nil {
			return SkillGapOutput{}, err
		}
		ranked, err := match.Recommend(gapSkills(analysis.Gaps), catalog, engine.Cfg.RecommendLimit)
		if err != nil {
			return SkillGapOutput{}, err
		}
		out.Resources = ranked
	}

	out.Summary = fmt.Sprintf("Analyzed %d jobs: %d distinct missing skills, average match %.1f/100.",
		analysis.Summary.TotalJobsAnalyzed, analysis.Summary.MissingSkillCount, analysis.Summary.AverageMatchScore)

	toolutil.CacheStoreJSON(ctx, cacheKey, out)
	return out, nil
}
