package mentorserver

import (
	"context"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine/match"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/store"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/toolutil"
)

// StoreContext implements chat.ContextSource over the document store: it
// runs the gap aggregation across the full job corpus and counts the catalog
// resources that cover the resulting gaps.
type StoreContext struct {
	st store.Store
}

// NewStoreContext builds the mentor's briefing source.
func NewStoreContext(s store.Store) *StoreContext {
	return &StoreContext{st: s}
}

func (c *StoreContext) MentorContext(ctx context.Context, p engine.Profile) (match.GapAnalysis, int, error) {
	jobs, err := toolutil.JobsFor(ctx, c.st, store.JobFilter{})
	if err != nil {
		return match.GapAnalysis{}, 0, err
	}
	analysis := match.AnalyzeGaps(p, jobs, gapOptions(""))

	if len(analysis.Gaps) == 0 {
		return analysis, 0, nil
	}

	catalog, err := toolutil.ResourcesFor(ctx, c.st, store.ResourceFilter{})
	if err != nil {
		return match.GapAnalysis{}, 0, err
	}
	ranked, err := match.Recommend(gapSkills(analysis.Gaps), catalog, engine.Cfg.RecommendLimit)
	if err != nil {
		return match.GapAnalysis{}, 0, err
	}
	return analysis, len(ranked), nil
}
