package match

import (
	"sort"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
)

// RankJobs scores every job in the corpus against the profile and returns
// the top-limit jobs by match score. Ties keep corpus order, so ranking is
// deterministic. limit <= 0 returns the full ranked corpus.
func RankJobs(p engine.Profile, jobs []engine.JobPosting, w engine.ScoringWeights, limit int) []JobMatch {
	return RankJobsWith(DefaultMatcher, p, jobs, w, limit)
}

// RankJobsWith ranks with an explicit skill-matching strategy.
func RankJobsWith(m SkillMatcher, p engine.Profile, jobs []engine.JobPosting, w engine.ScoringWeights, limit int) []JobMatch {
	ranked := make([]JobMatch, 0, len(jobs))
	for _, job := range jobs {
		ranked = append(ranked, JobMatch{
			JobID:   job.ID,
			Title:   job.Title,
			Company: job.Company,
			Result:  CalculateMatchWith(m, p, job, w),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.MatchScore > ranked[j].Result.MatchScore
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
