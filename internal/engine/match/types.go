package match

// MatchResult describes how well one profile fits one job posting.
// Derived, never persisted. Invariant: MatchedSkills and MissingSkills are
// disjoint and together cover the job's required skills (as normalized sets).
type MatchResult struct {
	MatchScore           int  `json:"match_score"`            // 0–100, weighted
	SkillMatchScore      int  `json:"skill_match_score"`      // 0–100
	ExperienceMatchScore int  `json:"experience_match_score"` // 0–100
	TrackMatchScore      int  `json:"track_match_score"`      // 0–100
	ExperienceMatch      bool `json:"experience_match"`
	TrackMatch           bool `json:"track_match"`

	// MatchedSkills and MissingSkills keep the job's required-skill order
	// and original casing.
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`

	// MatchReasons holds at most 3 short explanations: skill overlap first,
	// then experience, then track.
	MatchReasons []string `json:"match_reasons"`
}

// Priority classifies a skill gap by how often the corpus requires it.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// SkillGap is one missing skill aggregated across a job corpus.
type SkillGap struct {
	Skill        string   `json:"skill"`         // display casing from first corpus occurrence
	Frequency    int      `json:"frequency"`     // jobs missing this skill
	RelatedJobs  int      `json:"related_jobs"`  // distinct job IDs, <= corpus size
	FrequencyPct float64  `json:"frequency_pct"` // frequency / corpus size * 100, 1 decimal
	Priority     Priority `json:"priority"`
}

// GapSummary carries corpus-level aggregates alongside the gap list.
// Every numeric field is well-defined for an empty corpus (zeros, never NaN).
type GapSummary struct {
	TotalJobsAnalyzed   int     `json:"total_jobs_analyzed"`
	TotalRequiredSkills int     `json:"total_required_skills"` // distinct across corpus
	ProfileSkillCount   int     `json:"profile_skill_count"`
	MissingSkillCount   int     `json:"missing_skill_count"` // distinct
	AverageMatchScore   float64 `json:"average_match_score"` // exact unweighted mean, unrounded
}

// GapAnalysis is the aggregator output: prioritized gaps plus summary stats.
type GapAnalysis struct {
	Gaps    []SkillGap `json:"gaps"`
	Summary GapSummary `json:"summary"`
}

// RankedResource annotates a catalog resource with its overlap against the
// caller's missing-skill set. Used only for ordering.
type RankedResource struct {
	ResourceID   string   `json:"resource_id"`
	Title        string   `json:"title"`
	Provider     string   `json:"provider,omitempty"`
	URL          string   `json:"url,omitempty"`
	Cost         string   `json:"cost,omitempty"`
	OverlapCount int      `json:"overlap_count"`
	Covers       []string `json:"covers"` // missing skills this resource addresses
}

// JobMatch pairs a job with its match result for corpus-wide ranking.
type JobMatch struct {
	JobID   string      `json:"job_id"`
	Title   string      `json:"title"`
	Company string      `json:"company,omitempty"`
	Result  MatchResult `json:"result"`
}
