package match

import (
	"fmt"
	"math"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
)

// Sub-score constants. The neutral score keeps incomplete profiles from
// being punished for fields they never filled in.
const (
	scoreFull    = 100
	scoreNeutral = 50
	// Each tier the profile sits below the requirement costs this much.
	experienceTierPenalty = 40
)

// CalculateMatch scores one profile against one job posting using the
// default substring skill matcher. Weights with a non-positive sum fall back
// to the documented 60/25/15 defaults, so a zero Config still scores sanely.
func CalculateMatch(p engine.Profile, job engine.JobPosting, w engine.ScoringWeights) MatchResult {
	return CalculateMatchWith(DefaultMatcher, p, job, w)
}

// CalculateMatchWith scores with an explicit skill-matching strategy.
// It never fails: empty or missing optional fields degrade to neutral
// sub-scores.
func CalculateMatchWith(m SkillMatcher, p engine.Profile, job engine.JobPosting, w engine.ScoringWeights) MatchResult {
	if m == nil {
		m = DefaultMatcher
	}
	if w.Skill+w.Experience+w.Track <= 0 {
		w = engine.DefaultConfig().Scoring
	}

	r := MatchResult{
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}

	// Skill partition. Matched/missing keep the job's required order and
	// casing; comparison happens on normalized strings.
	profileSkills := normalizeAll(p.Skills)
	seen := make(map[string]bool, len(job.Skills))
	required := 0
	for _, raw := range job.Skills {
		n := Normalize(raw)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		required++
		if matchesAny(m, n, profileSkills) {
			r.MatchedSkills = append(r.MatchedSkills, raw)
		} else {
			r.MissingSkills = append(r.MissingSkills, raw)
		}
	}

	if required == 0 {
		// Vacuously satisfied; avoids division by zero.
		r.SkillMatchScore = scoreFull
	} else {
		r.SkillMatchScore = roundPct(float64(len(r.MatchedSkills)) / float64(required))
	}

	r.ExperienceMatchScore, r.ExperienceMatch = experienceScore(p.Experience, job.Experience)
	r.TrackMatchScore, r.TrackMatch = trackScore(p.PreferredTrack, job.Track)

	total := w.Skill + w.Experience + w.Track
	weighted := (float64(r.SkillMatchScore)*w.Skill +
		float64(r.ExperienceMatchScore)*w.Experience +
		float64(r.TrackMatchScore)*w.Track) / total
	r.MatchScore = clampScore(int(math.Round(weighted)))

	r.MatchReasons = matchReasons(r, required, p, job)
	return r
}

// experienceScore compares levels on the ordinal ladder. Equal or above the
// requirement scores full (overqualified still satisfies). Below decays
// linearly per tier with a floor at 0. Unset profile level scores neutral;
// a job without a requirement is trivially met.
func experienceScore(profile, job engine.ExperienceLevel) (score int, matched bool) {
	jobRank, jobOK := job.Rank()
	if !jobOK {
		return scoreFull, true
	}
	profRank, profOK := profile.Rank()
	if !profOK {
		return scoreNeutral, false
	}
	if profRank >= jobRank {
		return scoreFull, true
	}
	score = scoreFull - experienceTierPenalty*(jobRank-profRank)
	if score < 0 {
		score = 0
	}
	return score, false
}

// trackScore is binary: full when the profile's preferred track equals the
// job's track (case-insensitive) or when the profile has no preference.
func trackScore(preferred, jobTrack string) (score int, matched bool) {
	if Normalize(jobTrack) == "" {
		return scoreFull, true
	}
	p := Normalize(preferred)
	if p == "" {
		return scoreFull, false
	}
	if p == Normalize(jobTrack) {
		return scoreFull, true
	}
	return 0, false
}

// matchReasons builds at most 3 short explanations in fixed priority order
// so downstream UI and chat consumption stays predictable.
func matchReasons(r MatchResult, required int, p engine.Profile, job engine.JobPosting) []string {
	reasons := make([]string, 0, 3)

	if required == 0 {
		reasons = append(reasons, "No specific skills required")
	} else {
		reasons = append(reasons, fmt.Sprintf("You have %d of %d required skills", len(r.MatchedSkills), required))
	}

	if _, ok := job.Experience.Rank(); ok {
		switch {
		case r.ExperienceMatch:
			reasons = append(reasons, "Your experience level fits the role")
		case p.Experience == "":
			reasons = append(reasons, "Add your experience level to improve matching")
		default:
			reasons = append(reasons, fmt.Sprintf("Role targets %s level", job.Experience))
		}
	}

	if len(reasons) < 3 && Normalize(job.Track) != "" {
		switch {
		case r.TrackMatch:
			reasons = append(reasons, "Role is in your preferred track")
		case Normalize(p.PreferredTrack) == "":
			reasons = append(reasons, "Set a preferred track to refine matches")
		default:
			reasons = append(reasons, fmt.Sprintf("Role is in the %s track", job.Track))
		}
	}

	if len(reasons) > 3 {
		reasons = reasons[:3]
	}
	return reasons
}

// roundPct converts a 0..1 ratio to a rounded 0–100 integer.
func roundPct(ratio float64) int {
	return clampScore(int(math.Round(ratio * 100)))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
