package match

import (
	"fmt"
	"sort"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
)

// Recommend cross-references missing skills against the resource catalog and
// returns the top-limit resources ranked by how many missing skills each one
// covers. Ordering is deterministic: overlap descending, catalog insertion
// order on ties. An empty catalog or missing set yields an empty list.
func Recommend(missingSkills []string, catalog []engine.LearningResource, limit int) ([]RankedResource, error) {
	return RecommendWith(DefaultMatcher, missingSkills, catalog, limit)
}

// RecommendWith ranks with an explicit skill-matching strategy.
func RecommendWith(m SkillMatcher, missingSkills []string, catalog []engine.LearningResource, limit int) ([]RankedResource, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", engine.ErrInvalidInput, limit)
	}
	if m == nil {
		m = DefaultMatcher
	}

	missing := normalizeAll(missingSkills)
	ranked := make([]RankedResource, 0, len(catalog))
	seen := make(map[string]bool, len(catalog))

	for _, res := range catalog {
		// A resource appears at most once even if the catalog query upstream
		// returned it for several overlapping gap sets.
		if res.ID != "" && seen[res.ID] {
			continue
		}

		covers := coveredSkills(m, res.Skills, missing)
		if len(covers) == 0 {
			continue
		}
		if res.ID != "" {
			seen[res.ID] = true
		}

		ranked = append(ranked, RankedResource{
			ResourceID:   res.ID,
			Title:        res.Title,
			Provider:     res.Provider,
			URL:          res.URL,
			Cost:         string(res.Cost),
			OverlapCount: len(covers),
			Covers:       covers,
		})
	}

	// Stable keeps catalog insertion order between equally-ranked resources,
	// so repeated calls with identical inputs return identical ordering.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverlapCount > ranked[j].OverlapCount
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// coveredSkills returns the missing skills (normalized) that any of the
// resource's related skills match. Counted per missing skill, not per
// related skill, so a resource listing both "js" and "javascript" covers a
// missing "javascript" once.
func coveredSkills(m SkillMatcher, resourceSkills, missing []string) []string {
	covers := make([]string, 0, len(missing))
	normalized := normalizeAll(resourceSkills)
	for _, want := range missing {
		if matchesAny(m, want, normalized) {
			covers = append(covers, want)
		}
	}
	return covers
}
