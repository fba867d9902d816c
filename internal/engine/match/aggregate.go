package match

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
)

// GapOptions controls a corpus skill-gap analysis. The zero value uses the
// default matcher, default weights, and the documented 50%/25% priority
// cutoffs.
type GapOptions struct {
	// TrackFilter keeps only jobs whose track contains the filter,
	// case-insensitive. Empty keeps the whole corpus.
	TrackFilter string

	Weights engine.ScoringWeights
	Cutoffs engine.PriorityCutoffs
	Matcher SkillMatcher

	// Workers > 1 enables the data-parallel path. Output is identical to the
	// serial path.
	Workers int
}

func (o GapOptions) cutoffs() engine.PriorityCutoffs {
	if o.Cutoffs.High <= 0 && o.Cutoffs.Medium <= 0 {
		return engine.DefaultConfig().Priority
	}
	return o.Cutoffs
}

// FilterByTrack returns the jobs whose track label contains filter,
// case-insensitive partial match. Filtering is a caller concern; the scorer
// never filters.
func FilterByTrack(jobs []engine.JobPosting, filter string) []engine.JobPosting {
	f := Normalize(filter)
	if f == "" {
		return jobs
	}
	out := make([]engine.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if strings.Contains(Normalize(j.Track), f) {
			out = append(out, j)
		}
	}
	return out
}

// gapAccum is the mergeable partial state of one aggregation pass.
// Parallel workers each build one and the results are reduced with merge,
// never concurrent writes to a shared map.
type gapAccum struct {
	freq     map[string]int             // normalized skill → jobs missing it
	jobIDs   map[string]map[string]bool // normalized skill → distinct job ids
	display  map[string]string          // normalized skill → original casing
	firstIdx map[string]int             // normalized skill → lowest corpus index
	required map[string]bool            // distinct normalized required skills
	scoreSum int
}

func newGapAccum() *gapAccum {
	return &gapAccum{
		freq:     make(map[string]int),
		jobIDs:   make(map[string]map[string]bool),
		display:  make(map[string]string),
		firstIdx: make(map[string]int),
		required: make(map[string]bool),
	}
}

// addJob scores one job and folds its missing skills into the accumulator.
// idx is the job's position in the filtered corpus; it keys anonymous jobs
// and makes display-casing selection deterministic across workers.
func (a *gapAccum) addJob(m SkillMatcher, p engine.Profile, job engine.JobPosting, idx int, w engine.ScoringWeights) {
	res := CalculateMatchWith(m, p, job, w)
	a.scoreSum += res.MatchScore

	for _, raw := range job.Skills {
		if n := Normalize(raw); n != "" {
			a.required[n] = true
		}
	}

	jobKey := job.ID
	if jobKey == "" {
		jobKey = fmt.Sprintf("#%d", idx)
	}

	// MissingSkills is already unique per job after normalization, so a job
	// can never inflate a skill's frequency twice.
	for _, raw := range res.MissingSkills {
		n := Normalize(raw)
		a.freq[n]++
		if a.jobIDs[n] == nil {
			a.jobIDs[n] = make(map[string]bool)
		}
		a.jobIDs[n][jobKey] = true
		if prev, ok := a.firstIdx[n]; !ok || idx < prev {
			a.firstIdx[n] = idx
			a.display[n] = strings.TrimSpace(raw)
		}
	}
}

// merge folds other into a.
func (a *gapAccum) merge(other *gapAccum) {
	a.scoreSum += other.scoreSum
	for n := range other.required {
		a.required[n] = true
	}
	for n, c := range other.freq {
		a.freq[n] += c
	}
	for n, ids := range other.jobIDs {
		if a.jobIDs[n] == nil {
			a.jobIDs[n] = make(map[string]bool)
		}
		for id := range ids {
			a.jobIDs[n][id] = true
		}
	}
	for n, idx := range other.firstIdx {
		if prev, ok := a.firstIdx[n]; !ok || idx < prev {
			a.firstIdx[n] = idx
			a.display[n] = other.display[n]
		}
	}
}

// AnalyzeGaps runs the match scorer across every job in the (optionally
// track-filtered) corpus and aggregates missing-skill frequency into a
// prioritized gap list. An empty corpus yields zeroed summary fields and an
// empty gap list, never NaN and never an error.
func AnalyzeGaps(p engine.Profile, jobs []engine.JobPosting, opts GapOptions) GapAnalysis {
	m := opts.Matcher
	if m == nil {
		m = DefaultMatcher
	}

	corpus := FilterByTrack(jobs, opts.TrackFilter)

	acc := newGapAccum()
	if opts.Workers > 1 && len(corpus) > 1 {
		acc = parallelAccumulate(m, p, corpus, opts)
	} else {
		for i, job := range corpus {
			acc.addJob(m, p, job, i, opts.Weights)
		}
	}

	return finalize(p, acc, len(corpus), opts.cutoffs())
}

// parallelAccumulate splits the corpus into contiguous chunks, one worker
// per chunk, and reduces the partial accumulators. The reduce is a plain
// merge of per-worker maps; workers share nothing mutable.
func parallelAccumulate(m SkillMatcher, p engine.Profile, corpus []engine.JobPosting, opts GapOptions) *gapAccum {
	workers := opts.Workers
	if workers > len(corpus) {
		workers = len(corpus)
	}
	chunk := (len(corpus) + workers - 1) / workers

	parts := make([]*gapAccum, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(corpus) {
			end = len(corpus)
		}
		parts[w] = newGapAccum()
		wg.Add(1)
		go func(part *gapAccum, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				part.addJob(m, p, corpus[i], i, opts.Weights)
			}
		}(parts[w], start, end)
	}
	wg.Wait()

	acc := parts[0]
	for _, part := range parts[1:] {
		acc.merge(part)
	}
	return acc
}

// finalize converts the accumulator into the sorted, classified gap list and
// summary.
func finalize(p engine.Profile, acc *gapAccum, corpusSize int, cutoffs engine.PriorityCutoffs) GapAnalysis {
	gaps := make([]SkillGap, 0, len(acc.freq))
	for n, freq := range acc.freq {
		ratio := 0.0
		if corpusSize > 0 {
			ratio = float64(freq) / float64(corpusSize)
		}
		gaps = append(gaps, SkillGap{
			Skill:        acc.display[n],
			Frequency:    freq,
			RelatedJobs:  len(acc.jobIDs[n]),
			FrequencyPct: math.Round(ratio*1000) / 10,
			Priority:     classify(ratio, cutoffs),
		})
	}

	// Frequency descending; alphabetical tie-break for reproducible output.
	sort.Slice(gaps, func(i, j int) bool {
		if gaps[i].Frequency != gaps[j].Frequency {
			return gaps[i].Frequency > gaps[j].Frequency
		}
		return Normalize(gaps[i].Skill) < Normalize(gaps[j].Skill)
	})

	// Exact unweighted mean. Rounding for display is a presentation concern;
	// callers format with %.1f where they need it.
	avg := 0.0
	if corpusSize > 0 {
		avg = float64(acc.scoreSum) / float64(corpusSize)
	}

	return GapAnalysis{
		Gaps: gaps,
		Summary: GapSummary{
			TotalJobsAnalyzed:   corpusSize,
			TotalRequiredSkills: len(acc.required),
			ProfileSkillCount:   len(normalizeAll(p.Skills)),
			MissingSkillCount:   len(acc.freq),
			AverageMatchScore:   avg,
		},
	}
}

// classify maps a missing-frequency ratio to a priority tier. Priority is a
// pure function of the ratio, so it is stable across corpus resizes.
func classify(ratio float64, c engine.PriorityCutoffs) Priority {
	switch {
	case ratio >= c.High:
		return PriorityHigh
	case ratio >= c.Medium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
