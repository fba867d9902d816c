package engine

// ExperienceLevel is the fixed seniority ladder used for matching.
type ExperienceLevel string

const (
	LevelFresher ExperienceLevel = "fresher"
	LevelJunior  ExperienceLevel = "junior"
	LevelMid     ExperienceLevel = "mid"
	LevelSenior  ExperienceLevel = "senior"
)

// levelRank maps each level to its ordinal position on the ladder.
var levelRank = map[ExperienceLevel]int{
	LevelFresher: 0,
	LevelJunior:  1,
	LevelMid:     2,
	LevelSenior:  3,
}

// Rank returns the ordinal position of the level (Fresher < Junior < Mid < Senior).
// ok is false for an empty or unknown level.
func (l ExperienceLevel) Rank() (rank int, ok bool) {
	rank, ok = levelRank[l]
	return rank, ok
}

// Profile holds the candidate attributes the engine matches on.
// Profiles are owned by the user-settings workflow; the engine reads them only.
type Profile struct {
	ID             string          `json:"id"`
	Skills         []string        `json:"skills"`
	PreferredTrack string          `json:"preferred_track,omitempty"`
	Experience     ExperienceLevel `json:"experience,omitempty"`
}

// JobPosting is an employer job listing. Immutable during matching.
type JobPosting struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Company    string          `json:"company,omitempty"`
	Location   string          `json:"location,omitempty"`
	Track      string          `json:"track,omitempty"`
	Experience ExperienceLevel `json:"experience,omitempty"`
	Skills     []string        `json:"skills"`
}

// ResourceCost tags a learning resource as free or paid.
type ResourceCost string

const (
	CostFree ResourceCost = "free"
	CostPaid ResourceCost = "paid"
)

// LearningResource is a catalog entry owned by the content workflow.
type LearningResource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Provider    string       `json:"provider,omitempty"`
	URL         string       `json:"url,omitempty"`
	Skills      []string     `json:"skills"`
	Cost        ResourceCost `json:"cost,omitempty"`
	Level       string       `json:"level,omitempty"`
	Rating      float64      `json:"rating,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Turn is a single message in a mentor conversation transcript.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
