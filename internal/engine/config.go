package engine

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ScoringWeights controls how the three sub-scores blend into the overall
// match score. Weights are fractions and should sum to 1.0.
type ScoringWeights struct {
	Skill      float64 `koanf:"skill"`
	Experience float64 `koanf:"experience"`
	Track      float64 `koanf:"track"`
}

// PriorityCutoffs are the missing-frequency ratios that classify a skill gap.
// A gap missing from >= High of the corpus is "high", >= Medium is "medium",
// anything below is "low".
type PriorityCutoffs struct {
	High   float64 `koanf:"high"`
	Medium float64 `koanf:"medium"`
}

// Config holds all engine configuration, injected from main.
type Config struct {
	DatabaseURL string `koanf:"database_url"` // Postgres; empty = SQLite
	SQLitePath  string `koanf:"sqlite_path"`

	RedisURL   string        `koanf:"redis_url"` // empty = in-memory sessions only
	SessionTTL time.Duration `koanf:"session_ttl"`

	GeminiAPIKey      string        `koanf:"gemini_api_key"`
	GeminiModel       string        `koanf:"gemini_model"`
	CompletionTimeout time.Duration `koanf:"completion_timeout"`
	CompletionRPS     float64       `koanf:"completion_rps"`

	Scoring  ScoringWeights  `koanf:"scoring"`
	Priority PriorityCutoffs `koanf:"priority"`

	RecommendLimit       int `koanf:"recommend_limit"`        // full-catalog analysis
	InlineRecommendLimit int `koanf:"inline_recommend_limit"` // per-job display
	GapWorkers           int `koanf:"gap_workers"`            // 0 = serial aggregation

	CacheTTL             time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries      int           `koanf:"cache_max_entries"`
	CacheCleanupInterval time.Duration `koanf:"cache_cleanup_interval"`

	LogLevel string `koanf:"log_level"`

	Completer Completer `koanf:"-"` // injected, not loaded
}

// DefaultConfig returns the documented defaults: 60/25/15 scoring weights and
// 50%/25% priority cutoffs. These are product-tunable constants, not
// algorithmic truths.
func DefaultConfig() Config {
	return Config{
		SQLitePath:           defaultSQLitePath(),
		SessionTTL:           24 * time.Hour,
		GeminiModel:          "gemini-2.5-flash",
		CompletionTimeout:    60 * time.Second,
		CompletionRPS:        1,
		Scoring:              ScoringWeights{Skill: 0.60, Experience: 0.25, Track: 0.15},
		Priority:             PriorityCutoffs{High: 0.50, Medium: 0.25},
		RecommendLimit:       15,
		InlineRecommendLimit: 4,
		CacheTTL:             15 * time.Minute,
		CacheMaxEntries:      1000,
		CacheCleanupInterval: 5 * time.Minute,
		LogLevel:             "info",
	}
}

// LoadConfig layers defaults, an optional YAML file (CAREER_CONFIG), and
// CAREER_-prefixed environment variables, low to high precedence.
func LoadConfig() (Config, error) {
	c := DefaultConfig()

	k := koanf.New(".")

	if path := os.Getenv("CAREER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	// CAREER_GEMINI_API_KEY -> gemini_api_key, CAREER_SCORING_SKILL stays flat
	// only for top-level keys; nested keys use double underscore.
	envProvider := env.Provider("CAREER_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "CAREER_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}

	if err := k.UnmarshalWithConf("", &c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("config unmarshal: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects configurations the scorer and aggregator cannot honor.
func (c Config) Validate() error {
	if c.Scoring.Skill < 0 || c.Scoring.Experience < 0 || c.Scoring.Track < 0 {
		return fmt.Errorf("%w: scoring weights must be non-negative", ErrInvalidInput)
	}
	if c.Scoring.Skill+c.Scoring.Experience+c.Scoring.Track <= 0 {
		return fmt.Errorf("%w: scoring weights must not all be zero", ErrInvalidInput)
	}
	if c.Priority.High < c.Priority.Medium {
		return fmt.Errorf("%w: priority high cutoff below medium cutoff", ErrInvalidInput)
	}
	if c.RecommendLimit <= 0 || c.InlineRecommendLimit <= 0 {
		return fmt.Errorf("%w: recommend limits must be positive", ErrInvalidInput)
	}
	return nil
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "career.db"
	}
	return home + "/.career-engine/career.db"
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (match, chat).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}
