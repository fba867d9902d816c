package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	if c.Scoring.Skill != 0.60 || c.Scoring.Experience != 0.25 || c.Scoring.Track != 0.15 {
		t.Errorf("scoring = %+v, want 0.60/0.25/0.15", c.Scoring)
	}
	if c.Priority.High != 0.50 || c.Priority.Medium != 0.25 {
		t.Errorf("priority = %+v, want 0.50/0.25", c.Priority)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CAREER_CONFIG", "")
	t.Setenv("CAREER_GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("CAREER_RECOMMEND_LIMIT", "7")
	t.Setenv("CAREER_SCORING__SKILL", "0.5")
	t.Setenv("CAREER_SCORING__EXPERIENCE", "0.3")
	t.Setenv("CAREER_SCORING__TRACK", "0.2")
	t.Setenv("CAREER_SESSION_TTL", "1h")

	c, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("GeminiModel = %q", c.GeminiModel)
	}
	if c.RecommendLimit != 7 {
		t.Errorf("RecommendLimit = %d, want 7", c.RecommendLimit)
	}
	if c.Scoring.Skill != 0.5 || c.Scoring.Experience != 0.3 || c.Scoring.Track != 0.2 {
		t.Errorf("scoring = %+v, want 0.5/0.3/0.2", c.Scoring)
	}
	if c.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", c.SessionTTL)
	}
	// Untouched keys keep their defaults.
	if c.Priority.High != 0.50 {
		t.Errorf("Priority.High = %v, want default 0.50", c.Priority.High)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte("log_level: debug\npriority:\n  high: 0.6\n  medium: 0.3\n")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAREER_CONFIG", path)

	c, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", c.LogLevel)
	}
	if c.Priority.High != 0.6 || c.Priority.Medium != 0.3 {
		t.Errorf("priority = %+v, want 0.6/0.3", c.Priority)
	}
}

func TestLoadConfig_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CAREER_CONFIG", path)
	t.Setenv("CAREER_LOG_LEVEL", "error")

	c, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want env to win", c.LogLevel)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative weight", func(c *Config) { c.Scoring.Skill = -0.1 }},
		{"all-zero weights", func(c *Config) { c.Scoring = ScoringWeights{} }},
		{"inverted cutoffs", func(c *Config) { c.Priority = PriorityCutoffs{High: 0.2, Medium: 0.5} }},
		{"zero recommend limit", func(c *Config) { c.RecommendLimit = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := DefaultConfig()
			tc.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestInit(t *testing.T) {
	c := DefaultConfig()
	c.RecommendLimit = 42
	Init(c)
	if Cfg.RecommendLimit != 42 {
		t.Errorf("Cfg.RecommendLimit = %d, want 42", Cfg.RecommendLimit)
	}
}
