// Package mentorserver exposes the career engine's computation API as MCP
// tools: job scoring, corpus ranking, skill-gap analysis, resource
// recommendation, and the mentor chat.
package mentorserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine/chat"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine/match"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/store"
)

// Package-level collaborators, set from main.go.
var (
	st     store.Store
	mentor *chat.Mentor
)

// Init sets the store and mentor used by all tools.
func Init(s store.Store, m *chat.Mentor) {
	st = s
	mentor = m
}

// RegisterTools registers all career engine tools on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerScoreJob(server)
	registerRankJobs(server)
	registerSkillGapAnalysis(server)
	registerRecommendResources(server)
	registerMentorChat(server)
}

// gapOptions builds aggregation options from the engine configuration.
func gapOptions(trackFilter string) match.GapOptions {
	return match.GapOptions{
		TrackFilter: trackFilter,
		Weights:     engine.Cfg.Scoring,
		Cutoffs:     engine.Cfg.Priority,
		Workers:     engine.Cfg.GapWorkers,
	}
}

// gapSkills flattens a gap list into its skill names, keeping the gap order
// (frequency descending).
func gapSkills(gaps []match.SkillGap) []string {
	skills := make([]string, 0, len(gaps))
	for _, g := range gaps {
		skills = append(skills, g.Skill)
	}
	return skills
}
