package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine/match"
)

// briefingGapLimit caps how many gaps the briefing names; low-priority gaps
// never make it in.
const briefingGapLimit = 8

// sessions without a configured TTL persist for the life of the deployment.
const noExpiry = 10 * 365 * 24 * time.Hour

// ContextSource supplies the aggregated data a new session's briefing is
// built from: the profile's gap analysis and the count of catalog resources
// available for its missing skills.
type ContextSource interface {
	MentorContext(ctx context.Context, p engine.Profile) (match.GapAnalysis, int, error)
}

// Mentor drives multi-turn conversations with the completion service.
// Turns on the same session key are mutually exclusive; cross-session turns
// run fully in parallel.
type Mentor struct {
	completer  engine.Completer
	source     ContextSource
	sessionTTL time.Duration
	locks      sync.Map // session key → *sync.Mutex
}

// NewMentor wires a mentor over the given completer and context source.
// ttl <= 0 keeps sessions alive for the process lifetime.
func NewMentor(completer engine.Completer, source ContextSource, ttl time.Duration) *Mentor {
	if ttl <= 0 {
		ttl = noExpiry
	}
	return &Mentor{completer: completer, source: source, sessionTTL: ttl}
}

// SendTurn runs one conversation turn. On the first turn of a session key it
// builds the briefing and opens the session. A failed or timed-out
// completion leaves the transcript untouched, so the caller retries the
// whole turn. A concurrent turn on the same key returns ErrSessionBusy.
func (m *Mentor) SendTurn(ctx context.Context, sessionKey string, p engine.Profile, message string) (string, error) {
	if sessionKey == "" {
		return "", fmt.Errorf("%w: session key is required", engine.ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", engine.ErrInvalidInput)
	}

	v, _ := m.locks.LoadOrStore(sessionKey, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		engine.IncrChatBusy()
		return "", fmt.Errorf("%w: %s", engine.ErrSessionBusy, sessionKey)
	}
	defer mu.Unlock()

	session, ok := engine.CacheLoadJSON[Session](ctx, sessionCacheKey(sessionKey))
	if !ok {
		briefing, err := m.buildBriefing(ctx, p)
		if err != nil {
			return "", err
		}
		now := time.Now().UTC()
		session = Session{
			Key:       sessionKey,
			Briefing:  briefing,
			CreatedAt: now,
			UpdatedAt: now,
		}
		slog.Info("chat: session opened", slog.String("key", sessionKey))
	}

	reply, err := m.completer.Complete(ctx, session.Briefing, session.Turns, message)
	if err != nil {
		// Turn not applied; transcript stays consistent for the retry.
		return "", fmt.Errorf("chat turn: %w", err)
	}

	session.Turns = append(session.Turns,
		engine.Turn{Role: "user", Content: message},
		engine.Turn{Role: "assistant", Content: reply},
	)
	session.UpdatedAt = time.Now().UTC()
	engine.CacheStoreJSONTTL(ctx, sessionCacheKey(sessionKey), session, m.sessionTTL)

	engine.IncrChatTurns()
	return reply, nil
}

// buildBriefing formats the profile and its aggregated skill gaps into the
// system briefing that leads every conversation.
func (m *Mentor) buildBriefing(ctx context.Context, p engine.Profile) (string, error) {
	analysis, resourceCount, err := m.source.MentorContext(ctx, p)
	if err != nil {
		return "", fmt.Errorf("build briefing: %w", err)
	}
	return BuildBriefing(p, analysis, resourceCount), nil
}

// BuildBriefing renders the mentor system briefing. Deterministic for a
// given profile and analysis so the first turn of a session is reproducible.
func BuildBriefing(p engine.Profile, analysis match.GapAnalysis, resourceCount int) string {
	var sb strings.Builder

	sb.WriteString("You are a career mentor for a candidate on the NextGen Career platform. ")
	sb.WriteString("Ground every answer in the candidate context below. Be specific and practical.\n\n")

	sb.WriteString("CANDIDATE\n")
	if len(p.Skills) > 0 {
		fmt.Fprintf(&sb, "- Skills: %s\n", strings.Join(p.Skills, ", "))
	} else {
		sb.WriteString("- Skills: none listed yet\n")
	}
	if p.PreferredTrack != "" {
		fmt.Fprintf(&sb, "- Preferred track: %s\n", p.PreferredTrack)
	}
	if p.Experience != "" {
		fmt.Fprintf(&sb, "- Experience level: %s\n", p.Experience)
	}

	fmt.Fprintf(&sb, "\nMARKET ANALYSIS (%d jobs analyzed, average match %.1f/100)\n",
		analysis.Summary.TotalJobsAnalyzed, analysis.Summary.AverageMatchScore)

	listed := 0
	for _, gap := range analysis.Gaps {
		if gap.Priority == match.PriorityLow {
			continue
		}
		fmt.Fprintf(&sb, "- %s: missing in %d jobs (%s priority)\n", gap.Skill, gap.Frequency, gap.Priority)
		listed++
		if listed >= briefingGapLimit {
			break
		}
	}
	if listed == 0 {
		sb.WriteString("- No significant skill gaps against the current job corpus.\n")
	}

	fmt.Fprintf(&sb, "\nLEARNING CATALOG: %d resources available for the gaps above.\n", resourceCount)
	sb.WriteString("\nWhen asked for a learning plan, order recommendations by gap priority, high first.")

	return sb.String()
}
