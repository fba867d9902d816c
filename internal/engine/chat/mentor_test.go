package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine"
	"github.com/M-U-Rony/nextgen-carrer-sub000/internal/engine/match"
)

// fakeCompleter scripts completion replies and records what it was called
// with. When block is set it holds the turn open until released.
type fakeCompleter struct {
	mu          sync.Mutex
	calls       int
	lastSystem  string
	lastHistory []engine.Turn
	failOnCall  int // 1-based; 0 never fails
	block       chan struct{}
}

func (f *fakeCompleter) Complete(ctx context.Context, system string, transcript []engine.Turn, message string) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.lastSystem = system
	f.lastHistory = append([]engine.Turn(nil), transcript...)
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	if f.failOnCall == call {
		return "", fmt.Errorf("completion: %w", engine.ErrUpstream)
	}
	return fmt.Sprintf("reply %d", call), nil
}

// fakeSource returns a canned gap analysis.
type fakeSource struct {
	analysis  match.GapAnalysis
	resources int
	err       error
}

func (f *fakeSource) MentorContext(ctx context.Context, p engine.Profile) (match.GapAnalysis, int, error) {
	return f.analysis, f.resources, f.err
}

func testAnalysis() match.GapAnalysis {
	return match.GapAnalysis{
		Gaps: []match.SkillGap{
			{Skill: "Docker", Frequency: 8, RelatedJobs: 8, FrequencyPct: 80, Priority: match.PriorityHigh},
			{Skill: "Kubernetes", Frequency: 3, RelatedJobs: 3, FrequencyPct: 30, Priority: match.PriorityMedium},
			{Skill: "Terraform", Frequency: 1, RelatedJobs: 1, FrequencyPct: 10, Priority: match.PriorityLow},
		},
		Summary: match.GapSummary{TotalJobsAnalyzed: 10, AverageMatchScore: 62.5},
	}
}

func newTestMentor(c engine.Completer) *Mentor {
	engine.InitCache("", time.Minute, 1000, time.Hour)
	return NewMentor(c, &fakeSource{analysis: testAnalysis(), resources: 5}, time.Minute)
}

func testProfile() engine.Profile {
	return engine.Profile{
		ID:             "u1",
		Skills:         []string{"Go", "SQL"},
		PreferredTrack: "Backend",
		Experience:     engine.LevelJunior,
	}
}

func TestSendTurn_FirstTurnOpensSession(t *testing.T) {
	fc := &fakeCompleter{}
	m := newTestMentor(fc)
	ctx := context.Background()

	reply, err := m.SendTurn(ctx, SessionKey("u1", "c1"), testProfile(), "What should I learn first?")
	if err != nil {
		t.Fatalf("SendTurn error: %v", err)
	}
	if reply != "reply 1" {
		t.Errorf("reply = %q, want %q", reply, "reply 1")
	}
	if len(fc.lastHistory) != 0 {
		t.Errorf("first turn should see empty transcript, got %d entries", len(fc.lastHistory))
	}
	if !strings.Contains(fc.lastSystem, "Docker") {
		t.Errorf("briefing missing gap context:\n%s", fc.lastSystem)
	}
}

func TestSendTurn_TranscriptAccumulates(t *testing.T) {
	fc := &fakeCompleter{}
	m := newTestMentor(fc)
	ctx := context.Background()
	key := SessionKey("u1", "c2")

	if _, err := m.SendTurn(ctx, key, testProfile(), "first"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	if _, err := m.SendTurn(ctx, key, testProfile(), "second"); err != nil {
		t.Fatalf("turn 2: %v", err)
	}

	if len(fc.lastHistory) != 2 {
		t.Fatalf("turn 2 saw %d transcript entries, want 2", len(fc.lastHistory))
	}
	if fc.lastHistory[0].Role != "user" || fc.lastHistory[0].Content != "first" {
		t.Errorf("transcript[0] = %+v, want user/first", fc.lastHistory[0])
	}
	if fc.lastHistory[1].Role != "assistant" || fc.lastHistory[1].Content != "reply 1" {
		t.Errorf("transcript[1] = %+v, want assistant/reply 1", fc.lastHistory[1])
	}
}

func TestSendTurn_FailedTurnLeavesTranscriptUntouched(t *testing.T) {
	fc := &fakeCompleter{failOnCall: 2}
	m := newTestMentor(fc)
	ctx := context.Background()
	key := SessionKey("u1", "c3")

	if _, err := m.SendTurn(ctx, key, testProfile(), "ok turn"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	if _, err := m.SendTurn(ctx, key, testProfile(), "failing turn"); !errors.Is(err, engine.ErrUpstream) {
		t.Fatalf("turn 2: err = %v, want ErrUpstream", err)
	}
	if _, err := m.SendTurn(ctx, key, testProfile(), "retry"); err != nil {
		t.Fatalf("turn 3: %v", err)
	}

	// The failed turn must not appear in the transcript the retry sees.
	if len(fc.lastHistory) != 2 {
		t.Fatalf("retry saw %d transcript entries, want 2", len(fc.lastHistory))
	}
	for _, turn := range fc.lastHistory {
		if turn.Content == "failing turn" {
			t.Errorf("failed turn leaked into the transcript: %+v", fc.lastHistory)
		}
	}
}

func TestSendTurn_ConcurrentSameKeyIsBusy(t *testing.T) {
	fc := &fakeCompleter{block: make(chan struct{})}
	m := newTestMentor(fc)
	ctx := context.Background()
	key := SessionKey("u1", "c4")

	done := make(chan error, 1)
	go func() {
		_, err := m.SendTurn(ctx, key, testProfile(), "slow turn")
		done <- err
	}()

	// Wait for the first turn to take the lock.
	deadline := time.After(2 * time.Second)
	for {
		fc.mu.Lock()
		started := fc.calls > 0
		fc.mu.Unlock()
		if started {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first turn never reached the completer")
		case <-time.After(time.Millisecond):
		}
	}

	_, err := m.SendTurn(ctx, key, testProfile(), "overlapping turn")
	if !errors.Is(err, engine.ErrSessionBusy) {
		t.Errorf("overlapping turn: err = %v, want ErrSessionBusy", err)
	}

	close(fc.block)
	if err := <-done; err != nil {
		t.Errorf("blocked turn failed after release: %v", err)
	}
}

func TestSendTurn_DifferentKeysRunIndependently(t *testing.T) {
	fc := &fakeCompleter{block: make(chan struct{})}
	m := newTestMentor(fc)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := m.SendTurn(ctx, SessionKey("u1", "slow"), testProfile(), "slow turn")
		done <- err
	}()

	deadline := time.After(2 * time.Second)
	for {
		fc.mu.Lock()
		started := fc.calls > 0
		fc.mu.Unlock()
		if started {
			break
		}
		select {
		case <-deadline:
			t.Fatal("first turn never reached the completer")
		case <-time.After(time.Millisecond):
		}
	}

	// A different session key must not be blocked by the in-flight turn.
	other := &fakeCompleter{}
	m2 := NewMentor(other, &fakeSource{analysis: testAnalysis()}, time.Minute)
	if _, err := m2.SendTurn(ctx, SessionKey("u2", "fast"), testProfile(), "hello"); err != nil {
		t.Errorf("independent session errored: %v", err)
	}

	close(fc.block)
	<-done
}

func TestSendTurn_Validation(t *testing.T) {
	m := newTestMentor(&fakeCompleter{})
	ctx := context.Background()

	if _, err := m.SendTurn(ctx, "", testProfile(), "hi"); !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("empty key: err = %v, want ErrInvalidInput", err)
	}
	if _, err := m.SendTurn(ctx, "k", testProfile(), "   "); !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("blank message: err = %v, want ErrInvalidInput", err)
	}
}

func TestSendTurn_BriefingSourceFailure(t *testing.T) {
	engine.InitCache("", time.Minute, 1000, time.Hour)
	src := &fakeSource{err: fmt.Errorf("corpus: %w", engine.ErrUpstream)}
	m := NewMentor(&fakeCompleter{}, src, time.Minute)

	_, err := m.SendTurn(context.Background(), SessionKey("u1", "c5"), testProfile(), "hi")
	if !errors.Is(err, engine.ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream from context source", err)
	}
}

func TestBuildBriefing(t *testing.T) {
	b := BuildBriefing(testProfile(), testAnalysis(), 5)

	for _, want := range []string{
		"Go, SQL",
		"Backend",
		"junior",
		"10 jobs analyzed",
		"62.5",
		"Docker: missing in 8 jobs (high priority)",
		"Kubernetes: missing in 3 jobs (medium priority)",
		"5 resources available",
	} {
		if !strings.Contains(b, want) {
			t.Errorf("briefing missing %q:\n%s", want, b)
		}
	}
	// Low-priority gaps stay out of the briefing.
	if strings.Contains(b, "Terraform") {
		t.Errorf("briefing should omit low-priority gaps:\n%s", b)
	}

	if b != BuildBriefing(testProfile(), testAnalysis(), 5) {
		t.Error("briefing is not deterministic")
	}
}

func TestBuildBriefing_NoGaps(t *testing.T) {
	b := BuildBriefing(engine.Profile{ID: "u1"}, match.GapAnalysis{}, 0)
	if !strings.Contains(b, "none listed yet") {
		t.Errorf("briefing should note missing skills:\n%s", b)
	}
	if !strings.Contains(b, "No significant skill gaps") {
		t.Errorf("briefing should note the empty gap list:\n%s", b)
	}
}

func TestSessionKey(t *testing.T) {
	if got := SessionKey("u1", "c1"); got != "u1:c1" {
		t.Errorf("SessionKey = %q, want %q", got, "u1:c1")
	}
	if SessionKey("u1", "c1") == SessionKey("u1", "c2") {
		t.Error("distinct conversations must map to distinct keys")
	}
}
