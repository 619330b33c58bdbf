package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/sugarlog-app/sugarlog/internal/app/engagement"
	"github.com/sugarlog-app/sugarlog/internal/domain"
	"github.com/sugarlog-app/sugarlog/internal/infra/sqlite"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// stubRand returns a fixed draw for Intn and Float64.
type stubRand struct {
	n int
	f float64
}

func (r stubRand) Intn(int) int     { return r.n }
func (r stubRand) Float64() float64 { return r.f }

func iptr(v int) *int         { return &v }
func fptr(v float64) *float64 { return &v }

func newTestService(t *testing.T, at time.Time) *Service {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Intn draw 0 keeps the surprise bonus at its floor of 2; Float64
	// 0.1 lands the reward draw on the 1-coin tier.
	engine := engagement.NewEngine(fixedClock{t: at}, stubRand{n: 0, f: 0.1})
	return NewServiceWithEngine(db, engine)
}

// ─── Log Flow ───────────────────────────────────────────────────────────────

func TestLogEvent_FirstLog(t *testing.T) {
	at := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, at)

	out, err := svc.LogEvent("alice", engagement.LogInput{Type: "chai"})
	if err != nil {
		t.Fatalf("LogEvent() error: %v", err)
	}

	// base 2 + early-day 3 + bonus 2
	if out.XPEarned != 7 {
		t.Errorf("xpEarned = %d, want 7", out.XPEarned)
	}
	if out.State.Streak != 1 || out.State.XP != 7 || out.State.Level != 1 {
		t.Errorf("state = %+v", out.State)
	}
	if out.Log.ID == "" || out.Reward.ID == "" {
		t.Error("persisted log and reward should have IDs")
	}
	if out.Reward.LogID != out.Log.ID {
		t.Errorf("reward logID = %q, want %q", out.Reward.LogID, out.Log.ID)
	}
	if out.Log.SugarGrams != 8 {
		t.Errorf("chai estimate = %v, want 8", out.Log.SugarGrams)
	}
	if out.Insight == "" || out.Action == "" {
		t.Error("feedback text should be populated")
	}
}

func TestLogEvent_TypeRequired(t *testing.T) {
	svc := newTestService(t, time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC))

	_, err := svc.LogEvent("alice", engagement.LogInput{Type: "  "})
	if !errors.Is(err, domain.ErrTypeRequired) {
		t.Fatalf("expected ErrTypeRequired, got %v", err)
	}
}

func TestLogEvent_PersistsAcrossCalls(t *testing.T) {
	at := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, at)

	first, _ := svc.LogEvent("alice", engagement.LogInput{Type: "chai"})
	second, err := svc.LogEvent("alice", engagement.LogInput{Type: "sweets"})
	if err != nil {
		t.Fatalf("second LogEvent() error: %v", err)
	}

	// Same calendar day: streak unchanged, XP accumulates.
	if second.State.Streak != 1 {
		t.Errorf("streak = %d, want 1", second.State.Streak)
	}
	if second.State.XP != first.State.XP+int64(second.XPEarned) {
		t.Errorf("xp = %d, want %d", second.State.XP, first.State.XP+int64(second.XPEarned))
	}

	logs, err := svc.Logs("alice", 10)
	if err != nil {
		t.Fatalf("Logs() error: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("expected 2 logs, got %d", len(logs))
	}

	rewards, err := svc.Rewards("alice", 10)
	if err != nil {
		t.Fatalf("Rewards() error: %v", err)
	}
	if len(rewards) != 2 {
		t.Errorf("expected 2 rewards, got %d", len(rewards))
	}
}

func TestLogEvent_MergesDailyHealth(t *testing.T) {
	at := time.Date(2025, 7, 2, 23, 0, 0, 0, time.UTC) // night
	svc := newTestService(t, at)

	err := svc.RecordHealth(domain.DailyHealth{
		UserID: "alice", Date: "2025-07-02",
		Steps: iptr(3000), SleepHours: fptr(5.0),
	})
	if err != nil {
		t.Fatalf("RecordHealth() error: %v", err)
	}

	out, err := svc.LogEvent("alice", engagement.LogInput{
		Type:    "sweets",
		Context: domain.ContextSnapshot{Steps: iptr(9000)},
	})
	if err != nil {
		t.Fatalf("LogEvent() error: %v", err)
	}

	// Stored health wins over the caller's steps.
	if out.Log.Context.Steps == nil || *out.Log.Context.Steps != 3000 {
		t.Errorf("steps = %v, want health record's 3000", out.Log.Context.Steps)
	}
	if out.Log.Context.SleepHours == nil || *out.Log.Context.SleepHours != 5.0 {
		t.Errorf("sleepHours = %v, want 5.0", out.Log.Context.SleepHours)
	}
}

// ─── Complete Action Flow ───────────────────────────────────────────────────

func TestCompleteAction_AppliesAward(t *testing.T) {
	at := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, at)

	logged, _ := svc.LogEvent("alice", engagement.LogInput{Type: "chai"})

	out, err := svc.CompleteAction("alice", logged.Log.ID)
	if err != nil {
		t.Fatalf("CompleteAction() error: %v", err)
	}

	if !out.Log.ActionCompleted {
		t.Error("log should be marked completed")
	}
	// Completion re-runs the formula: base 2 + early-day 3 + completion 7
	// + bonus 2 = 14 on top of the original 7.
	if out.Log.XPEarned != logged.XPEarned+14 {
		t.Errorf("log xpEarned = %d, want %d", out.Log.XPEarned, logged.XPEarned+14)
	}
	if out.State.XP != logged.State.XP+14 {
		t.Errorf("state xp = %d, want %d", out.State.XP, logged.State.XP+14)
	}
}

func TestCompleteAction_Idempotent(t *testing.T) {
	at := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, at)

	logged, _ := svc.LogEvent("alice", engagement.LogInput{Type: "chai"})

	first, err := svc.CompleteAction("alice", logged.Log.ID)
	if err != nil {
		t.Fatalf("first CompleteAction() error: %v", err)
	}
	second, err := svc.CompleteAction("alice", logged.Log.ID)
	if err != nil {
		t.Fatalf("second CompleteAction() error: %v", err)
	}

	if second.Log.XPEarned != first.Log.XPEarned {
		t.Errorf("retry changed log xp: %d vs %d", second.Log.XPEarned, first.Log.XPEarned)
	}
	if second.State.XP != first.State.XP {
		t.Errorf("retry changed state xp: %d vs %d", second.State.XP, first.State.XP)
	}
}

func TestCompleteAction_UnknownLog(t *testing.T) {
	svc := newTestService(t, time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC))
	_, _ = svc.LogEvent("alice", engagement.LogInput{Type: "chai"})

	_, err := svc.CompleteAction("alice", "no-such-log")
	if !errors.Is(err, domain.ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}

func TestCompleteAction_OtherUsersLog(t *testing.T) {
	svc := newTestService(t, time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC))
	logged, _ := svc.LogEvent("alice", engagement.LogInput{Type: "chai"})
	_, _ = svc.LogEvent("bob", engagement.LogInput{Type: "chai"})

	_, err := svc.CompleteAction("bob", logged.Log.ID)
	if !errors.Is(err, domain.ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}

// ─── Queries ────────────────────────────────────────────────────────────────

func TestProfile_UnknownUser(t *testing.T) {
	svc := newTestService(t, time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC))

	_, err := svc.Profile("nobody")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestProfile_AfterLogging(t *testing.T) {
	at := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, at)

	out, _ := svc.LogEvent("alice", engagement.LogInput{Type: "chai"})

	state, err := svc.Profile("alice")
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}
	if state.XP != out.State.XP || state.Streak != out.State.Streak {
		t.Errorf("profile = %+v, want %+v", state, out.State)
	}
}
