package engagement

import (
	"strings"
	"time"

	"github.com/sugarlog-app/sugarlog/internal/domain"
)

// Engine is the feedback composition root. It merges context, runs the
// generators, streak tracker, XP formula, and reward selector, and shapes
// the bundle returned to the caller. It never persists anything — storage
// is the caller's concern.
type Engine struct {
	clock Clock
	rng   RandomSource
}

// NewEngine creates an Engine with the given time and randomness sources.
func NewEngine(clock Clock, rng RandomSource) *Engine {
	return &Engine{clock: clock, rng: rng}
}

// DefaultEngine creates an Engine on the wall clock and a time-seeded RNG.
func DefaultEngine() *Engine {
	return NewEngine(SystemClock(), SystemRand())
}

// Now reports the engine's current time, so callers that need same-day
// lookups stay on the same clock the engine stamps logs with.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// LogInput is one user-reported intake event.
type LogInput struct {
	Type       string                 `json:"type"`
	Method     domain.LogMethod       `json:"method,omitempty"`
	SugarGrams *float64               `json:"sugar_grams,omitempty"`
	TimeOfDay  domain.TimeOfDay       `json:"time_of_day,omitempty"`
	Context    domain.ContextSnapshot `json:"context,omitempty"`
}

// LogResult is the full feedback bundle for one logged event. Log and
// Reward carry no IDs yet; the persistence layer assigns those.
type LogResult struct {
	Log      domain.SugarLog
	Reward   domain.RewardRecord
	State    domain.GamificationState
	XPEarned int
}

// presetEstimates maps intake types to default gram estimates when the
// caller supplies none.
var presetEstimates = map[string]float64{
	"chai":       8,
	"sweets":     20,
	"cold drink": 25,
}

const defaultEstimate = 15

// LogEvent computes the feedback bundle for one intake. prior is the
// user's current gamification state; health is today's metrics record
// (nil when none exists). Fails only on a missing type.
func (e *Engine) LogEvent(prior domain.GamificationState, health *domain.DailyHealth, in LogInput) (LogResult, error) {
	logType := strings.TrimSpace(in.Type)
	if logType == "" {
		return LogResult{}, domain.ErrTypeRequired
	}

	now := e.clock.Now()

	grams := resolveEstimate(logType, in.SugarGrams)

	tod := in.TimeOfDay
	if tod == "" {
		tod = domain.TimeOfDayForHour(now.Hour())
	}

	method := in.Method
	if method == "" {
		method = domain.MethodPreset
	}

	ctx := mergeContext(health, in.Context)

	insight := GenerateInsight(grams, tod, ctx)
	action := SuggestAction(tod, ctx)

	streak := UpdateStreak(prior, now)
	award := CalculateXP(XPInput{TimeOfDay: tod, StreakMilestone: streak.Milestone}, e.rng)

	state := domain.GamificationState{
		XP:            prior.XP + int64(award.XP),
		Streak:        streak.Streak,
		LongestStreak: streak.LongestStreak,
		LastLoggedAt:  streak.LastLoggedAt,
	}
	state.Level = LevelForXP(state.XP)

	reward := SelectReward(award.XP+award.Bonus, e.rng)
	reward.GrantedAt = now

	return LogResult{
		Log: domain.SugarLog{
			Type:            logType,
			Method:          method,
			SugarGrams:      grams,
			TimeOfDay:       tod,
			Context:         ctx,
			Insight:         insight,
			SuggestedAction: action,
			XPEarned:        award.XP,
			LoggedAt:        now,
		},
		Reward:   reward,
		State:    state,
		XPEarned: award.XP,
	}, nil
}

// CompleteAction applies the action-completion flow to a log. Returns the
// updated log and state, and whether anything was applied: an
// already-completed log is a no-op (the flag never flips back).
//
// The completion award runs the full XP formula again — base credit and a
// fresh surprise bonus included — rather than an isolated completion
// delta. Changing that would silently change the reward economics.
func (e *Engine) CompleteAction(prior domain.GamificationState, log domain.SugarLog) (domain.SugarLog, domain.GamificationState, bool) {
	if log.ActionCompleted {
		return log, prior, false
	}

	award := CalculateXP(XPInput{TimeOfDay: log.TimeOfDay, ActionCompleted: true}, e.rng)

	log.ActionCompleted = true
	log.XPEarned += award.XP

	state := prior
	state.XP += int64(award.XP)
	state.Level = LevelForXP(state.XP)

	return log, state, true
}

// resolveEstimate prefers the caller's explicit grams, falling back to the
// per-type preset table.
func resolveEstimate(logType string, explicit *float64) float64 {
	if explicit != nil {
		return *explicit
	}
	if grams, ok := presetEstimates[strings.ToLower(logType)]; ok {
		return grams
	}
	return defaultEstimate
}

// mergeContext builds the context snapshot for a log: the same-day health
// record is authoritative, caller-supplied values fill only the fields the
// record lacks.
func mergeContext(health *domain.DailyHealth, caller domain.ContextSnapshot) domain.ContextSnapshot {
	merged := caller
	if health == nil {
		return merged
	}
	if health.Steps != nil {
		merged.Steps = health.Steps
	}
	if health.SleepHours != nil {
		merged.SleepHours = health.SleepHours
	}
	if health.AvgHeartRate != nil {
		merged.HeartRate = health.AvgHeartRate
	}
	return merged
}
