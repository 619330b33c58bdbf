// Package domain holds the core SugarLog types.
// The feedback engine drives behavior change through streaks, XP,
// randomized rewards, and rule-based insight text.
package domain

import "time"

// ─── Log Types ──────────────────────────────────────────────────────────────

// LogMethod is how the intake was captured.
type LogMethod string

const (
	MethodPreset LogMethod = "preset"
	MethodPhoto  LogMethod = "photo"
	MethodVoice  LogMethod = "voice"
)

// TimeOfDay buckets the local hour of a log.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// TimeOfDayForHour maps an hour (0-23) to its band.
// Bands: <12 morning, <17 afternoon, <21 evening, else night.
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour < 12:
		return Morning
	case hour < 17:
		return Afternoon
	case hour < 21:
		return Evening
	default:
		return Night
	}
}

// ContextSnapshot is the health context attributed to a single log.
// All fields are optional — a missing value suppresses any rule that
// depends on it, it is never an error.
type ContextSnapshot struct {
	Steps      *int     `json:"steps,omitempty"`
	SleepHours *float64 `json:"sleep_hours,omitempty"`
	HeartRate  *int     `json:"heart_rate,omitempty"`
}

// SugarLog is one logged intake event plus the feedback generated for it.
// Immutable after creation except ActionCompleted and XPEarned, which the
// complete-action flow bumps exactly once.
type SugarLog struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Type            string          `json:"type"`
	Method          LogMethod       `json:"method"`
	SugarGrams      float64         `json:"sugar_grams"`
	TimeOfDay       TimeOfDay       `json:"time_of_day"`
	Context         ContextSnapshot `json:"context"`
	Insight         string          `json:"insight"`
	SuggestedAction string          `json:"suggested_action"`
	ActionCompleted bool            `json:"action_completed"`
	XPEarned        int             `json:"xp_earned"`
	LoggedAt        time.Time       `json:"logged_at"`
}

// ─── Gamification Types ─────────────────────────────────────────────────────

// GamificationState is a user's engagement counters. Level is always
// recomputable from XP and never independently trusted.
type GamificationState struct {
	XP            int64     `json:"xp"`
	Level         int       `json:"level"`
	Streak        int       `json:"streak"`
	LongestStreak int       `json:"longest_streak"`
	LastLoggedAt  time.Time `json:"last_logged_at"` // zero = never logged
}

// ─── Reward Types ───────────────────────────────────────────────────────────

// RewardType categorizes a granted reward.
type RewardType string

const (
	RewardCoin  RewardType = "coin"
	RewardBadge RewardType = "badge"
)

// RewardRecord is one granted reward, created once per logged event.
type RewardRecord struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	LogID       string     `json:"log_id"`
	Type        RewardType `json:"type"`
	Value       int        `json:"value"`
	Description string     `json:"description"`
	GrantedAt   time.Time  `json:"granted_at"`
}

// ─── Health Metrics ─────────────────────────────────────────────────────────

// DailyHealth is the health-metrics record for one (user, calendar day).
// It is authoritative over caller-supplied context when both are present.
type DailyHealth struct {
	UserID       string   `json:"user_id"`
	Date         string   `json:"date"` // yyyy-mm-dd
	Steps        *int     `json:"steps,omitempty"`
	SleepHours   *float64 `json:"sleep_hours,omitempty"`
	AvgHeartRate *int     `json:"avg_heart_rate,omitempty"`
}

// DateKey formats a timestamp as the yyyy-mm-dd key used by the
// health-metrics store.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
