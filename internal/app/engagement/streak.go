package engagement

import (
	"time"

	"github.com/sugarlog-app/sugarlog/internal/domain"
)

// StreakResult is the streak state transition for one logged event.
type StreakResult struct {
	Streak        int
	LongestStreak int
	LastLoggedAt  time.Time
	Milestone     bool
}

// UpdateStreak computes the new streak from the prior gamification state
// and the timestamp of the new log. Day boundaries are calendar days, not
// elapsed 24-hour windows: logging at 23:59 and again at 00:01 counts as
// consecutive days.
//
// Transitions: exactly 1 day later extends the streak, a gap of 2+ days
// resets it to 1, and a same-day (or clock-skewed) log leaves it unchanged.
// Milestone fires only on the event that crosses into a multiple of 3,
// never while merely sitting at one.
func UpdateStreak(prior domain.GamificationState, logDate time.Time) StreakResult {
	res := StreakResult{LastLoggedAt: logDate}

	if prior.LastLoggedAt.IsZero() {
		res.Streak = 1
	} else {
		switch diff := daysBetween(prior.LastLoggedAt, logDate); {
		case diff == 1:
			res.Streak = prior.Streak + 1
		case diff > 1:
			res.Streak = 1 // Streak broken — silently
		default:
			res.Streak = prior.Streak
		}
	}

	res.LongestStreak = prior.LongestStreak
	if res.Streak > res.LongestStreak {
		res.LongestStreak = res.Streak
	}

	res.Milestone = res.Streak > prior.Streak && res.Streak%3 == 0
	return res
}

// daysBetween returns whole calendar days from a to b (negative if b
// precedes a). Both timestamps are truncated to UTC midnight first.
func daysBetween(a, b time.Time) int {
	return int(midnight(b).Sub(midnight(a)).Hours() / 24)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
