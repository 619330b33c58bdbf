package engagement

import "github.com/sugarlog-app/sugarlog/internal/domain"

// XP formula terms. Each term is independent and additive.
const (
	xpBase       = 2 // every log earns this
	xpEarlyDay   = 3 // morning or afternoon log
	xpCompletion = 7 // suggested action confirmed done
	xpMilestone  = 5 // streak crossed a multiple of 3

	surpriseMin = 2
	surpriseMax = 10
)

// XPInput are the qualitative signals the XP formula reads.
type XPInput struct {
	TimeOfDay       domain.TimeOfDay
	ActionCompleted bool
	StreakMilestone bool
}

// XPAward is the outcome of one formula evaluation. Bonus is the surprise
// term alone; it is reported separately because it also seeds reward
// generation.
type XPAward struct {
	XP    int
	Bonus int
}

// CalculateXP evaluates the full XP formula once. It runs twice in the
// lifecycle of a log: at creation (ActionCompleted=false) and again when
// the user confirms the suggested action — the second run deliberately
// re-applies the whole formula, base credit and fresh surprise bonus
// included.
func CalculateXP(in XPInput, rng RandomSource) XPAward {
	xp := xpBase
	if in.TimeOfDay == domain.Morning || in.TimeOfDay == domain.Afternoon {
		xp += xpEarlyDay
	}
	if in.ActionCompleted {
		xp += xpCompletion
	}
	if in.StreakMilestone {
		xp += xpMilestone
	}

	bonus := surpriseMin + rng.Intn(surpriseMax-surpriseMin+1)
	return XPAward{XP: xp + bonus, Bonus: bonus}
}

// LevelForXP derives the level for a cumulative XP amount: one level per
// 100 XP, starting at level 1.
func LevelForXP(xp int64) int {
	return 1 + int(xp/100)
}
