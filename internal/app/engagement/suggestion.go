package engagement

import "github.com/sugarlog-app/sugarlog/internal/domain"

// Suggestion texts. The caller always gets exactly one instruction.
const (
	suggestWalk         = "Take a brisk 10-minute walk to blunt the sugar spike."
	suggestWindDown     = "Start winding down 30 minutes earlier tonight — short sleep feeds sugar cravings."
	suggestProteinSwap  = "Swap the late-night sweet for a protein snack like nuts or yogurt."
	suggestPairProtein  = "Pair your snack with some protein so the sugar lands slower."
	suggestWaterAndMove = "Have a glass of water and move around for a few minutes."
)

// SuggestAction returns the single highest-priority recommendation for the
// log's context. Candidates are collected in a fixed order and the first
// one wins — this is a deliberate priority ordering, not a severity
// ranking: unknown or low step counts always beat sleep and time-of-day
// rules.
func SuggestAction(tod domain.TimeOfDay, ctx domain.ContextSnapshot) string {
	var candidates []string

	if ctx.Steps == nil || *ctx.Steps < 5000 {
		candidates = append(candidates, suggestWalk)
	}
	if ctx.SleepHours != nil && *ctx.SleepHours < 6 {
		candidates = append(candidates, suggestWindDown)
	}
	if tod == domain.Night {
		candidates = append(candidates, suggestProteinSwap)
	} else if tod == domain.Afternoon {
		candidates = append(candidates, suggestPairProtein)
	}

	if len(candidates) == 0 {
		return suggestWaterAndMove
	}
	return candidates[0]
}
