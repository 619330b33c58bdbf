package engagement

import (
	"fmt"

	"github.com/sugarlog-app/sugarlog/internal/domain"
)

// rewardTier is one weighted entry in the discrete reward table.
type rewardTier struct {
	Type   domain.RewardType
	Value  int
	Weight float64
}

// rewardTable is the fixed candidate set. Weights sum to 100 but are not
// required to be normalized — selection uses the running total.
var rewardTable = []rewardTier{
	{Type: domain.RewardCoin, Value: 1, Weight: 40},
	{Type: domain.RewardCoin, Value: 2, Weight: 30},
	{Type: domain.RewardCoin, Value: 5, Weight: 20},
	{Type: domain.RewardBadge, Value: 0, Weight: 10},
}

// SelectReward picks one reward by weighted-random selection. xpGained is
// accepted for forward compatibility; the current table ignores it.
//
// The draw is uniform over [0, totalWeight); the first candidate whose
// cumulative weight reaches the draw wins, so ties resolve to the
// earlier-indexed tier.
func SelectReward(xpGained int, rng RandomSource) domain.RewardRecord {
	_ = xpGained

	var total float64
	for _, t := range rewardTable {
		total += t.Weight
	}

	r := rng.Float64() * total

	var cum float64
	chosen := rewardTable[len(rewardTable)-1]
	for _, t := range rewardTable {
		cum += t.Weight
		if cum >= r {
			chosen = t
			break
		}
	}

	return domain.RewardRecord{
		Type:        chosen.Type,
		Value:       chosen.Value,
		Description: rewardDescription(chosen),
	}
}

func rewardDescription(t rewardTier) string {
	if t.Type == domain.RewardBadge {
		return "You earned a badge — keep the momentum going!"
	}
	if t.Value == 1 {
		return "You earned 1 coin!"
	}
	return fmt.Sprintf("You earned %d coins!", t.Value)
}
