package engagement

import (
	"strings"

	"github.com/sugarlog-app/sugarlog/internal/domain"
)

// intensity buckets a sugar amount in grams.
type intensity string

const (
	intensityLow      intensity = "low"
	intensityModerate intensity = "moderate"
	intensityHigh     intensity = "high"
)

func bucketIntensity(grams float64) intensity {
	switch {
	case grams <= 10:
		return intensityLow
	case grams >= 25:
		return intensityHigh
	default:
		return intensityModerate
	}
}

// Insight sentences. Contextual rules fire independently; exactly one
// closing sentence is keyed by intensity.
const (
	insightShortSleepNight  = "You slept under 6 hours — late-night sugar tends to follow short sleep and disrupts it further."
	insightLowStepsDaytime  = "You've been fairly inactive today, and afternoon sugar hits harder without movement to burn it."
	insightHighIntensity    = "That's a high sugar hit for one sitting — worth making it the last one today."
	insightLowIntensity     = "Nice and light — small amounts like this are easy wins."
	insightModerateIntensiy = "A moderate dose of sugar — keep an eye on the next craving."
)

// GenerateInsight produces the feedback text for a logged intake. It is a
// pure function: identical inputs always yield the identical string.
// Missing context fields suppress their rule rather than erroring.
func GenerateInsight(grams float64, tod domain.TimeOfDay, ctx domain.ContextSnapshot) string {
	var sentences []string

	if ctx.SleepHours != nil && *ctx.SleepHours < 6 && tod == domain.Night {
		sentences = append(sentences, insightShortSleepNight)
	}
	if ctx.Steps != nil && *ctx.Steps < 4000 && tod == domain.Afternoon {
		sentences = append(sentences, insightLowStepsDaytime)
	}

	switch bucketIntensity(grams) {
	case intensityHigh:
		sentences = append(sentences, insightHighIntensity)
	case intensityLow:
		sentences = append(sentences, insightLowIntensity)
	default:
		sentences = append(sentences, insightModerateIntensiy)
	}

	// Rules are disjoint in text today; dedupe anyway.
	seen := make(map[string]bool, len(sentences))
	out := sentences[:0]
	for _, s := range sentences {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	return strings.Join(out, " ")
}
