package pipeline

import (
	"errors"
	"math"
)

// ErrFeatureNamesUnavailable is returned when no model feature-name list
// is loaded. This is the only hard failure in the pipeline: a vector of
// the wrong shape would silently corrupt every downstream prediction.
var ErrFeatureNamesUnavailable = errors.New("model feature names unavailable")

// Vectorize assembles the ordered feature vector the classifier expects.
// A name present in the engineered responses wins, coerced with a 0.0
// fallback; absent names go through the named fallback formulas; anything
// else is 0.
func Vectorize(engineered map[string]any, featureNames []string) ([]float64, error) {
	if len(featureNames) == 0 {
		return nil, ErrFeatureNamesUnavailable
	}

	vector := make([]float64, len(featureNames))
	for i, name := range featureNames {
		if v, ok := engineered[name]; ok {
			vector[i] = CoerceOr(v, 0)
			continue
		}
		vector[i] = fallbackValue(name, engineered)
	}
	return vector, nil
}

// fallbackValue recomputes named derived features from the base
// encodings. The behavioral composite always divides by 3 here, unlike
// the feature engineer's presence-counted denominator.
func fallbackValue(name string, responses map[string]any) float64 {
	get := func(k string) float64 { return CoerceOr(responses[k], 0) }

	switch name {
	case CompositeMoodEmotion, CompositeMoodEmotionScore:
		return 0.6*get(FeatMoodSwing) + 0.4*get(FeatSadness)
	case CompositeSleepFatigue, CompositeSleepFatigueScore:
		return 0.7*get(FeatSleepDisorder) + 0.3*get(FeatExhausted)
	case CompositeBehavioral, CompositeBehavioralScore:
		return (get(FeatAggressive) + get(FeatBreakdown) + get(FeatOverthinking)) / 3
	case "Risk_Assessment_Score":
		return math.Min(10, 5*get(FeatSuicidal)+3*get(FeatAggressive)+2*get(FeatBreakdown))
	case "Cognitive_Function_Score":
		return (get(FeatConcentration) + get(FeatOptimism)) / 2
	case "Mood_Stability_Score":
		return math.Max(0, 10-(3*get(FeatMoodSwing)+2*get(FeatSadness)+2*math.Abs(get(FeatEuphoric)-1)))
	}
	return 0
}
