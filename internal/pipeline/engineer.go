package pipeline

// Derived composite feature names. Every composite is emitted under two
// aliases with identical values; the vectorizer matches on either, so
// the duplication must stay.
const (
	CompositeMoodEmotion       = "Mood_Emotion_Composite"
	CompositeMoodEmotionScore  = "Mood_Emotion_Composite_Score"
	CompositeSleepFatigue      = "Sleep_Fatigue_Composite"
	CompositeSleepFatigueScore = "Sleep_Fatigue_Composite_Score"
	CompositeBehavioral        = "Behavioral_Stress_Composite"
	CompositeBehavioralScore   = "Behavioral_Stress_Composite_Score"
)

var behavioralInputs = []string{FeatAggressive, FeatBreakdown, FeatOverthinking}

// Engineer returns the encoded responses plus derived composites. The
// weighted composites require both base features present; the behavioral
// composite averages over however many of its three inputs are present,
// with non-numeric values contributing 0.0 to the sum while still
// counting toward the denominator. The vectorizer's recomputation of the
// same composite divides by a fixed 3 instead; the mismatch is intended
// and both sides are pinned by tests.
func Engineer(encoded map[string]any) map[string]any {
	out := make(map[string]any, len(encoded)+6)
	for k, v := range encoded {
		out[k] = v
	}

	if mood, ok := encoded[FeatMoodSwing]; ok {
		if sad, ok := encoded[FeatSadness]; ok {
			v := 0.6*CoerceOr(mood, 0) + 0.4*CoerceOr(sad, 0)
			out[CompositeMoodEmotion] = v
			out[CompositeMoodEmotionScore] = v
		}
	}

	if sleep, ok := encoded[FeatSleepDisorder]; ok {
		if exhausted, ok := encoded[FeatExhausted]; ok {
			v := 0.7*CoerceOr(sleep, 0) + 0.3*CoerceOr(exhausted, 0)
			out[CompositeSleepFatigue] = v
			out[CompositeSleepFatigueScore] = v
		}
	}

	present := 0
	sum := 0.0
	for _, k := range behavioralInputs {
		if v, ok := encoded[k]; ok {
			present++
			sum += CoerceOr(v, 0)
		}
	}
	if present > 0 {
		v := sum / float64(present)
		out[CompositeBehavioral] = v
		out[CompositeBehavioralScore] = v
	}

	return out
}
