package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorizeRequiresFeatureNames(t *testing.T) {
	_, err := Vectorize(map[string]any{FeatSadness: 2.0}, nil)
	assert.ErrorIs(t, err, ErrFeatureNamesUnavailable)
}

func TestVectorizePresentValuesWin(t *testing.T) {
	vector, err := Vectorize(map[string]any{
		FeatSadness:  2.0,
		FeatEuphoric: "3",
	}, []string{FeatSadness, FeatEuphoric})

	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, vector)
}

func TestVectorizePresentNonNumericReadsAsZero(t *testing.T) {
	vector, err := Vectorize(map[string]any{
		FeatSadness: "corrupt",
	}, []string{FeatSadness})

	require.NoError(t, err)
	assert.Equal(t, []float64{0}, vector)
}

func TestVectorizeNamedFallbacks(t *testing.T) {
	responses := map[string]any{
		FeatMoodSwing:     1.0,
		FeatSadness:       2.0,
		FeatSleepDisorder: 2.0,
		FeatExhausted:     1.0,
		FeatSuicidal:      1.0,
		FeatAggressive:    1.0,
		FeatBreakdown:     0.0,
		FeatOverthinking:  1.0,
		FeatConcentration: 3.0,
		FeatOptimism:      1.0,
		FeatEuphoric:      0.0,
	}

	names := []string{
		CompositeMoodEmotion,
		CompositeSleepFatigueScore,
		CompositeBehavioral,
		"Risk_Assessment_Score",
		"Cognitive_Function_Score",
		"Mood_Stability_Score",
		CompositeBehavioralScore,
		"Totally_Unknown_Feature",
	}

	vector, err := Vectorize(responses, names)
	require.NoError(t, err)

	assert.InDelta(t, 0.6*1+0.4*2, vector[0], 1e-9)
	assert.InDelta(t, 0.7*2+0.3*1, vector[1], 1e-9)
	assert.InDelta(t, 2.0/3, vector[2], 1e-9)
	assert.InDelta(t, 5*1+3*1+2*0, vector[3], 1e-9)
	assert.InDelta(t, (3.0+1.0)/2, vector[4], 1e-9)
	assert.InDelta(t, 10-(3*1+2*2+2*1), vector[5], 1e-9)
	assert.InDelta(t, vector[2], vector[6], 1e-9)
	assert.Equal(t, 0.0, vector[7])
}

func TestVectorizeRiskScoreCapped(t *testing.T) {
	vector, err := Vectorize(map[string]any{
		FeatSuicidal:   1.0,
		FeatAggressive: 1.0,
		FeatBreakdown:  1.0,
	}, []string{"Risk_Assessment_Score"})

	require.NoError(t, err)
	assert.Equal(t, []float64{10}, vector)
}

func TestVectorizeMoodStabilityFloorsAtZero(t *testing.T) {
	vector, err := Vectorize(map[string]any{
		FeatMoodSwing: 3.0,
		FeatSadness:   3.0,
		FeatEuphoric:  3.0,
	}, []string{"Mood_Stability_Score"})

	require.NoError(t, err)
	assert.Equal(t, []float64{0}, vector)
}

// The vectorizer recomputes the behavioral composite over a fixed
// denominator of 3, while the feature engineer divides by the number of
// inputs actually present. With one of three inputs missing the two
// paths disagree, and both values are load-bearing.
func TestBehavioralDenominatorsDiffer(t *testing.T) {
	responses := map[string]any{
		FeatAggressive: 1.0,
		FeatBreakdown:  1.0,
	}

	engineered := Engineer(responses)
	assert.InDelta(t, 1.0, CoerceOr(engineered[CompositeBehavioral], -1), 1e-9)

	vector, err := Vectorize(responses, []string{CompositeBehavioral})
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3, vector[0], 1e-9)
}
