package classifier

import (
	"fmt"

	"mindtrack/internal/model"
	"mindtrack/internal/pipeline"
)

// mockFeatureNames mirrors the feature layout of the trained artifact so
// the rest of the pipeline behaves identically with or without a model.
var mockFeatureNames = []string{
	pipeline.FeatMoodSwing,
	pipeline.FeatSadness,
	pipeline.FeatEuphoric,
	pipeline.FeatSleepDisorder,
	pipeline.FeatExhausted,
	pipeline.FeatSuicidal,
	pipeline.FeatAnorexia,
	pipeline.FeatAggressive,
	pipeline.FeatBreakdown,
	pipeline.FeatTryExplanation,
	pipeline.FeatAuthorityRespect,
	pipeline.FeatIgnoreMoveOn,
	pipeline.FeatAdmitMistakes,
	pipeline.FeatOverthinking,
	pipeline.FeatConcentration,
	pipeline.FeatOptimism,
	pipeline.FeatSexualActivity,
	pipeline.CompositeMoodEmotion,
	pipeline.CompositeSleepFatigue,
	pipeline.CompositeBehavioral,
	"Risk_Assessment_Score",
	"Cognitive_Function_Score",
	"Mood_Stability_Score",
}

// Label-encoder order matches the training export (lexicographic)
var mockClasses = []string{
	model.DiagnosisBipolar1,
	model.DiagnosisBipolar2,
	model.DiagnosisDepression,
	model.DiagnosisNormal,
}

// MockModel is the fallback classifier used when no artifact is
// configured, so the service always boots. Deterministic symptom-weight
// heuristic, not a trained model.
type MockModel struct {
	index map[string]int
}

// NewMockModel creates the heuristic fallback model
func NewMockModel() *MockModel {
	idx := make(map[string]int, len(mockFeatureNames))
	for i, name := range mockFeatureNames {
		idx[name] = i
	}
	return &MockModel{index: idx}
}

func (m *MockModel) Name() string {
	return "mock-heuristic-v1"
}

func (m *MockModel) FeatureNames() []string {
	return mockFeatureNames
}

func (m *MockModel) Classes() []string {
	return mockClasses
}

// PredictProba scores each class from hand-picked symptom weights and
// normalizes to a distribution
func (m *MockModel) PredictProba(vector []float64) ([]float64, error) {
	if len(vector) != len(mockFeatureNames) {
		return nil, fmt.Errorf("feature vector length %d does not match model feature count %d",
			len(vector), len(mockFeatureNames))
	}
	at := func(name string) float64 { return vector[m.index[name]] }

	depression := at(pipeline.FeatSadness) + at(pipeline.FeatSleepDisorder) +
		at(pipeline.FeatExhausted) + 2*at(pipeline.FeatSuicidal)
	bipolar1 := 2*at(pipeline.FeatEuphoric) + at(pipeline.FeatMoodSwing)
	bipolar2 := at(pipeline.FeatEuphoric) + at(pipeline.FeatMoodSwing) + 0.5*at(pipeline.FeatSadness)
	normal := 3 - 0.5*(at(pipeline.FeatSadness)+at(pipeline.FeatEuphoric)+at(pipeline.FeatMoodSwing))
	if normal < 0 {
		normal = 0
	}

	scores := []float64{bipolar1, bipolar2, depression, normal}
	sum := 0.0
	for i := range scores {
		scores[i] += 0.25 // smoothing so no class ever reads exactly zero
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
	return scores, nil
}
