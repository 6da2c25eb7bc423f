package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindtrack/internal/model"
)

func TestMockModelMetadata(t *testing.T) {
	m := NewMockModel()

	assert.Equal(t, "mock-heuristic-v1", m.Name())
	assert.Len(t, m.FeatureNames(), 23)
	assert.Equal(t, []string{
		model.DiagnosisBipolar1,
		model.DiagnosisBipolar2,
		model.DiagnosisDepression,
		model.DiagnosisNormal,
	}, m.Classes())
}

func TestMockModelIsDeterministic(t *testing.T) {
	m := NewMockModel()
	vector := make([]float64, 23)
	vector[1] = 2 // Sadness
	vector[3] = 2 // Sleep disorder

	first, err := m.PredictProba(vector)
	require.NoError(t, err)
	second, err := m.PredictProba(vector)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	sum := 0.0
	for _, p := range first {
		assert.Greater(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestMockModelFavorsDepressiveSymptoms(t *testing.T) {
	m := NewMockModel()
	vector := make([]float64, 23)
	vector[1] = 3 // Sadness
	vector[3] = 3 // Sleep disorder
	vector[4] = 3 // Exhausted
	vector[5] = 1 // Suicidal thoughts

	probs, err := m.PredictProba(vector)
	require.NoError(t, err)

	// Class order: Bipolar Type-1, Bipolar Type-2, Depression, Normal
	assert.Greater(t, probs[2], probs[0])
	assert.Greater(t, probs[2], probs[1])
	assert.Greater(t, probs[2], probs[3])
}

func TestMockModelRejectsWrongVectorLength(t *testing.T) {
	m := NewMockModel()
	_, err := m.PredictProba([]float64{1, 2, 3})
	assert.Error(t, err)
}
