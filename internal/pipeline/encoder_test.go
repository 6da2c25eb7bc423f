package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFullQuestionnaire(t *testing.T) {
	encoder := NewEncoder(nil)
	encoded := encoder.Encode(Translate(sampleCodedResponses()))

	assert.Equal(t, 0.0, encoded[FeatMoodSwing])
	assert.Equal(t, 1.0, encoded[FeatSadness])
	assert.Equal(t, 0.0, encoded[FeatEuphoric])
	assert.Equal(t, 1.0, encoded[FeatSleepDisorder])
	assert.Equal(t, 1.0, encoded[FeatExhausted])
	assert.Equal(t, 0.0, encoded[FeatSuicidal])
	assert.Equal(t, 0.0, encoded[FeatTryExplanation])
	assert.Equal(t, 1.0, encoded[FeatOverthinking])
	assert.Equal(t, 3.0, encoded[FeatConcentration])
	assert.Equal(t, 3.0, encoded[FeatOptimism])
	assert.Equal(t, 3.0, encoded[FeatSexualActivity])
}

func TestEncodeFamilyDefaults(t *testing.T) {
	encoder := NewEncoder(nil)
	encoded := encoder.Encode(map[string]string{
		FeatMoodSwing:      "Maybe",     // yes/no default
		FeatSadness:        "Always",    // frequency default
		FeatConcentration:  "Laser",     // scale default
		FeatOptimism:       "Sunny",     // scale default
		FeatSexualActivity: "Undefined", // scale default
	})

	assert.Equal(t, 0.0, encoded[FeatMoodSwing])
	assert.Equal(t, 1.0, encoded[FeatSadness])
	assert.Equal(t, 2.0, encoded[FeatConcentration])
	assert.Equal(t, 2.0, encoded[FeatOptimism])
	assert.Equal(t, 2.0, encoded[FeatSexualActivity])
}

func TestEncodeLegacyAliasesShareFrequencyTable(t *testing.T) {
	encoder := NewEncoder(nil)
	encoded := encoder.Encode(map[string]string{
		"Sleep dissorder":   "Usually",
		"Daily Sadness":     "Most-Often",
		"Euphoric Episodes": "Seldom",
	})

	assert.Equal(t, 2.0, encoded["Sleep dissorder"])
	assert.Equal(t, 3.0, encoded["Daily Sadness"])
	assert.Equal(t, 0.0, encoded["Euphoric Episodes"])
}

func TestEncodePassthroughForUnknownFeature(t *testing.T) {
	encoder := NewEncoder(nil)
	encoded := encoder.Encode(map[string]string{
		"Custom Field": "whatever",
	})

	assert.Equal(t, "whatever", encoded["Custom Field"])
}

func TestLoadMappingsKeepsDefaultsForAbsentTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.json")
	content := `{"yesNo": {"NO": 0, "YES": 2}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := LoadMappings(path)
	require.NoError(t, err)

	assert.Equal(t, 2.0, m.YesNo["YES"])
	assert.Equal(t, 1.0, m.Frequency["Sometimes"])
	assert.Equal(t, 3.0, m.Concentration["Good concentration"])
}

func TestLoadMappingsMissingFile(t *testing.T) {
	_, err := LoadMappings(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
