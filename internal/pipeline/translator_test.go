package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCodedResponses() map[string]string {
	return map[string]string{
		"Q1": "YN1", "Q2": "FR2", "Q3": "FR1", "Q4": "FR2", "Q5": "FR2",
		"Q6": "YN1", "Q7": "YN1", "Q8": "YN1", "Q9": "YN1", "Q10": "YN1",
		"Q11": "YN2", "Q12": "YN2", "Q13": "YN1", "Q14": "YN2",
		"Q15": "CO4", "Q16": "OP4", "Q17": "SA4",
	}
}

func TestTranslateFullQuestionnaire(t *testing.T) {
	canonical := Translate(sampleCodedResponses())

	require.Len(t, canonical, 17)
	assert.Equal(t, "NO", canonical[FeatMoodSwing])
	assert.Equal(t, "Sometimes", canonical[FeatSadness])
	assert.Equal(t, "Seldom", canonical[FeatEuphoric])
	assert.Equal(t, "Sometimes", canonical[FeatSleepDisorder])
	assert.Equal(t, "NO", canonical[FeatTryExplanation])
	assert.Equal(t, "YES", canonical[FeatOverthinking])
	assert.Equal(t, "Good concentration", canonical[FeatConcentration])
	assert.Equal(t, "Optimistic", canonical[FeatOptimism])
	assert.Equal(t, "High interest", canonical[FeatSexualActivity])
}

func TestTranslateDropsUnknownQuestion(t *testing.T) {
	canonical := Translate(map[string]string{
		"Q1":  "YN2",
		"Q99": "YN2",
	})

	require.Len(t, canonical, 1)
	assert.Equal(t, "YES", canonical[FeatMoodSwing])
}

func TestTranslateUnknownAnswerDefaultsToNo(t *testing.T) {
	// Unknown answer codes default to "NO" even for non-yes/no
	// questions; the encoder's family default takes over from there.
	canonical := Translate(map[string]string{
		"Q1": "XX9",
		"Q2": "XX9",
	})

	assert.Equal(t, "NO", canonical[FeatMoodSwing])
	assert.Equal(t, "NO", canonical[FeatSadness])
}

func TestValidateCodedResponses(t *testing.T) {
	assert.NoError(t, ValidateCodedResponses(sampleCodedResponses()))
}

func TestValidateCodedResponsesWrongCount(t *testing.T) {
	coded := sampleCodedResponses()
	delete(coded, "Q17")

	err := ValidateCodedResponses(coded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 17 coded responses")
}

func TestValidateCodedResponsesUnknownCode(t *testing.T) {
	coded := sampleCodedResponses()
	coded["Q3"] = "FR9"

	err := ValidateCodedResponses(coded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown answer code")
}

func TestValidateCodedResponsesWrongFamily(t *testing.T) {
	coded := sampleCodedResponses()
	coded["Q1"] = "FR2" // yes/no question answered with a frequency code

	err := ValidateCodedResponses(coded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid for Q1")
}

func TestValidateCodedResponsesMissingQuestion(t *testing.T) {
	coded := sampleCodedResponses()
	delete(coded, "Q9")
	coded["Q99"] = "YN1"

	err := ValidateCodedResponses(coded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing response for Q9")
}
