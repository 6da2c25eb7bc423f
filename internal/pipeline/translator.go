package pipeline

import "fmt"

// questionFeatures maps the 17 fixed questionnaire codes to feature names
var questionFeatures = map[string]string{
	"Q1":  FeatMoodSwing,
	"Q2":  FeatSadness,
	"Q3":  FeatEuphoric,
	"Q4":  FeatSleepDisorder,
	"Q5":  FeatExhausted,
	"Q6":  FeatSuicidal,
	"Q7":  FeatAnorexia,
	"Q8":  FeatAggressive,
	"Q9":  FeatBreakdown,
	"Q10": FeatTryExplanation,
	"Q11": FeatAuthorityRespect,
	"Q12": FeatIgnoreMoveOn,
	"Q13": FeatAdmitMistakes,
	"Q14": FeatOverthinking,
	"Q15": FeatConcentration,
	"Q16": FeatOptimism,
	"Q17": FeatSexualActivity,
}

// answerText maps compact answer codes to canonical categorical values
var answerText = map[string]string{
	"YN1": "NO",
	"YN2": "YES",

	"FR1": "Seldom",
	"FR2": "Sometimes",
	"FR3": "Usually",
	"FR4": "Most-Often",

	"CO1": "No concentration",
	"CO2": "Low concentration",
	"CO3": "Moderate concentration",
	"CO4": "Good concentration",
	"CO5": "Excellent concentration",

	"OP1": "Very pessimistic",
	"OP2": "Pessimistic",
	"OP3": "Neutral",
	"OP4": "Optimistic",
	"OP5": "Very optimistic",

	"SA1": "No interest",
	"SA2": "Low interest",
	"SA3": "Moderate interest",
	"SA4": "High interest",
	"SA5": "Very high interest",
}

// answerFamily holds the valid code prefixes per encoding family,
// used only by request validation before the core runs.
var answerPrefix = map[Family]string{
	FamilyYesNo:          "YN",
	FamilyFrequency:      "FR",
	FamilyConcentration:  "CO",
	FamilyOptimism:       "OP",
	FamilySexualActivity: "SA",
}

// Translate converts coded answers into canonical responses. Question
// codes outside the fixed set are dropped; answer codes outside the code
// table default to "NO". The asymmetry is deliberate and must not be
// "fixed": a stray question carries no feature to default, while a known
// question must always yield a value downstream.
func Translate(coded map[string]string) map[string]string {
	out := make(map[string]string, len(coded))
	for q, a := range coded {
		feature, ok := questionFeatures[q]
		if !ok {
			continue
		}
		text, ok := answerText[a]
		if !ok {
			text = "NO"
		}
		out[feature] = text
	}
	return out
}

// ValidateCodedResponses enforces the caller-level input contract:
// exactly the 17 question codes, each answered with a code from the
// family that question encodes with.
func ValidateCodedResponses(coded map[string]string) error {
	if len(coded) != len(questionFeatures) {
		return fmt.Errorf("expected %d coded responses, got %d", len(questionFeatures), len(coded))
	}
	for q, feature := range questionFeatures {
		code, ok := coded[q]
		if !ok {
			return fmt.Errorf("missing response for %s", q)
		}
		if _, known := answerText[code]; !known {
			return fmt.Errorf("unknown answer code %q for %s", code, q)
		}
		prefix := answerPrefix[FamilyOf(feature)]
		if len(code) < 2 || code[:2] != prefix {
			return fmt.Errorf("answer code %q is not valid for %s", code, q)
		}
	}
	return nil
}
