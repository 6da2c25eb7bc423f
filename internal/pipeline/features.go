package pipeline

// Canonical questionnaire feature names
const (
	FeatMoodSwing        = "Mood Swing"
	FeatSadness          = "Sadness"
	FeatEuphoric         = "Euphoric"
	FeatSleepDisorder    = "Sleep disorder"
	FeatExhausted        = "Exhausted"
	FeatSuicidal         = "Suicidal thoughts"
	FeatAnorexia         = "Anorexia"
	FeatAggressive       = "Aggressive Response"
	FeatBreakdown        = "Nervous Break-down"
	FeatTryExplanation   = "Try-Explanation"
	FeatAuthorityRespect = "Authority Respect"
	FeatIgnoreMoveOn     = "Ignore & Move-On"
	FeatAdmitMistakes    = "Admit Mistakes"
	FeatOverthinking     = "Overthinking"
	FeatConcentration    = "Concentration"
	FeatOptimism         = "Optimism"
	FeatSexualActivity   = "Sexual Activity"
)

// Family is the answer-encoding category of a feature
type Family int

const (
	FamilyPassthrough Family = iota
	FamilyYesNo
	FamilyFrequency
	FamilyConcentration
	FamilyOptimism
	FamilySexualActivity
)

var yesNoFeatures = map[string]bool{
	FeatMoodSwing:        true,
	FeatSuicidal:         true,
	FeatAnorexia:         true,
	FeatAggressive:       true,
	FeatBreakdown:        true,
	FeatTryExplanation:   true,
	FeatAuthorityRespect: true,
	FeatIgnoreMoveOn:     true,
	FeatAdmitMistakes:    true,
	FeatOverthinking:     true,
}

// frequencyFeatures includes legacy aliases that never come out of the
// translator but may arrive on externally supplied response maps.
var frequencyFeatures = map[string]bool{
	FeatSadness:         true,
	FeatEuphoric:        true,
	FeatExhausted:       true,
	FeatSleepDisorder:   true,
	"Sleep dissorder":   true,
	"Daily Sadness":     true,
	"Euphoric Episodes": true,
	"Fatigue Level":     true,
	"Sleep Quality":     true,
}

// FamilyOf returns the encoding family of a feature name. Names outside
// the five known families pass through the encoder unmodified.
func FamilyOf(feature string) Family {
	switch {
	case yesNoFeatures[feature]:
		return FamilyYesNo
	case frequencyFeatures[feature]:
		return FamilyFrequency
	case feature == FeatConcentration:
		return FamilyConcentration
	case feature == FeatOptimism:
		return FamilyOptimism
	case feature == FeatSexualActivity:
		return FamilySexualActivity
	}
	return FamilyPassthrough
}
