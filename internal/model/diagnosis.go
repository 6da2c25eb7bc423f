package model

import "strings"

// Canonical diagnosis keys produced by the classifier label space
const (
	DiagnosisNormal     = "Normal"
	DiagnosisBipolar1   = "Bipolar Type-1"
	DiagnosisBipolar2   = "Bipolar Type-2"
	DiagnosisDepression = "Depression"
)

// DiagnosisCandidate is one entry of the ranked probability distribution
type DiagnosisCandidate struct {
	Diagnosis            string  `json:"diagnosis" bson:"diagnosis"`
	Probability          float64 `json:"probability" bson:"probability"`
	ConfidencePercentage float64 `json:"confidencePercentage" bson:"confidencePercentage"`
	Rank                 int     `json:"rank" bson:"rank"`
}

// ClinicalAdjustment is a suggested override produced by the enhancement
// engine before the override conditions are applied
type ClinicalAdjustment struct {
	Type            string  `json:"type" bson:"type"`
	TargetDiagnosis string  `json:"targetDiagnosis" bson:"targetDiagnosis"`
	ConfidenceBoost float64 `json:"confidenceBoost" bson:"confidenceBoost"`
	Reason          string  `json:"reason" bson:"reason"`
}

// Adjustment types emitted by the enhancement engine
const (
	AdjustmentPotentialDepression = "POTENTIAL_DEPRESSION"
	AdjustmentPotentialBipolar    = "POTENTIAL_BIPOLAR"
)

// ClinicalEnhancement records what the enhancement engine did to one
// prediction. Built fresh per request, never persisted on its own.
type ClinicalEnhancement struct {
	OriginalDiagnosis    string   `json:"originalDiagnosis" bson:"originalDiagnosis"`
	OriginalConfidence   float64  `json:"originalConfidence" bson:"originalConfidence"`
	EnhancedDiagnosis    string   `json:"enhancedDiagnosis" bson:"enhancedDiagnosis"`
	ConfidenceAdjustment float64  `json:"confidenceAdjustment" bson:"confidenceAdjustment"`
	AdjustmentReasons    []string `json:"adjustmentReasons" bson:"adjustmentReasons"`
}

// ClinicalAnalysis carries the informational side outputs of the
// enhancement engine
type ClinicalAnalysis struct {
	PatternScores      map[string]float64   `json:"patternScores" bson:"patternScores"`
	FeatureConsistency map[string]bool      `json:"featureConsistency" bson:"featureConsistency"`
	Suggestions        []ClinicalAdjustment `json:"suggestions" bson:"suggestions"`
}

// CanonicalDiagnosisKey normalizes free-text diagnosis labels to one of
// the four canonical keys. Unrecognized text passes through unchanged.
func CanonicalDiagnosisKey(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "bipolar") && strings.Contains(lower, "type-1"):
		return DiagnosisBipolar1
	case strings.Contains(lower, "bipolar") && strings.Contains(lower, "type-2"):
		return DiagnosisBipolar2
	case strings.Contains(lower, "depression"):
		return DiagnosisDepression
	case strings.Contains(lower, "normal"):
		return DiagnosisNormal
	}
	return text
}
