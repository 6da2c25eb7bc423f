package pipeline

import "strings"

// Safety warning messages, listed in predicate evaluation order
const (
	WarnSuicidal         = "CRITICAL: Suicidal thoughts reported - immediate clinical attention required"
	WarnAggressive       = "WARNING: Aggressive behavior reported - safety assessment recommended"
	WarnBreakdown        = "WARNING: Nervous breakdown indicators present - close monitoring advised"
	WarnSevereDepression = "ALERT: Severe depression pattern detected - comprehensive evaluation needed"
	WarnManic            = "ALERT: Manic pattern detected - bipolar disorder screening recommended"
)

// ValidateSafety evaluates the five threshold predicates in their fixed
// order and returns whether the assessment passed plus any warnings.
// The warnings slice preserves predicate order; callers and tests rely
// on it. Missing or malformed values read as 0 and never abort.
func ValidateSafety(engineered map[string]any) (bool, []string) {
	get := func(k string) float64 { return CoerceOr(engineered[k], 0) }

	var warnings []string
	if get(FeatSuicidal) == 1 {
		warnings = append(warnings, WarnSuicidal)
	}
	if get(FeatAggressive) == 1 {
		warnings = append(warnings, WarnAggressive)
	}
	if get(FeatBreakdown) == 1 {
		warnings = append(warnings, WarnBreakdown)
	}
	if get(FeatSadness) >= 3 && get(FeatSleepDisorder) >= 2 && get(FeatExhausted) >= 2 {
		warnings = append(warnings, WarnSevereDepression)
	}
	if get(FeatEuphoric) >= 3 && get(FeatMoodSwing) >= 2 {
		warnings = append(warnings, WarnManic)
	}

	return len(warnings) == 0, warnings
}

// IsEmergency reports whether any emitted warning requires the
// emergency-alert flag on the client contract.
func IsEmergency(warnings []string) bool {
	for _, w := range warnings {
		if strings.Contains(strings.ToLower(w), "suicidal") {
			return true
		}
	}
	return false
}
