package clinical

import (
	"mindtrack/internal/model"
	"mindtrack/internal/pipeline"
)

// Engine applies the deterministic clinical decision rules on top of
// raw classifier output. Pure per call: no state beyond the constant
// rule tables.
type Engine struct{}

// NewEngine creates the enhancement engine
func NewEngine() *Engine {
	return &Engine{}
}

// PatternScores scores the engineered responses against each diagnostic
// pattern: (met required + met exclusions) / (total required + exclusions).
func (e *Engine) PatternScores(responses map[string]any) map[string]float64 {
	scores := make(map[string]float64, len(patternRules))
	for key, rule := range patternRules {
		met := 0
		for _, r := range rule.Required {
			if pipeline.CoerceOr(responses[r.Feature], 0) >= r.Threshold {
				met++
			}
		}
		for _, x := range rule.Exclusions {
			if pipeline.CoerceOr(responses[x.Feature], 0) <= x.Threshold {
				met++
			}
		}
		scores[key] = float64(met) / float64(len(rule.Required)+len(rule.Exclusions))
	}
	return scores
}

// FeatureConsistency checks each key feature of the primary diagnosis
// against its expected range
func (e *Engine) FeatureConsistency(responses map[string]any, diagnosis string) map[string]bool {
	consistency := make(map[string]bool)
	ranges, ok := expectedRanges[diagnosis]
	if !ok {
		return consistency
	}
	for feature, bounds := range ranges {
		v := pipeline.CoerceOr(responses[feature], 0)
		consistency[feature] = v >= bounds[0] && v <= bounds[1]
	}
	return consistency
}

// Suggestions computes the adjustment suggestions for the current
// primary diagnosis
func (e *Engine) Suggestions(responses map[string]any, current string) []model.ClinicalAdjustment {
	get := func(k string) float64 { return pipeline.CoerceOr(responses[k], 0) }

	var suggestions []model.ClinicalAdjustment
	if get(pipeline.FeatSadness) >= 2 && get(pipeline.FeatSleepDisorder) >= 2 &&
		get(pipeline.FeatEuphoric) <= 1 && current != model.DiagnosisDepression {
		suggestions = append(suggestions, model.ClinicalAdjustment{
			Type:            model.AdjustmentPotentialDepression,
			TargetDiagnosis: model.DiagnosisDepression,
			ConfidenceBoost: 0.20,
			Reason:          "Depressive symptom cluster present without euphoric episodes",
		})
	}
	if get(pipeline.FeatEuphoric) >= 2 && get(pipeline.FeatMoodSwing) >= 1 &&
		current != model.DiagnosisBipolar1 && current != model.DiagnosisBipolar2 {
		suggestions = append(suggestions, model.ClinicalAdjustment{
			Type:            model.AdjustmentPotentialBipolar,
			TargetDiagnosis: model.DiagnosisBipolar1,
			ConfidenceBoost: 0.15,
			Reason:          "Euphoric episodes with mood swings outside a bipolar diagnosis",
		})
	}
	return suggestions
}

// ApplyOverrides walks the suggestions in order and overwrites the
// enhanced diagnosis on every matching override condition. When several
// conditions hold, the last-evaluated suggestion wins. Sequential
// overwrite is the shipped clinical policy; do not replace it with
// highest-boost-wins.
func (e *Engine) ApplyOverrides(suggestions []model.ClinicalAdjustment, scores map[string]float64, original string, originalConfidence float64) *model.ClinicalEnhancement {
	enhancement := &model.ClinicalEnhancement{
		OriginalDiagnosis:  original,
		OriginalConfidence: originalConfidence,
		EnhancedDiagnosis:  original,
	}

	for _, s := range suggestions {
		switch s.Type {
		case model.AdjustmentPotentialDepression:
			if scores[ScoreDepression] > 0.7 {
				enhancement.EnhancedDiagnosis = s.TargetDiagnosis
				enhancement.ConfidenceAdjustment = s.ConfidenceBoost
				enhancement.AdjustmentReasons = append(enhancement.AdjustmentReasons, s.Reason)
			}
		case model.AdjustmentPotentialBipolar:
			if scores[ScoreBipolar1] > scores[ScoreBipolar2] {
				enhancement.EnhancedDiagnosis = s.TargetDiagnosis
				enhancement.ConfidenceAdjustment = s.ConfidenceBoost
				enhancement.AdjustmentReasons = append(enhancement.AdjustmentReasons, s.Reason)
			}
		}
	}

	return enhancement
}

// Enhance runs the full engine: pattern scores, consistency, suggestions
// and overrides, in that order
func (e *Engine) Enhance(responses map[string]any, original string, originalConfidence float64) (*model.ClinicalEnhancement, *model.ClinicalAnalysis) {
	scores := e.PatternScores(responses)
	analysis := &model.ClinicalAnalysis{
		PatternScores:      scores,
		FeatureConsistency: e.FeatureConsistency(responses, original),
		Suggestions:        e.Suggestions(responses, original),
	}
	enhancement := e.ApplyOverrides(analysis.Suggestions, scores, original, originalConfidence)
	return enhancement, analysis
}
