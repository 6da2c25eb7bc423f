package clinical

import (
	"mindtrack/internal/model"
	"mindtrack/internal/pipeline"
)

// FeatureThreshold pairs a feature name with a rule threshold
type FeatureThreshold struct {
	Feature   string
	Threshold float64
}

// PatternRule describes one diagnostic pattern: required features must
// read at or above their threshold, exclusion features at or below.
type PatternRule struct {
	Required   []FeatureThreshold
	Exclusions []FeatureThreshold
}

// Pattern score keys
const (
	ScoreDepression = "depression"
	ScoreBipolar1   = "bipolar_type_1"
	ScoreBipolar2   = "bipolar_type_2"
)

// patternRules is loaded once and never mutated after process start
var patternRules = map[string]PatternRule{
	ScoreDepression: {
		Required: []FeatureThreshold{
			{pipeline.FeatSadness, 2},
			{pipeline.FeatSleepDisorder, 2},
			{pipeline.FeatExhausted, 2},
		},
		Exclusions: []FeatureThreshold{
			{pipeline.FeatEuphoric, 1},
		},
	},
	ScoreBipolar1: {
		Required: []FeatureThreshold{
			{pipeline.FeatEuphoric, 3},
			{pipeline.FeatMoodSwing, 1},
			{pipeline.FeatSleepDisorder, 1},
		},
		Exclusions: []FeatureThreshold{
			{pipeline.FeatSadness, 1},
		},
	},
	ScoreBipolar2: {
		Required: []FeatureThreshold{
			{pipeline.FeatEuphoric, 2},
			{pipeline.FeatMoodSwing, 1},
			{pipeline.FeatSadness, 2},
		},
		Exclusions: []FeatureThreshold{
			{pipeline.FeatSuicidal, 0},
		},
	},
}

// expectedRanges lists, per canonical diagnosis, the value range each key
// feature is expected to fall in. Consistency output is informational
// and never drives an override.
var expectedRanges = map[string]map[string][2]float64{
	model.DiagnosisNormal: {
		pipeline.FeatSadness:   {0, 1},
		pipeline.FeatEuphoric:  {0, 1},
		pipeline.FeatMoodSwing: {0, 0},
	},
	model.DiagnosisDepression: {
		pipeline.FeatSadness:       {2, 3},
		pipeline.FeatEuphoric:      {0, 1},
		pipeline.FeatSleepDisorder: {1, 3},
	},
	model.DiagnosisBipolar1: {
		pipeline.FeatEuphoric:  {2, 3},
		pipeline.FeatMoodSwing: {1, 1},
	},
	model.DiagnosisBipolar2: {
		pipeline.FeatEuphoric:  {1, 3},
		pipeline.FeatSadness:   {1, 3},
		pipeline.FeatMoodSwing: {1, 1},
	},
}
