package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// Family defaults applied when a categorical value misses its mapping
// table. Deliberate policy, not an error: downstream processing never
// fails on an unrecognized category value.
const (
	defaultYesNo     = 0
	defaultFrequency = 1
	defaultScale     = 2
)

// Mappings holds the five category mapping tables. Constructed once at
// process start and treated as immutable afterwards.
type Mappings struct {
	YesNo          map[string]float64 `json:"yesNo"`
	Frequency      map[string]float64 `json:"frequency"`
	Concentration  map[string]float64 `json:"concentration"`
	Optimism       map[string]float64 `json:"optimism"`
	SexualActivity map[string]float64 `json:"sexualActivity"`
}

// DefaultMappings returns the built-in category mapping tables
func DefaultMappings() *Mappings {
	return &Mappings{
		YesNo: map[string]float64{
			"NO":  0,
			"YES": 1,
		},
		Frequency: map[string]float64{
			"Seldom":     0,
			"Sometimes":  1,
			"Usually":    2,
			"Most-Often": 3,
		},
		Concentration: map[string]float64{
			"No concentration":        0,
			"Low concentration":       1,
			"Moderate concentration":  2,
			"Good concentration":      3,
			"Excellent concentration": 4,
		},
		Optimism: map[string]float64{
			"Very pessimistic": 0,
			"Pessimistic":      1,
			"Neutral":          2,
			"Optimistic":       3,
			"Very optimistic":  4,
		},
		SexualActivity: map[string]float64{
			"No interest":        0,
			"Low interest":       1,
			"Moderate interest":  2,
			"High interest":      3,
			"Very high interest": 4,
		},
	}
}

// LoadMappings reads mapping tables from a JSON file. Tables absent
// from the file keep their built-in values.
func LoadMappings(path string) (*Mappings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mappings file: %w", err)
	}

	m := DefaultMappings()
	loaded := &Mappings{}
	if err := json.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("failed to parse mappings file: %w", err)
	}
	if loaded.YesNo != nil {
		m.YesNo = loaded.YesNo
	}
	if loaded.Frequency != nil {
		m.Frequency = loaded.Frequency
	}
	if loaded.Concentration != nil {
		m.Concentration = loaded.Concentration
	}
	if loaded.Optimism != nil {
		m.Optimism = loaded.Optimism
	}
	if loaded.SexualActivity != nil {
		m.SexualActivity = loaded.SexualActivity
	}
	return m, nil
}

// Encoder maps canonical categorical responses to ordinal values
type Encoder struct {
	mappings *Mappings
}

// NewEncoder creates an encoder. A nil mappings argument selects the
// built-in tables.
func NewEncoder(m *Mappings) *Encoder {
	if m == nil {
		m = DefaultMappings()
	}
	return &Encoder{mappings: m}
}

// Encode converts a canonical response map to ordinal values. Feature
// names outside the five known families are copied through unmodified
// so forward-compatible extra fields reach the vectorizer untouched.
func (e *Encoder) Encode(canonical map[string]string) map[string]any {
	encoded := make(map[string]any, len(canonical))
	for feature, value := range canonical {
		switch FamilyOf(feature) {
		case FamilyYesNo:
			encoded[feature] = lookupOr(e.mappings.YesNo, value, defaultYesNo)
		case FamilyFrequency:
			encoded[feature] = lookupOr(e.mappings.Frequency, value, defaultFrequency)
		case FamilyConcentration:
			encoded[feature] = lookupOr(e.mappings.Concentration, value, defaultScale)
		case FamilyOptimism:
			encoded[feature] = lookupOr(e.mappings.Optimism, value, defaultScale)
		case FamilySexualActivity:
			encoded[feature] = lookupOr(e.mappings.SexualActivity, value, defaultScale)
		default:
			encoded[feature] = value
		}
	}
	return encoded
}

func lookupOr(table map[string]float64, value string, def float64) float64 {
	if v, ok := table[value]; ok {
		return v
	}
	return def
}
