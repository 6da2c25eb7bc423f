package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// Artifact is the JSON export produced by offline training: a
// multinomial logistic regression with one coefficient row per class.
type Artifact struct {
	Name         string      `json:"name"`
	FeatureNames []string    `json:"feature_names"`
	Classes      []string    `json:"classes"`
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

type artifactModel struct {
	artifact Artifact
}

// LoadArtifact reads and validates a model artifact from disk
func LoadArtifact(path string) (Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	return NewArtifactModel(a)
}

// NewArtifactModel validates an artifact and wraps it as a Model
func NewArtifactModel(a Artifact) (Model, error) {
	if len(a.FeatureNames) == 0 || len(a.Classes) == 0 {
		return nil, errors.New("model artifact missing feature names or classes")
	}
	if len(a.Coefficients) != len(a.Classes) || len(a.Intercepts) != len(a.Classes) {
		return nil, errors.New("model artifact coefficient shape does not match class count")
	}
	for i, row := range a.Coefficients {
		if len(row) != len(a.FeatureNames) {
			return nil, fmt.Errorf("model artifact coefficient row %d does not match feature count", i)
		}
	}
	if a.Name == "" {
		a.Name = "logreg-artifact"
	}
	return &artifactModel{artifact: a}, nil
}

func (m *artifactModel) Name() string {
	return m.artifact.Name
}

func (m *artifactModel) FeatureNames() []string {
	return m.artifact.FeatureNames
}

func (m *artifactModel) Classes() []string {
	return m.artifact.Classes
}

// PredictProba computes softmax(W*x + b)
func (m *artifactModel) PredictProba(vector []float64) ([]float64, error) {
	if len(vector) != len(m.artifact.FeatureNames) {
		return nil, fmt.Errorf("feature vector length %d does not match model feature count %d",
			len(vector), len(m.artifact.FeatureNames))
	}

	logits := make([]float64, len(m.artifact.Classes))
	maxLogit := math.Inf(-1)
	for c := range m.artifact.Classes {
		z := m.artifact.Intercepts[c]
		for i, w := range m.artifact.Coefficients[c] {
			z += w * vector[i]
		}
		logits[c] = z
		if z > maxLogit {
			maxLogit = z
		}
	}

	sum := 0.0
	probs := make([]float64, len(logits))
	for c, z := range logits {
		probs[c] = math.Exp(z - maxLogit)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}
	return probs, nil
}
