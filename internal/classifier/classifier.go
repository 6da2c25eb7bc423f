package classifier

// Model is the opaque boundary to the trained classifier. Training
// happens offline; the serving side only consumes the exported artifact.
type Model interface {
	// Name identifies the loaded model for technical details
	Name() string

	// FeatureNames returns the ordered feature list the model was
	// trained on. The vectorizer fills exactly this shape.
	FeatureNames() []string

	// Classes returns the label space in encoder order; the index of a
	// probability in PredictProba output maps to the same index here.
	Classes() []string

	// PredictProba maps a feature vector to one probability per class
	PredictProba(vector []float64) ([]float64, error)
}
