package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindtrack/internal/classifier"
	"mindtrack/internal/model"
	"mindtrack/internal/pipeline"
	"mindtrack/internal/repository"
)

// Writes a demo logistic-regression artifact to disk and inserts a
// sample assessment record, so the service has something to serve on a
// fresh install.
func main() {
	artifactPath := os.Getenv("MODEL_PATH")
	if artifactPath == "" {
		artifactPath = "model.json"
	}

	if err := writeDemoArtifact(artifactPath); err != nil {
		log.Fatalf("Failed to write demo artifact: %v", err)
	}
	fmt.Printf("Wrote demo model artifact to %s\n", artifactPath)

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "mindtrack"
	}
	repo := repository.NewAssessmentRepo(client.Database(dbName))

	now := time.Now()
	assessment := &model.Assessment{
		ID:            fmt.Sprintf("MH-PT-0001-%s", now.Format("20060102150405")),
		PatientNumber: "PT-0001",
		PatientName:   "Demo Patient",
		DiagnosisKey:  model.DiagnosisNormal,
		Result: model.PredictionResult{
			PrimaryDiagnosis:     model.DiagnosisNormal,
			Confidence:           0.82,
			ConfidencePercentage: 82,
			AllDiagnoses: []model.DiagnosisCandidate{
				{Diagnosis: model.DiagnosisNormal, Probability: 0.82, ConfidencePercentage: 82, Rank: 1},
				{Diagnosis: model.DiagnosisDepression, Probability: 0.09, ConfidencePercentage: 9, Rank: 2},
				{Diagnosis: model.DiagnosisBipolar2, Probability: 0.05, ConfidencePercentage: 5, Rank: 3},
				{Diagnosis: model.DiagnosisBipolar1, Probability: 0.04, ConfidencePercentage: 4, Rank: 4},
			},
			ProcessingDetails: model.ProcessingDetails{
				ClinicalSafetyWarnings: []string{},
				SafetyCheckStatus:      model.SafetyStatusPassed,
				EmergencyAlert:         false,
			},
			TechnicalDetails: model.TechnicalDetails{
				ModelName:    "demo-logreg-v1",
				FeatureCount: 23,
			},
		},
		CodedResponses: map[string]string{
			"Q1": "YN1", "Q2": "FR2", "Q3": "FR1", "Q4": "FR2", "Q5": "FR2",
			"Q6": "YN1", "Q7": "YN1", "Q8": "YN1", "Q9": "YN1", "Q10": "YN1",
			"Q11": "YN2", "Q12": "YN2", "Q13": "YN1", "Q14": "YN2",
			"Q15": "CO4", "Q16": "OP4", "Q17": "SA4",
		},
		CreatedAt: now,
	}

	if err := repo.Create(ctx, assessment); err != nil {
		log.Fatalf("Failed to insert assessment: %v", err)
	}

	fmt.Printf("Successfully seeded assessment '%s' for patient '%s'\n", assessment.ID, assessment.PatientNumber)
}

// writeDemoArtifact builds a small hand-weighted artifact in the same
// layout as a trained export. Weights mirror the mock classifier's
// heuristic, not a real training run.
func writeDemoArtifact(path string) error {
	clf := classifier.NewMockModel()
	features := clf.FeatureNames()
	classes := clf.Classes()

	idx := make(map[string]int, len(features))
	for i, name := range features {
		idx[name] = i
	}

	coefficients := make([][]float64, len(classes))
	for i := range coefficients {
		coefficients[i] = make([]float64, len(features))
	}
	weight := func(class int, feature string, w float64) {
		coefficients[class][idx[feature]] = w
	}

	// Class order: Bipolar Type-1, Bipolar Type-2, Depression, Normal
	weight(0, pipeline.FeatEuphoric, 1.2)
	weight(0, pipeline.FeatMoodSwing, 0.6)
	weight(1, pipeline.FeatEuphoric, 0.6)
	weight(1, pipeline.FeatMoodSwing, 0.6)
	weight(1, pipeline.FeatSadness, 0.3)
	weight(2, pipeline.FeatSadness, 0.8)
	weight(2, pipeline.FeatSleepDisorder, 0.6)
	weight(2, pipeline.FeatExhausted, 0.6)
	weight(2, pipeline.FeatSuicidal, 1.2)
	weight(3, pipeline.FeatSadness, -0.6)
	weight(3, pipeline.FeatEuphoric, -0.6)
	weight(3, pipeline.FeatMoodSwing, -0.6)
	weight(3, pipeline.FeatOptimism, 0.4)

	artifact := &classifier.Artifact{
		Name:         "demo-logreg-v1",
		FeatureNames: features,
		Classes:      classes,
		Coefficients: coefficients,
		Intercepts:   []float64{-0.5, -0.4, -0.3, 0.8},
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
