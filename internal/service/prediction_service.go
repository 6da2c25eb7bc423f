package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"mindtrack/internal/cache"
	"mindtrack/internal/classifier"
	"mindtrack/internal/clinical"
	"mindtrack/internal/model"
	"mindtrack/internal/pipeline"
	"mindtrack/internal/repository"
)

// ErrModelUnavailable is returned when no classifier is loaded. The only
// pipeline-level hard failure; per-feature anomalies never surface.
var ErrModelUnavailable = errors.New("classifier model not loaded")

// PredictionService runs the full assessment pipeline: translation,
// encoding, feature engineering, safety validation, vectorization,
// classification and clinical enhancement.
type PredictionService struct {
	clf         classifier.Model
	encoder     *pipeline.Encoder
	engine      *clinical.Engine
	repo        repository.AssessmentRepo
	resultCache cache.ResultCache
	broadcaster Broadcaster
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	clf classifier.Model,
	encoder *pipeline.Encoder,
	engine *clinical.Engine,
	repo repository.AssessmentRepo,
	resultCache cache.ResultCache,
) *PredictionService {
	return &PredictionService{
		clf:         clf,
		encoder:     encoder,
		engine:      engine,
		repo:        repo,
		resultCache: resultCache,
	}
}

// SetBroadcaster sets the broadcaster for emergency alert events
func (s *PredictionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Predict runs one assessment. The computation itself is pure; the
// record write happens in parallel with the response (detached
// goroutine), so a slow database never delays the prediction.
func (s *PredictionService) Predict(ctx context.Context, req *model.PredictRequest) (*model.PredictionResult, error) {
	if s.clf == nil {
		return nil, ErrModelUnavailable
	}
	started := time.Now()

	canonical := pipeline.Translate(req.CodedResponses)
	encoded := s.encoder.Encode(canonical)
	engineered := pipeline.Engineer(encoded)

	_, warnings := pipeline.ValidateSafety(engineered)
	if warnings == nil {
		warnings = []string{}
	}

	vector, err := pipeline.Vectorize(engineered, s.clf.FeatureNames())
	if err != nil {
		return nil, err
	}

	probs, err := s.clf.PredictProba(vector)
	if err != nil {
		return nil, fmt.Errorf("model prediction failed: %w", err)
	}

	classes := s.clf.Classes()
	if len(probs) != len(classes) {
		return nil, fmt.Errorf("model returned %d probabilities for %d classes", len(probs), len(classes))
	}

	probByClass := make(map[string]float64, len(classes))
	original := ""
	best := -1.0
	for i, c := range classes {
		probByClass[c] = probs[i]
		if probs[i] > best {
			best = probs[i]
			original = c
		}
	}

	enhancement, analysis := s.engine.Enhance(engineered, original, best)

	adjusted := make(map[string]float64, len(probByClass))
	for c, p := range probByClass {
		adjusted[c] = p
	}
	if enhancement.ConfidenceAdjustment > 0 {
		boosted := adjusted[enhancement.EnhancedDiagnosis] + enhancement.ConfidenceAdjustment
		if boosted > 1 {
			boosted = 1
		}
		adjusted[enhancement.EnhancedDiagnosis] = boosted
	}

	candidates := rankCandidates(adjusted)
	primary := candidates[0]

	overrideApplied := primary.Diagnosis != enhancement.OriginalDiagnosis && len(enhancement.AdjustmentReasons) > 0
	if overrideApplied {
		log.Printf("clinical override applied: %s -> %s (1 case affected, reasons=%d)",
			enhancement.OriginalDiagnosis, primary.Diagnosis, len(enhancement.AdjustmentReasons))
	}

	status := model.SafetyStatusPassed
	if len(warnings) > 0 {
		status = model.SafetyStatusCritical
	}

	result := &model.PredictionResult{
		PrimaryDiagnosis:     primary.Diagnosis,
		Confidence:           primary.Probability,
		ConfidencePercentage: primary.ConfidencePercentage,
		AllDiagnoses:         candidates,
		ProcessingDetails: model.ProcessingDetails{
			ClinicalSafetyWarnings: warnings,
			SafetyCheckStatus:      status,
			EmergencyAlert:         pipeline.IsEmergency(warnings),
		},
		TechnicalDetails: model.TechnicalDetails{
			ModelName:        s.clf.Name(),
			FeatureCount:     len(vector),
			ProcessingTimeMS: time.Since(started).Milliseconds(),
		},
		ClinicalInsights: &model.ClinicalInsights{
			OriginalDiagnosis:    enhancement.OriginalDiagnosis,
			OriginalConfidence:   enhancement.OriginalConfidence,
			EnhancedDiagnosis:    enhancement.EnhancedDiagnosis,
			ConfidenceAdjustment: enhancement.ConfidenceAdjustment,
			AdjustmentReasons:    enhancement.AdjustmentReasons,
			OverrideApplied:      overrideApplied,
		},
	}
	_ = analysis // informational side output, not part of the client contract

	record := model.Assessment{
		// Second-resolution wall-clock id: concurrent submissions within
		// the same second collide. The save path appends a random suffix
		// instead; the two schemes are intentionally not unified.
		ID:             predictionID(req.PatientNumber, started),
		PatientNumber:  req.PatientNumber,
		PatientName:    req.PatientName,
		DiagnosisKey:   model.CanonicalDiagnosisKey(primary.Diagnosis),
		Result:         *result,
		CodedResponses: req.CodedResponses,
		CreatedAt:      started,
	}

	go func(rec model.Assessment) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic persisting assessment %s: %v", rec.ID, r)
			}
		}()

		bg, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.repo.Create(bg, &rec); err != nil {
			log.Printf("failed to persist assessment %s: %v", rec.ID, err)
		}
		if err := s.resultCache.Set(bg, rec.PatientNumber, &rec.Result); err != nil {
			log.Printf("failed to cache result for patient %s: %v", rec.PatientNumber, err)
		}

		if s.broadcaster != nil && rec.Result.ProcessingDetails.SafetyCheckStatus == model.SafetyStatusCritical {
			s.broadcaster.BroadcastAlert(EmergencyAlertEvent, map[string]interface{}{
				"patientNumber":  rec.PatientNumber,
				"diagnosisKey":   rec.DiagnosisKey,
				"warnings":       rec.Result.ProcessingDetails.ClinicalSafetyWarnings,
				"emergencyAlert": rec.Result.ProcessingDetails.EmergencyAlert,
			})
		}
	}(record)

	return result, nil
}

// rankCandidates sorts the adjusted distribution descending and assigns
// 1-based ranks. Ties break on label so repeated calls rank identically.
func rankCandidates(probs map[string]float64) []model.DiagnosisCandidate {
	candidates := make([]model.DiagnosisCandidate, 0, len(probs))
	for diagnosis, p := range probs {
		candidates = append(candidates, model.DiagnosisCandidate{
			Diagnosis:            diagnosis,
			Probability:          p,
			ConfidencePercentage: math.Round(p * 100),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Probability != candidates[j].Probability {
			return candidates[i].Probability > candidates[j].Probability
		}
		return candidates[i].Diagnosis < candidates[j].Diagnosis
	})
	for i := range candidates {
		candidates[i].Rank = i + 1
	}
	return candidates
}

func predictionID(patientNumber string, t time.Time) string {
	return fmt.Sprintf("MH-%s-%s", patientNumber, t.Format("20060102150405"))
}
