package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mindtrack/internal/cache"
	"mindtrack/internal/model"
	"mindtrack/internal/repository"
)

// AssessmentService handles explicit save and retrieval of assessment
// records keyed by patient
type AssessmentService struct {
	repo        repository.AssessmentRepo
	resultCache cache.ResultCache
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(repo repository.AssessmentRepo, resultCache cache.ResultCache) *AssessmentService {
	return &AssessmentService{
		repo:        repo,
		resultCache: resultCache,
	}
}

// Save persists an assessment record under a collision-free id. Unlike
// the predict path's second-resolution id, the save path appends a
// random fragment.
func (s *AssessmentService) Save(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	now := time.Now()
	if assessment.ID == "" {
		assessment.ID = fmt.Sprintf("MH-%s-%s-%s",
			assessment.PatientNumber, now.Format("20060102150405"), uuid.New().String()[:8])
	}
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = now
	}
	assessment.DiagnosisKey = model.CanonicalDiagnosisKey(assessment.DiagnosisKey)

	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to save assessment: %w", err)
	}
	return assessment, nil
}

// GetByPatient returns all assessments for a patient, newest first
func (s *AssessmentService) GetByPatient(ctx context.Context, patientNumber string) ([]*model.Assessment, error) {
	return s.repo.GetByPatientNumber(ctx, patientNumber)
}

// GetLatest returns the most recent assessment for a patient, or nil
func (s *AssessmentService) GetLatest(ctx context.Context, patientNumber string) (*model.Assessment, error) {
	return s.repo.GetLatestByPatient(ctx, patientNumber)
}

// GetLatestResult returns the cached latest prediction for a patient,
// falling back to the persisted record on a cache miss
func (s *AssessmentService) GetLatestResult(ctx context.Context, patientNumber string) (*model.PredictionResult, error) {
	cached, err := s.resultCache.Get(ctx, patientNumber)
	if err == nil && cached != nil {
		return cached, nil
	}

	latest, err := s.repo.GetLatestByPatient(ctx, patientNumber)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	return &latest.Result, nil
}
