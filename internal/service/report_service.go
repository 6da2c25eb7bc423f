package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"mindtrack/internal/repository"
)

// ErrNoAssessment is returned when a patient has no persisted assessment
var ErrNoAssessment = errors.New("no assessment found for patient")

// ReportService renders assessment reports for clinicians
type ReportService struct {
	repo repository.AssessmentRepo
}

// NewReportService creates a new report service
func NewReportService(repo repository.AssessmentRepo) *ReportService {
	return &ReportService{repo: repo}
}

// GeneratePatientReport renders the latest assessment of a patient as a
// PDF document
func (s *ReportService) GeneratePatientReport(ctx context.Context, patientNumber string) ([]byte, error) {
	assessment, err := s.repo.GetLatestByPatient(ctx, patientNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if assessment == nil {
		return nil, ErrNoAssessment
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Mental Health Assessment Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Mental Health Assessment Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Patient: %s (%s)", assessment.PatientName, assessment.PatientNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Assessment ID: %s", assessment.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s", assessment.CreatedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, fmt.Sprintf("Primary Diagnosis: %s", assessment.DiagnosisKey), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Confidence: %.0f%%", assessment.Result.ConfidencePercentage), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Probability Distribution", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, c := range assessment.Result.AllDiagnoses {
		pdf.CellFormat(0, 6, fmt.Sprintf("%d. %s - %.0f%%", c.Rank, c.Diagnosis, c.ConfidencePercentage), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	details := assessment.Result.ProcessingDetails
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Safety Check: %s", details.SafetyCheckStatus), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(details.ClinicalSafetyWarnings) == 0 {
		pdf.CellFormat(0, 6, "No clinical safety warnings.", "", 1, "L", false, 0, "")
	}
	for _, w := range details.ClinicalSafetyWarnings {
		pdf.MultiCell(0, 6, "- "+w, "", "L", false)
	}

	if insights := assessment.Result.ClinicalInsights; insights != nil && insights.OverrideApplied {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Clinical Enhancement", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Model diagnosis %s adjusted to %s (+%.0f%% confidence)",
			insights.OriginalDiagnosis, insights.EnhancedDiagnosis, insights.ConfidenceAdjustment*100), "", 1, "L", false, 0, "")
		for _, reason := range insights.AdjustmentReasons {
			pdf.MultiCell(0, 6, "- "+reason, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}
