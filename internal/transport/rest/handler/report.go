package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"mindtrack/internal/service"
)

// ReportHandler handles clinical report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// PatientPDF handles GET /v1/reports/{patientNumber}/pdf
func (h *ReportHandler) PatientPDF(w http.ResponseWriter, r *http.Request) {
	patientNumber := mux.Vars(r)["patientNumber"]

	pdf, err := h.reportSvc.GeneratePatientReport(r.Context(), patientNumber)
	if err != nil {
		if errors.Is(err, service.ErrNoAssessment) {
			writeError(w, http.StatusNotFound, "no assessment found for patient")
			return
		}
		log.Printf("Error generating report for patient %s: %v", patientNumber, err)
		writeError(w, http.StatusInternalServerError, "failed to generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=assessment-%s.pdf", patientNumber))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
