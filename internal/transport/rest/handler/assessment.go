package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"mindtrack/internal/model"
	"mindtrack/internal/service"
	"mindtrack/internal/transport/rest/middleware"
)

// AssessmentHandler handles assessment record endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// Save handles POST /v1/assessments
func (h *AssessmentHandler) Save(w http.ResponseWriter, r *http.Request) {
	var assessment model.Assessment
	if err := json.NewDecoder(r.Body).Decode(&assessment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if assessment.PatientNumber == "" {
		writeError(w, http.StatusBadRequest, "patientNumber is required")
		return
	}

	saved, err := h.assessmentSvc.Save(r.Context(), &assessment)
	if err != nil {
		log.Printf("Error saving assessment for patient %s: %v", assessment.PatientNumber, err)
		writeError(w, http.StatusInternalServerError, "failed to save assessment")
		return
	}
	log.Printf("Assessment %s saved by %s", saved.ID, middleware.GetClinicianID(r.Context()))

	writeJSON(w, http.StatusCreated, saved)
}

// GetByPatient handles GET /v1/assessments/{patientNumber}
func (h *AssessmentHandler) GetByPatient(w http.ResponseWriter, r *http.Request) {
	patientNumber := mux.Vars(r)["patientNumber"]

	assessments, err := h.assessmentSvc.GetByPatient(r.Context(), patientNumber)
	if err != nil {
		log.Printf("Error fetching assessments for patient %s: %v", patientNumber, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch assessments")
		return
	}
	if assessments == nil {
		assessments = []*model.Assessment{}
	}

	writeJSON(w, http.StatusOK, assessments)
}

// GetLatest handles GET /v1/assessments/{patientNumber}/latest
func (h *AssessmentHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	patientNumber := mux.Vars(r)["patientNumber"]

	latest, err := h.assessmentSvc.GetLatest(r.Context(), patientNumber)
	if err != nil {
		log.Printf("Error fetching latest assessment for patient %s: %v", patientNumber, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch assessment")
		return
	}
	if latest == nil {
		writeError(w, http.StatusNotFound, "no assessment found for patient")
		return
	}

	writeJSON(w, http.StatusOK, latest)
}
