package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"mindtrack/internal/model"
	"mindtrack/internal/pipeline"
	"mindtrack/internal/service"
)

// PredictHandler handles assessment prediction endpoints
type PredictHandler struct {
	predictSvc *service.PredictionService
}

// NewPredictHandler creates a new predict handler
func NewPredictHandler(predictSvc *service.PredictionService) *PredictHandler {
	return &PredictHandler{predictSvc: predictSvc}
}

// Predict handles POST /v1/predict
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req model.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PatientNumber == "" {
		writeError(w, http.StatusBadRequest, "patientNumber is required")
		return
	}
	if err := pipeline.ValidateCodedResponses(req.CodedResponses); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.predictSvc.Predict(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrModelUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "classifier model not loaded")
			return
		}
		log.Printf("Prediction error for patient %s: %v", req.PatientNumber, err)
		writeError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
