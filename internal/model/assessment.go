package model

import "time"

// Safety check statuses surfaced to clients
const (
	SafetyStatusPassed   = "PASSED"
	SafetyStatusCritical = "CRITICAL_ALERTS"
)

// PredictRequest is the inbound payload for POST /v1/predict
type PredictRequest struct {
	PatientNumber  string            `json:"patientNumber"`
	PatientName    string            `json:"patientName"`
	CodedResponses map[string]string `json:"codedResponses"`
}

// ProcessingDetails describes the safety outcome of one assessment
type ProcessingDetails struct {
	ClinicalSafetyWarnings []string `json:"clinicalSafetyWarnings" bson:"clinicalSafetyWarnings"`
	SafetyCheckStatus      string   `json:"safetyCheckStatus" bson:"safetyCheckStatus"`
	EmergencyAlert         bool     `json:"emergencyAlert" bson:"emergencyAlert"`
}

// ClinicalInsights is the client-facing view of a ClinicalEnhancement.
// Present on a prediction only when the enhancement engine ran.
type ClinicalInsights struct {
	OriginalDiagnosis    string   `json:"originalDiagnosis" bson:"originalDiagnosis"`
	OriginalConfidence   float64  `json:"originalConfidence" bson:"originalConfidence"`
	EnhancedDiagnosis    string   `json:"enhancedDiagnosis" bson:"enhancedDiagnosis"`
	ConfidenceAdjustment float64  `json:"confidenceAdjustment" bson:"confidenceAdjustment"`
	AdjustmentReasons    []string `json:"adjustmentReasons" bson:"adjustmentReasons"`
	OverrideApplied      bool     `json:"overrideApplied" bson:"overrideApplied"`
}

// TechnicalDetails records how a prediction was produced
type TechnicalDetails struct {
	ModelName        string `json:"modelName" bson:"modelName"`
	FeatureCount     int    `json:"featureCount" bson:"featureCount"`
	ProcessingTimeMS int64  `json:"processingTimeMs" bson:"processingTimeMs"`
}

// PredictionResult is the core output contract returned to the serving layer
type PredictionResult struct {
	PrimaryDiagnosis     string               `json:"primaryDiagnosis" bson:"primaryDiagnosis"`
	Confidence           float64              `json:"confidence" bson:"confidence"`
	ConfidencePercentage float64              `json:"confidencePercentage" bson:"confidencePercentage"`
	AllDiagnoses         []DiagnosisCandidate `json:"allDiagnoses" bson:"allDiagnoses"`
	ProcessingDetails    ProcessingDetails    `json:"processingDetails" bson:"processingDetails"`
	TechnicalDetails     TechnicalDetails     `json:"technicalDetails" bson:"technicalDetails"`
	ClinicalInsights     *ClinicalInsights    `json:"clinicalInsights,omitempty" bson:"clinicalInsights,omitempty"`
}

// Assessment is the persisted record, one per completed prediction,
// keyed by patient. CodedResponses always holds the original answer
// codes, never the translated English form.
type Assessment struct {
	ID             string            `json:"id" bson:"_id"`
	PatientNumber  string            `json:"patientNumber" bson:"patientNumber"`
	PatientName    string            `json:"patientName" bson:"patientName"`
	DiagnosisKey   string            `json:"diagnosisKey" bson:"diagnosisKey"`
	Result         PredictionResult  `json:"result" bson:"result"`
	CodedResponses map[string]string `json:"codedResponses" bson:"codedResponses"`
	CreatedAt      time.Time         `json:"createdAt" bson:"createdAt"`
}
