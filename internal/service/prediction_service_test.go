package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindtrack/internal/clinical"
	"mindtrack/internal/model"
	"mindtrack/internal/pipeline"
)

// fakeModel returns a fixed probability distribution so tests can steer
// the enhancement layer precisely
type fakeModel struct {
	probs []float64
}

func (m *fakeModel) Name() string { return "fake-model" }

func (m *fakeModel) FeatureNames() []string {
	return []string{
		pipeline.FeatMoodSwing,
		pipeline.FeatSadness,
		pipeline.FeatEuphoric,
		pipeline.FeatSleepDisorder,
		pipeline.FeatExhausted,
		pipeline.FeatSuicidal,
	}
}

func (m *fakeModel) Classes() []string {
	return []string{
		model.DiagnosisBipolar1,
		model.DiagnosisBipolar2,
		model.DiagnosisDepression,
		model.DiagnosisNormal,
	}
}

func (m *fakeModel) PredictProba(vector []float64) ([]float64, error) {
	return m.probs, nil
}

type fakeRepo struct {
	mu      sync.Mutex
	records []*model.Assessment
	created chan *model.Assessment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{created: make(chan *model.Assessment, 8)}
}

func (r *fakeRepo) Create(ctx context.Context, a *model.Assessment) error {
	r.mu.Lock()
	r.records = append(r.records, a)
	r.mu.Unlock()
	r.created <- a
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.records {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) GetByPatientNumber(ctx context.Context, patientNumber string) ([]*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Assessment
	for _, a := range r.records {
		if a.PatientNumber == patientNumber {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetLatestByPatient(ctx context.Context, patientNumber string) (*model.Assessment, error) {
	all, _ := r.GetByPatientNumber(ctx, patientNumber)
	if len(all) == 0 {
		return nil, nil
	}
	return all[len(all)-1], nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *fakeRepo) waitForCreate(t *testing.T) *model.Assessment {
	t.Helper()
	select {
	case a := <-r.created:
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for assessment persist")
		return nil
	}
}

type fakeResultCache struct {
	mu      sync.Mutex
	results map[string]*model.PredictionResult
}

func newFakeResultCache() *fakeResultCache {
	return &fakeResultCache{results: make(map[string]*model.PredictionResult)}
}

func (c *fakeResultCache) Set(ctx context.Context, patientNumber string, result *model.PredictionResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[patientNumber] = result
	return nil
}

func (c *fakeResultCache) Get(ctx context.Context, patientNumber string) (*model.PredictionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results[patientNumber], nil
}

func (c *fakeResultCache) Delete(ctx context.Context, patientNumber string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, patientNumber)
	return nil
}

type fakeBroadcaster struct {
	alerts chan string
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{alerts: make(chan string, 8)}
}

func (b *fakeBroadcaster) BroadcastAlert(msgType string, payload interface{}) {
	b.alerts <- msgType
}

func cleanRequest() *model.PredictRequest {
	return &model.PredictRequest{
		PatientNumber: "PT-1",
		PatientName:   "Test Patient",
		CodedResponses: map[string]string{
			"Q1": "YN1", "Q2": "FR2", "Q3": "FR1", "Q4": "FR2", "Q5": "FR2",
			"Q6": "YN1", "Q7": "YN1", "Q8": "YN1", "Q9": "YN1", "Q10": "YN1",
			"Q11": "YN2", "Q12": "YN2", "Q13": "YN1", "Q14": "YN2",
			"Q15": "CO4", "Q16": "OP4", "Q17": "SA4",
		},
	}
}

// Usually-level depressive answers: Sadness, Sleep disorder and
// Exhausted encode to 2, Euphoric to 0. Triggers the depression
// suggestion without tripping any safety predicate.
func depressiveRequest() *model.PredictRequest {
	req := cleanRequest()
	req.CodedResponses["Q2"] = "FR3"
	req.CodedResponses["Q4"] = "FR3"
	req.CodedResponses["Q5"] = "FR3"
	return req
}

func newService(clf *fakeModel, repo *fakeRepo, rc *fakeResultCache) *PredictionService {
	return NewPredictionService(clf, pipeline.NewEncoder(nil), clinical.NewEngine(), repo, rc)
}

func TestPredictNilModel(t *testing.T) {
	svc := NewPredictionService(nil, pipeline.NewEncoder(nil), clinical.NewEngine(), newFakeRepo(), newFakeResultCache())

	_, err := svc.Predict(context.Background(), cleanRequest())
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPredictCleanQuestionnaire(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeResultCache()
	// Order: Bipolar Type-1, Bipolar Type-2, Depression, Normal
	svc := newService(&fakeModel{probs: []float64{0.05, 0.05, 0.1, 0.8}}, repo, cache)

	result, err := svc.Predict(context.Background(), cleanRequest())
	require.NoError(t, err)

	assert.Equal(t, model.DiagnosisNormal, result.PrimaryDiagnosis)
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
	assert.Equal(t, 80.0, result.ConfidencePercentage)
	require.Len(t, result.AllDiagnoses, 4)
	assert.Equal(t, 1, result.AllDiagnoses[0].Rank)
	assert.Equal(t, model.SafetyStatusPassed, result.ProcessingDetails.SafetyCheckStatus)
	assert.Equal(t, []string{}, result.ProcessingDetails.ClinicalSafetyWarnings)
	assert.False(t, result.ProcessingDetails.EmergencyAlert)
	assert.Equal(t, "fake-model", result.TechnicalDetails.ModelName)
	assert.Equal(t, 6, result.TechnicalDetails.FeatureCount)
	require.NotNil(t, result.ClinicalInsights)
	assert.False(t, result.ClinicalInsights.OverrideApplied)
}

func TestPredictBoostWithoutRankChange(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(&fakeModel{probs: []float64{0.05, 0.05, 0.2, 0.7}}, repo, newFakeResultCache())

	result, err := svc.Predict(context.Background(), depressiveRequest())
	require.NoError(t, err)

	// Depression gets the 0.20 boost but Normal still ranks first, so
	// no override is recorded
	assert.Equal(t, model.DiagnosisNormal, result.PrimaryDiagnosis)
	require.NotNil(t, result.ClinicalInsights)
	assert.Equal(t, model.DiagnosisDepression, result.ClinicalInsights.EnhancedDiagnosis)
	assert.Equal(t, 0.20, result.ClinicalInsights.ConfidenceAdjustment)
	assert.NotEmpty(t, result.ClinicalInsights.AdjustmentReasons)
	assert.False(t, result.ClinicalInsights.OverrideApplied)
}

func TestPredictOverrideFlipsRanking(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(&fakeModel{probs: []float64{0.05, 0.05, 0.42, 0.48}}, repo, newFakeResultCache())

	result, err := svc.Predict(context.Background(), depressiveRequest())
	require.NoError(t, err)

	// 0.42 + 0.20 boost outranks Normal's 0.48
	assert.Equal(t, model.DiagnosisDepression, result.PrimaryDiagnosis)
	assert.InDelta(t, 0.62, result.Confidence, 1e-9)
	require.NotNil(t, result.ClinicalInsights)
	assert.True(t, result.ClinicalInsights.OverrideApplied)
	assert.Equal(t, model.DiagnosisNormal, result.ClinicalInsights.OriginalDiagnosis)
	assert.InDelta(t, 0.48, result.ClinicalInsights.OriginalConfidence, 1e-9)
}

func TestPredictPersistsRecordAndCachesResult(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeResultCache()
	svc := newService(&fakeModel{probs: []float64{0.05, 0.05, 0.1, 0.8}}, repo, cache)

	_, err := svc.Predict(context.Background(), cleanRequest())
	require.NoError(t, err)

	record := repo.waitForCreate(t)
	assert.Equal(t, "PT-1", record.PatientNumber)
	assert.Equal(t, model.DiagnosisNormal, record.DiagnosisKey)
	assert.Regexp(t, `^MH-PT-1-\d{14}$`, record.ID)
	assert.Equal(t, "YN1", record.CodedResponses["Q1"])

	// The same goroutine writes the cache after the repo
	require.Eventually(t, func() bool {
		cached, _ := cache.Get(context.Background(), "PT-1")
		return cached != nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPredictEmergencyBroadcast(t *testing.T) {
	repo := newFakeRepo()
	broadcaster := newFakeBroadcaster()
	svc := newService(&fakeModel{probs: []float64{0.05, 0.05, 0.8, 0.1}}, repo, newFakeResultCache())
	svc.SetBroadcaster(broadcaster)

	req := cleanRequest()
	req.CodedResponses["Q6"] = "YN2" // suicidal thoughts

	result, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.SafetyStatusCritical, result.ProcessingDetails.SafetyCheckStatus)
	assert.True(t, result.ProcessingDetails.EmergencyAlert)
	assert.Contains(t, result.ProcessingDetails.ClinicalSafetyWarnings, pipeline.WarnSuicidal)

	select {
	case msgType := <-broadcaster.alerts:
		assert.Equal(t, EmergencyAlertEvent, msgType)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emergency alert broadcast")
	}
}

func TestRankCandidatesDeterministicTieBreak(t *testing.T) {
	candidates := rankCandidates(map[string]float64{
		model.DiagnosisNormal:     0.4,
		model.DiagnosisDepression: 0.4,
		model.DiagnosisBipolar1:   0.2,
	})

	require.Len(t, candidates, 3)
	assert.Equal(t, model.DiagnosisDepression, candidates[0].Diagnosis)
	assert.Equal(t, model.DiagnosisNormal, candidates[1].Diagnosis)
	assert.Equal(t, model.DiagnosisBipolar1, candidates[2].Diagnosis)
	assert.Equal(t, []int{1, 2, 3}, []int{candidates[0].Rank, candidates[1].Rank, candidates[2].Rank})
}
