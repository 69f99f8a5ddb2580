package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scanlens-api/internal/common"
	"scanlens-api/internal/scan"
	"scanlens-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock scan service
type mockScanService struct {
	submitResult *scan.SubmitResult
	submitErr    error
	history      *scan.HistoryResult
	historyErr   error

	lastSubmit scan.SubmitRequest
	lastUserID common.UserID
	lastLimit  int
}

func (m *mockScanService) Submit(ctx context.Context, req scan.SubmitRequest) (*scan.SubmitResult, error) {
	m.lastSubmit = req
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.submitResult, nil
}

func (m *mockScanService) History(userID common.UserID, limit int) (*scan.HistoryResult, error) {
	m.lastUserID = userID
	m.lastLimit = limit
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.history, nil
}

func setupScanTest(service scan.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewScanHandler(service, logger.New())
	router.POST("/scans", handler.Submit)
	router.GET("/scans", handler.History)
	return router
}

func TestScanHandler_Submit(t *testing.T) {
	description := "A ripe banana."
	service := &mockScanService{
		submitResult: &scan.SubmitResult{
			ScanID:      1,
			Title:       "Banana",
			Category:    "Fruits",
			Confidence:  97,
			Description: &description,
			CreatedAt:   time.Now(),
		},
	}
	router := setupScanTest(service)

	w := postJSON(t, router, http.MethodPost, "/scans", map[string]interface{}{
		"user_id": 1,
		"image":   "aGVsbG8=",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, float64(1), response["scan_id"])
	assert.Equal(t, "Banana", response["title"])
	assert.Equal(t, "Fruits", response["category"])
	assert.Equal(t, float64(97), response["confidence"])
	assert.Equal(t, "A ripe banana.", response["description"])
	assert.Equal(t, common.UserID(1), service.lastSubmit.UserID)
	assert.Equal(t, "aGVsbG8=", service.lastSubmit.Image)
}

func TestScanHandler_SubmitNullDescription(t *testing.T) {
	service := &mockScanService{
		submitResult: &scan.SubmitResult{
			ScanID:     2,
			Title:      "Banana",
			Category:   "Fruits",
			Confidence: 97,
			CreatedAt:  time.Now(),
		},
	}
	router := setupScanTest(service)

	w := postJSON(t, router, http.MethodPost, "/scans", map[string]interface{}{
		"user_id": 1,
		"image":   "aGVsbG8=",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeBody(t, w)
	value, present := response["description"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestScanHandler_SubmitValidationError(t *testing.T) {
	service := &mockScanService{
		submitErr: common.ValidationError{Field: "image", Message: "image is required"},
	}
	router := setupScanTest(service)

	w := postJSON(t, router, http.MethodPost, "/scans", map[string]interface{}{"user_id": 1})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanHandler_SubmitClassifierFailure(t *testing.T) {
	service := &mockScanService{
		submitErr: common.ProcessingError{Operation: "classification", Message: "vision API request failed"},
	}
	router := setupScanTest(service)

	w := postJSON(t, router, http.MethodPost, "/scans", map[string]interface{}{
		"user_id": 1,
		"image":   "aGVsbG8=",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := decodeBody(t, w)
	assert.Contains(t, response["error"], "classification")
}

func TestScanHandler_History(t *testing.T) {
	service := &mockScanService{
		history: &scan.HistoryResult{
			Scans: []scan.Record{
				{ID: 2, UserID: 1, Title: "Banana", Category: "Fruits", Confidence: 97},
				{ID: 1, UserID: 1, Title: "Apple", Category: "Fruits", Confidence: 88},
			},
			TotalScans:        2,
			AverageConfidence: 93,
		},
	}
	router := setupScanTest(service)

	req := httptest.NewRequest(http.MethodGet, "/scans?user_id=1&limit=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	scans, ok := response["scans"].([]interface{})
	require.True(t, ok)
	assert.Len(t, scans, 2)
	assert.Equal(t, float64(2), response["total_scans"])
	assert.Equal(t, float64(93), response["average_confidence"])

	assert.Equal(t, common.UserID(1), service.lastUserID)
	assert.Equal(t, 2, service.lastLimit)
}

func TestScanHandler_HistoryDefaultLimit(t *testing.T) {
	service := &mockScanService{history: &scan.HistoryResult{}}
	router := setupScanTest(service)

	req := httptest.NewRequest(http.MethodGet, "/scans?user_id=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// Omitted limit is passed through as zero; the service substitutes its default.
	assert.Equal(t, 0, service.lastLimit)
}

func TestScanHandler_HistoryBadLimit(t *testing.T) {
	router := setupScanTest(&mockScanService{})

	req := httptest.NewRequest(http.MethodGet, "/scans?user_id=1&limit=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanHandler_HistoryMissingUserID(t *testing.T) {
	router := setupScanTest(&mockScanService{})

	req := httptest.NewRequest(http.MethodGet, "/scans", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
