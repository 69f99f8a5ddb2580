package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"scanlens-api/internal/account"
	"scanlens-api/internal/common"
	"scanlens-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock account service
type mockAccountService struct {
	authResult  *account.AuthResult
	authErr     error
	profile     *account.User
	profileErr  error
	settingsErr error

	lastRegister account.RegisterRequest
	lastSettings account.SettingsRequest
}

func (m *mockAccountService) RegisterOrLogin(req account.RegisterRequest) (*account.AuthResult, error) {
	m.lastRegister = req
	if m.authErr != nil {
		return nil, m.authErr
	}
	return m.authResult, nil
}

func (m *mockAccountService) GetProfile(userID common.UserID) (*account.User, error) {
	if m.profileErr != nil {
		return nil, m.profileErr
	}
	return m.profile, nil
}

func (m *mockAccountService) UpdateSettings(req account.SettingsRequest) error {
	m.lastSettings = req
	return m.settingsErr
}

func setupAccountTest(service account.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewAccountHandler(service, logger.New())
	router.POST("/accounts", handler.RegisterOrLogin)
	router.GET("/accounts", handler.GetProfile)
	router.PUT("/accounts", handler.UpdateSettings)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestAccountHandler_Register(t *testing.T) {
	service := &mockAccountService{
		authResult: &account.AuthResult{
			User:       &account.User{ID: 1, Phone: "+1555", FirstName: "A", LastName: "B"},
			Registered: true,
		},
	}
	router := setupAccountTest(service)

	w := postJSON(t, router, http.MethodPost, "/accounts", map[string]string{
		"phone":      "+1555",
		"first_name": "A",
		"last_name":  "B",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, float64(1), response["user_id"])
	assert.Equal(t, "+1555", response["phone"])
	assert.Equal(t, false, response["yandex_connected"])
	assert.Equal(t, false, response["ai_responses_enabled"])
	assert.Equal(t, "Registration successful", response["message"])
	assert.Equal(t, "+1555", service.lastRegister.Phone)
}

func TestAccountHandler_Login(t *testing.T) {
	service := &mockAccountService{
		authResult: &account.AuthResult{
			User:       &account.User{ID: 7, Phone: "+1555"},
			Registered: false,
		},
	}
	router := setupAccountTest(service)

	w := postJSON(t, router, http.MethodPost, "/accounts", map[string]string{"phone": "+1555"})

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "Login successful", response["message"])
}

func TestAccountHandler_RegisterValidationError(t *testing.T) {
	service := &mockAccountService{
		authErr: common.ValidationError{Field: "phone", Message: "phone is required"},
	}
	router := setupAccountTest(service)

	w := postJSON(t, router, http.MethodPost, "/accounts", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeBody(t, w)
	assert.Contains(t, response["error"], "phone")
}

func TestAccountHandler_RegisterInvalidBody(t *testing.T) {
	router := setupAccountTest(&mockAccountService{})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader([]byte("not json{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_GetProfile(t *testing.T) {
	email := "user@yandex.ru"
	yandexID := "123456"
	service := &mockAccountService{
		profile: &account.User{
			ID:                 3,
			Phone:              "+1555",
			FirstName:          "A",
			YandexID:           &yandexID,
			YandexEmail:        &email,
			AIResponsesEnabled: true,
		},
	}
	router := setupAccountTest(service)

	req := httptest.NewRequest(http.MethodGet, "/accounts?user_id=3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, float64(3), response["user_id"])
	assert.Equal(t, true, response["yandex_connected"])
	assert.Equal(t, "user@yandex.ru", response["yandex_email"])
	assert.Equal(t, true, response["ai_responses_enabled"])
}

func TestAccountHandler_GetProfileMissingUserID(t *testing.T) {
	router := setupAccountTest(&mockAccountService{})

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_GetProfileBadUserID(t *testing.T) {
	router := setupAccountTest(&mockAccountService{})

	for _, raw := range []string{"abc", "-1", "0"} {
		req := httptest.NewRequest(http.MethodGet, "/accounts?user_id="+raw, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "user_id=%s", raw)
	}
}

func TestAccountHandler_GetProfileNotFound(t *testing.T) {
	service := &mockAccountService{
		profileErr: common.NotFoundError{Resource: "User", ID: "99"},
	}
	router := setupAccountTest(service)

	req := httptest.NewRequest(http.MethodGet, "/accounts?user_id=99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccountHandler_UpdateSettings(t *testing.T) {
	service := &mockAccountService{}
	router := setupAccountTest(service)

	w := postJSON(t, router, http.MethodPut, "/accounts", map[string]interface{}{
		"user_id":              5,
		"ai_responses_enabled": false,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, "Settings updated", response["message"])

	assert.Equal(t, common.UserID(5), service.lastSettings.UserID)
	require.NotNil(t, service.lastSettings.AIResponsesEnabled)
	assert.False(t, *service.lastSettings.AIResponsesEnabled)
}

func TestAccountHandler_UpdateSettingsAbsentFlag(t *testing.T) {
	service := &mockAccountService{}
	router := setupAccountTest(service)

	w := postJSON(t, router, http.MethodPut, "/accounts", map[string]interface{}{"user_id": 5})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, service.lastSettings.AIResponsesEnabled)
}
