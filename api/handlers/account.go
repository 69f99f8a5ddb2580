package handlers

import (
	"net/http"

	"scanlens-api/internal/account"
	"scanlens-api/internal/common"
	"scanlens-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves phone registration, profile retrieval, and settings
// updates.
type AccountHandler struct {
	service account.Service
	logger  *logger.Logger
}

func NewAccountHandler(service account.Service, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterOrLogin handles POST /accounts. An existing phone logs in with
// 200; a new phone registers with 201.
func (h *AccountHandler) RegisterOrLogin(c *gin.Context) {
	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	result, err := h.service.RegisterOrLogin(req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	message := "Login successful"
	if result.Registered {
		status = http.StatusCreated
		message = "Registration successful"
	}

	user := result.User
	c.JSON(status, gin.H{
		"user_id":              user.ID,
		"phone":                user.Phone,
		"first_name":           user.FirstName,
		"last_name":            user.LastName,
		"yandex_connected":     user.YandexConnected(),
		"ai_responses_enabled": user.AIResponsesEnabled,
		"message":              message,
	})
}

// GetProfile handles GET /accounts?user_id=.
func (h *AccountHandler) GetProfile(c *gin.Context) {
	userID, err := queryUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.service.GetProfile(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":              user.ID,
		"phone":                user.Phone,
		"first_name":           user.FirstName,
		"last_name":            user.LastName,
		"yandex_connected":     user.YandexConnected(),
		"yandex_email":         user.YandexEmail,
		"ai_responses_enabled": user.AIResponsesEnabled,
	})
}

// UpdateSettings handles PUT /accounts. The ai_responses_enabled flag is
// applied when present (true or false); its absence is a no-op. Either way
// the call acknowledges success.
func (h *AccountHandler) UpdateSettings(c *gin.Context) {
	var req account.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	if err := h.service.UpdateSettings(req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}
