package handlers

import (
	"net/http"

	"scanlens-api/internal/common"
	"scanlens-api/internal/identity"
	"scanlens-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// IdentityHandler serves the Yandex OAuth authorization URL and the
// code-to-session exchange.
type IdentityHandler struct {
	service identity.Service
	logger  *logger.Logger
}

func NewIdentityHandler(service identity.Service, logger *logger.Logger) *IdentityHandler {
	return &IdentityHandler{
		service: service,
		logger:  logger,
	}
}

// AuthURL handles GET /auth/yandex.
func (h *IdentityHandler) AuthURL(c *gin.Context) {
	url, err := h.service.AuthURL()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_url": url})
}

// Authorize handles POST /auth/yandex. With user_id the identity is linked
// to that user; without it the call logs in or registers by external
// identity.
func (h *IdentityHandler) Authorize(c *gin.Context) {
	var body struct {
		Code   string         `json:"code"`
		UserID *common.UserID `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, common.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	result, err := h.service.Authorize(c.Request.Context(), identity.AuthorizeRequest{
		Code:   body.Code,
		UserID: body.UserID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	user := result.User
	switch {
	case result.Linked:
		c.JSON(http.StatusOK, gin.H{
			"user_id":      user.ID,
			"phone":        user.Phone,
			"first_name":   user.FirstName,
			"last_name":    user.LastName,
			"yandex_email": result.YandexEmail,
			"message":      "Yandex ID linked",
		})
	case result.Registered:
		c.JSON(http.StatusCreated, gin.H{
			"user_id":              user.ID,
			"first_name":           user.FirstName,
			"last_name":            user.LastName,
			"yandex_email":         result.YandexEmail,
			"yandex_connected":     true,
			"ai_responses_enabled": user.AIResponsesEnabled,
			"message":              "Registered via Yandex",
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"user_id":              user.ID,
			"phone":                user.Phone,
			"first_name":           user.FirstName,
			"last_name":            user.LastName,
			"yandex_email":         result.YandexEmail,
			"ai_responses_enabled": user.AIResponsesEnabled,
			"message":              "Yandex login successful",
		})
	}
}
