package handlers

import (
	"net/http"
	"strconv"

	"scanlens-api/internal/common"
	"scanlens-api/internal/scan"
	"scanlens-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ScanHandler serves scan submission and history listing.
type ScanHandler struct {
	service scan.Service
	logger  *logger.Logger
}

func NewScanHandler(service scan.Service, logger *logger.Logger) *ScanHandler {
	return &ScanHandler{
		service: service,
		logger:  logger,
	}
}

// Submit handles POST /scans: classify the image and append a history row.
func (h *ScanHandler) Submit(c *gin.Context) {
	var req scan.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, common.ValidationError{Field: "body", Message: "invalid request body"})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// History handles GET /scans?user_id=&limit=.
func (h *ScanHandler) History(c *gin.Context) {
	userID, err := queryUserID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, common.ValidationError{Field: "limit", Message: "limit must be an integer"})
			return
		}
		limit = parsed
	}

	result, err := h.service.History(userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
