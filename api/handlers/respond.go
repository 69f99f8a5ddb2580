package handlers

import (
	"strconv"

	"scanlens-api/internal/common"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error onto its HTTP status and the shared
// {"error": ...} body shape.
func respondError(c *gin.Context, err error) {
	c.JSON(common.HTTPStatus(err), gin.H{"error": err.Error()})
}

// queryUserID reads the required user_id query parameter.
func queryUserID(c *gin.Context) (common.UserID, error) {
	raw := c.Query("user_id")
	if raw == "" {
		return 0, common.ValidationError{Field: "user_id", Message: "user_id is required"}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ValidationError{Field: "user_id", Message: "user_id must be a positive integer"}
	}
	return common.UserID(id), nil
}
