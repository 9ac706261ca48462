package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/cash-advance-monitoring/cam-api/pkg/errors"
)

// Fields carries the endpoint-specific payload keys merged into the envelope.
type Fields map[string]interface{}

// JSON sends a success envelope: {"success": true, ...fields}.
func JSON(c *gin.Context, status int, fields Fields) {
	payload := gin.H{"success": true}
	for key, value := range fields {
		payload[key] = value
	}
	c.JSON(status, payload)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, fields Fields) {
	JSON(c, http.StatusOK, fields)
}

// Created responds with HTTP 201.
func Created(c *gin.Context, fields Fields) {
	JSON(c, http.StatusCreated, fields)
}

// Error sends the failure envelope {"success": false, "message": ...} with
// the status carried by the normalised error.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"success": false, "message": appErr.Message})
}
