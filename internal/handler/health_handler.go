package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports service and database availability.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check godoc
// @Summary Service health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	database := "connected"
	if h.db == nil || h.db.PingContext(ctx) != nil {
		database = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Server is running!",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
