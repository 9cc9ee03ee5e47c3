package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fstr/pereval/internal/app/models/dto"
	"github.com/fstr/pereval/internal/pkg/logger"
)

// Pinger is the connectivity probe the health check depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports service liveness and database connectivity
type HealthController struct {
	db Pinger
}

// NewHealthController creates a new HealthController
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Check probes the database connection
// @Summary Health check
// @Description Reports liveness and database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service healthy"
// @Failure 500 {object} dto.HealthResponse "Database unreachable"
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.db.Ping(probeCtx); err != nil {
		logger.Error().Err(err).Msg("Health check: database ping failed")
		ctx.JSON(http.StatusInternalServerError, dto.HealthResponse{
			Status:   "Degraded",
			Database: "disconnected",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "OK",
		Database: "connected",
	})
}
