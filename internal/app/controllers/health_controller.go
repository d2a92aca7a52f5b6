package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/seas-computing/course-planner/internal/app/models/dto"
	"github.com/seas-computing/course-planner/internal/pkg/logger"
)

// Pinger checks that a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports whether the service can reach its database and
// the session store
type HealthController struct {
	db       Pinger
	sessions Pinger
	timeout  time.Duration
}

// NewHealthController creates a new HealthController
func NewHealthController(db, sessions Pinger) *HealthController {
	return &HealthController{db: db, sessions: sessions, timeout: 2 * time.Second}
}

// Check pings the database and the session store
// @Summary Health check
// @Description Returns ok when both the database and the session store answer a ping
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service healthy"
// @Failure 503 {object} dto.HealthResponse "Database or session store unreachable"
// @Router /health-check [get]
func (c *HealthController) Check(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.timeout)
	defer cancel()

	for name, p := range map[string]Pinger{"database": c.db, "sessions": c.sessions} {
		if err := p.Ping(pingCtx); err != nil {
			logger.Error().Err(err).Str("dependency", name).Msg("Health check failed")
			ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
			return
		}
	}
	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
