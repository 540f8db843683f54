package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
)

// Pinger checks connectivity to a dependency. *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewHealthCheckHandler returns an HTTP handler reporting that the API is up.
// @Summary Check API health status
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse "API is healthy"
// @Router /health-check [get]
func NewHealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.NewHealthResponse(map[string]models.IndicatorStatus{
			"api": {Status: models.IndicatorUp},
		}))
	}
}

// NewDBHealthCheckHandler returns an HTTP handler that pings the database.
// @Summary Check database health status
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse "Database is healthy"
// @Failure 503 {object} models.HealthResponse "Database is unreachable"
// @Router /health-check/db [get]
func NewDBHealthCheckHandler(db Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		indicator := models.IndicatorStatus{Status: models.IndicatorUp}
		status := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			logger.Log.Errorw("database health check failed", "error", err)
			indicator = models.IndicatorStatus{Status: models.IndicatorDown, Message: err.Error()}
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, models.NewHealthResponse(map[string]models.IndicatorStatus{
			"database": indicator,
		}))
	}
}
