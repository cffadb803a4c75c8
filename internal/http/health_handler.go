package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webapp/internal/metrics"
)

const readinessTimeout = 2 * time.Second

// Pinger es la parte del pool que necesita el probe de readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler sirve liveness y readiness, ambos sin autenticacion.
type HealthHandler struct {
	logger   *zap.Logger
	recorder metrics.Recorder
	db       Pinger
}

// NewHealthHandler crea el handler; db puede ser nil si no hay readiness.
func NewHealthHandler(logger *zap.Logger, recorder metrics.Recorder, db Pinger) *HealthHandler {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &HealthHandler{logger: logger, recorder: recorder, db: db}
}

// Liveness responde 200 mientras el proceso este vivo. No toca la base.
func (h *HealthHandler) Liveness(name string) gin.HandlerFunc {
	return h.measured(name, func(context.Context) error { return nil })
}

// Readiness hace ping a la base de datos.
func (h *HealthHandler) Readiness(name string) gin.HandlerFunc {
	return h.measured(name, func(ctx context.Context) error {
		if h.db == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
		defer cancel()
		return h.db.Ping(ctx)
	})
}

// measured emite un contador y una duracion por llamada, falle o no el check.
func (h *HealthHandler) measured(name string, check func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.recorder.IncCounter(name)
		start := time.Now()

		err := check(c.Request.Context())

		h.recorder.ObserveDuration(name, time.Since(start))

		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		if err != nil {
			h.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
