package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestObserver recibe la duracion de cada request atendida.
type RequestObserver interface {
	ObserveRequest(method, path, status string, d time.Duration)
}

// RouterDeps agrupa lo que necesita NewRouter.
type RouterDeps struct {
	Logger         *zap.Logger
	Users          *UserHandler
	Health         *HealthHandler
	Auth           gin.HandlerFunc
	Observer       RequestObserver
	MetricsHandler http.Handler
}

// NewRouter configura el router de Gin con middlewares y rutas base.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, metricas y recovery.
	r.Use(zapLoggerMiddleware(deps.Logger), gin.Recovery())
	if deps.Observer != nil {
		r.Use(requestMetricsMiddleware(deps.Observer))
	}

	v1 := r.Group("/v1")
	v1.POST("/user", deps.Users.CreateUser)

	self := v1.Group("/user/self", deps.Auth)
	self.GET("", deps.Users.GetSelf)
	self.PUT("", deps.Users.UpdateSelf)

	r.Any("/healthz", deps.Health.Liveness("healthz"))
	r.Any("/cicd", deps.Health.Liveness("cicd"))
	r.GET("/readyz", deps.Health.Readiness("readyz"))

	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// requestMetricsMiddleware usa la ruta registrada, no la URL, para acotar
// la cardinalidad de labels.
func requestMetricsMiddleware(obs RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		obs.ObserveRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
