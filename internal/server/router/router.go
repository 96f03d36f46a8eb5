package router

import (
	"html/template"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/labshare/internal/metrics"
	"github.com/mamadbah2/labshare/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Materials *handlers.MaterialHandler
	Facts     *handlers.FactsHandler
	Health    *handlers.HealthHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, tmpl *template.Template, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(metricsMiddleware())

	r.SetHTMLTemplate(tmpl)

	r.GET("/", h.Materials.Index)
	r.POST("/search", h.Materials.Search)
	r.GET("/add", h.Materials.AddForm)
	r.POST("/add", h.Materials.Add)
	r.GET("/reserve", h.Materials.Reserve)
	r.GET("/remove", h.Materials.Remove)
	r.POST("/remove", h.Materials.RemoveByForm)
	r.GET("/cat", h.Facts.Cat)

	r.GET("/healthz", h.Health.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDHeader)))
	}
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
