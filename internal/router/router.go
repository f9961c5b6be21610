package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smileworks/dentaldesk/internal/middleware"
	"github.com/smileworks/dentaldesk/internal/model"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RequestTimeout    time.Duration
	RateLimitEnabled  bool
	RateLimitRPS      float64
	RateLimitBurst    int
	ActivationEnabled bool
	PrometheusEnabled bool
	MetricsPath       string
}

type Router struct {
	engine      *gin.Engine
	cfg         Config
	gate        middleware.ApprovalChecker
	activationH Handler
	healthH     Handler
	patientH    Handler
	appointH    Handler
	exportH     Handler
	metrics     *routerMetrics
}

type routerMetrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func NewRouter(cfg Config, gate middleware.ApprovalChecker, activationH, healthH, patientH, appointH, exportH Handler) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:      engine,
		cfg:         cfg,
		gate:        gate,
		activationH: activationH,
		healthH:     healthH,
		patientH:    patientH,
		appointH:    appointH,
		exportH:     exportH,
		metrics:     initRouterMetrics(),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metricsMiddleware(),
		middleware.Timeout(cfg.RequestTimeout),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)

	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

// Setup registers all routes. Activation and health stay open; the record
// and appointment surfaces sit behind the activation gate.
func (r *Router) Setup() error {
	if err := model.RegisterValidations(); err != nil {
		return err
	}

	api := r.engine.Group("/api/v1")
	r.activationH.RegisterRoutes(api)
	r.healthH.RegisterRoutes(api)

	gated := api.Group("")
	if r.cfg.ActivationEnabled {
		gated.Use(middleware.ActivationGate(r.gate))
	}
	r.patientH.RegisterRoutes(gated)
	r.appointH.RegisterRoutes(gated)
	r.exportH.RegisterRoutes(gated)

	if r.cfg.PrometheusEnabled {
		path := r.cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(promhttp.HandlerFor(r.metrics.registry, promhttp.HandlerOpts{})))
	}

	return nil
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics() *routerMetrics {
	registry := prometheus.NewRegistry()
	m := &routerMetrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Total number of HTTP error responses",
			},
			[]string{"method", "path", "status"},
		),
	}
	registry.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		labels := []string{c.Request.Method, path, status}

		r.metrics.requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(labels...).Inc()
		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(labels...).Inc()
		}
	}
}
