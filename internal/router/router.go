package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/kabz8/Nextcare/internal/handler"
	"github.com/kabz8/Nextcare/internal/middleware"
	"github.com/kabz8/Nextcare/pkg/validator"
)

type HealthHandler interface {
	RegisterRoutes(gin.IRouter)
}

type RouterConfig struct {
	Mode             string
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	MetricsNamespace string
	RequestTimeout   time.Duration
	MaxBodyBytes     int64
	// CacheMaxAge applies to GET responses of the catalog handlers.
	CacheMaxAge int
}

type Router struct {
	engine  *gin.Engine
	config  RouterConfig
	health  HealthHandler
	catalog handler.Handlers
	api     handler.Handlers
	metrics *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

// NewRouter builds the engine and its middleware chain. Catalog handlers get
// Cache-Control headers, api handlers do not. Route metrics are registered on reg.
func NewRouter(
	config RouterConfig,
	reg prometheus.Registerer,
	health HealthHandler,
	catalog handler.Handlers,
	api handler.Handlers,
) (*Router, error) {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	if err := validator.SetupBinding(); err != nil {
		return nil, err
	}

	engine := gin.New()

	r := &Router{
		engine:  engine,
		config:  config,
		health:  health,
		catalog: catalog,
		api:     api,
		metrics: initRouterMetrics(reg, config.MetricsNamespace),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	r.setup()
	return r, nil
}

func (r *Router) setup() {
	r.health.RegisterRoutes(r.engine)

	api := r.engine.Group("/api")
	api.Use(
		middleware.Timeout(r.config.RequestTimeout),
		middleware.SizeLimit(r.config.MaxBodyBytes),
	)

	r.catalog.RegisterRoutes(api.Group("", middleware.CacheControl(r.config.CacheMaxAge)))
	r.api.RegisterRoutes(api)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(reg prometheus.Registerer, namespace string) *routerMetrics {
	factory := promauto.With(reg)

	return &routerMetrics{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "errors_total",
				Help:      "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		code := c.Writer.Status()
		status := strconv.Itoa(code)

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		switch {
		case code >= 500:
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "server").Inc()
		case code >= 400:
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "client").Inc()
		}
	}
}
