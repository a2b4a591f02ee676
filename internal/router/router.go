package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agendaly/booking-api/internal/middleware"
	"github.com/agendaly/booking-api/pkg/auth"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// PublicHandler additionally exposes unauthenticated store-scoped routes.
type PublicHandler interface {
	RegisterPublicRoutes(*gin.RouterGroup)
}

type Router struct {
	engine        *gin.Engine
	jwt           auth.JWTService
	healthH       Handler
	authH         Handler
	storeH        Handler
	staffH        Handler
	catalogH      Handler
	scheduleH     Handler
	bookingH      Handler
	availabilityH PublicHandler
	publicH       []PublicHandler
	bookingLimit  gin.HandlerFunc
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	TimeoutSeconds int
	CORS           middleware.CORSConfig
	MetricsPrefix  string
	// BookingRateLimit, when non-nil, guards the public booking route
	// with a shared limiter in addition to the per-process one.
	BookingRateLimit gin.HandlerFunc
}

type Handlers struct {
	Health       Handler
	Auth         Handler
	Store        Handler
	Staff        Handler
	Catalog      Handler
	Schedule     Handler
	Booking      Handler
	Availability PublicHandler
	Public       []PublicHandler
}

func NewRouter(jwt auth.JWTService, h Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	if config.MetricsPrefix == "" {
		config.MetricsPrefix = "booking_api"
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = 30
	}

	metrics := initRouterMetrics(config.MetricsPrefix)

	r := &Router{
		engine:        engine,
		jwt:           jwt,
		healthH:       h.Health,
		authH:         h.Auth,
		storeH:        h.Store,
		staffH:        h.Staff,
		catalogH:      h.Catalog,
		scheduleH:     h.Schedule,
		bookingH:      h.Booking,
		availabilityH: h.Availability,
		publicH:       h.Public,
		bookingLimit:  config.BookingRateLimit,
		metrics:       metrics,
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{
			Duration: time.Duration(config.TimeoutSeconds) * time.Second,
		}),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORS))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   config.RateLimitRPS,
		Burst: config.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)
	r.authH.RegisterRoutes(api)

	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(r.jwt))
	r.setupProtectedRoutes(protected)
}

// setupPublicRoutes wires the customer-facing, store-slug-scoped
// surface. Availability and booking answers must never be cached.
func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	store := rg.Group("/public/stores/:slug")
	store.Use(middleware.NoCache())

	r.availabilityH.RegisterPublicRoutes(store)
	for _, h := range r.publicH {
		h.RegisterPublicRoutes(store)
	}

	booking := store.Group("")
	if r.bookingLimit != nil {
		booking.Use(r.bookingLimit)
	}
	if h, ok := r.bookingH.(PublicHandler); ok {
		h.RegisterPublicRoutes(booking)
	}
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.storeH.RegisterRoutes(rg)
	r.staffH.RegisterRoutes(rg)
	r.catalogH.RegisterRoutes(rg)
	r.scheduleH.RegisterRoutes(rg)
	r.bookingH.RegisterRoutes(rg)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
	prometheus.MustRegister(m.requestDuration, m.requestTotal, m.errorTotal)
	return m
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
