package delivery

import (
	"net/http"
	"time"

	"prospectdash/internal/delivery/middleware"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type RouterConfig struct {
	RequestTimeout time.Duration
	// empty allows every origin
	CORSOrigins []string
	Gatherer    prometheus.Gatherer
}

type HTTPRouter struct {
	handlers *HTTPHandlers
	logger   *logger.Logger
	metrics  *metrics.Metrics
	config   RouterConfig
}

func NewHTTPRouter(handlers *HTTPHandlers, logger *logger.Logger, metrics *metrics.Metrics, config RouterConfig) *HTTPRouter {
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}
	return &HTTPRouter{
		handlers: handlers,
		logger:   logger,
		metrics:  metrics,
		config:   config,
	}
}

func (r *HTTPRouter) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.Recovery(r.logger))
	router.Use(middleware.Metrics(r.metrics))
	router.Use(middleware.Timeout(r.config.RequestTimeout))

	config := cors.DefaultConfig()
	if len(r.config.CORSOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = r.config.CORSOrigins
	}
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
	config.AllowHeaders = []string{"Content-Type", "X-Request-ID"}
	config.ExposeHeaders = []string{"X-Request-ID"}

	router.Use(cors.New(config))

	// Health endpoint
	router.GET("/health", r.handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/", r.handlers.GetAPIInfo)
		api.GET("", r.handlers.GetAPIInfo)

		prospects := api.Group("/prospects")
		{
			prospects.GET("", r.handlers.ListProspects)
			prospects.PATCH("/:id/status", r.handlers.UpdateProspectStatus)
		}

		api.GET("/campaigns", r.handlers.ListCampaigns)

		settings := api.Group("/settings")
		{
			settings.GET("/org", r.handlers.GetOrgSettings)
			settings.POST("/org", r.handlers.SaveOrgSettings)
		}

		api.GET("/dashboard", r.handlers.GetDashboard)
	}

	// Prometheus metrics endpoint
	router.GET("/metrics", middleware.PrometheusHandler(r.config.Gatherer))

	return router
}
