package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"unahotel/internal/infra/config"
	"unahotel/internal/infra/obs"
)

type ReservationHTTP interface {
	QuoteStay(c *gin.Context)
	CreateReservation(c *gin.Context)
	CancelReservation(c *gin.Context)
	GetReservation(c *gin.Context)
}

type CatalogHTTP interface {
	ListRooms(c *gin.Context)
	ListServices(c *gin.Context)
}

type Handlers struct {
	Reservation ReservationHTTP
	Catalog     CatalogHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, metrics *obs.Metrics, gatherer prometheus.Gatherer, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	if metrics != nil {
		router.Use(metrics.Handler())
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api/v1")
	if h.Reservation != nil {
		api.POST("/reservations/quote", h.Reservation.QuoteStay)
		api.POST("/reservations", h.Reservation.CreateReservation)
		api.POST("/reservations/:id/cancel", h.Reservation.CancelReservation)
		api.GET("/reservations/:id", h.Reservation.GetReservation)
	}
	if h.Catalog != nil {
		api.GET("/rooms", h.Catalog.ListRooms)
		api.GET("/services", h.Catalog.ListServices)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
