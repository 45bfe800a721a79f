package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ferrari4891/selecttravel-api/internal/config"
	"github.com/Ferrari4891/selecttravel-api/internal/handler"
	authhandler "github.com/Ferrari4891/selecttravel-api/internal/handler/auth"
	businesshandler "github.com/Ferrari4891/selecttravel-api/internal/handler/business"
	dispatchhandler "github.com/Ferrari4891/selecttravel-api/internal/handler/dispatch"
	schedulehandler "github.com/Ferrari4891/selecttravel-api/internal/handler/schedule"
	voucherhandler "github.com/Ferrari4891/selecttravel-api/internal/handler/voucher"
	"github.com/Ferrari4891/selecttravel-api/internal/middleware"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Auth     *authhandler.Handler
	Business *businesshandler.Handler
	Voucher  *voucherhandler.Handler
	Schedule *schedulehandler.Handler
	Dispatch *dispatchhandler.Handler
}

func New(cfg *config.Config, db *sqlx.DB, handlers Handlers, authMw *middleware.AuthMiddleware) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.NewRateLimiter(middleware.RateLimiterConfig{}).RateLimit())
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	handler.NewHealthHandler(db).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		handlers.Auth.RegisterRoutes(v1)
		handlers.Business.RegisterRoutes(v1, authMw)
		handlers.Voucher.RegisterRoutes(v1, authMw)
		handlers.Schedule.RegisterRoutes(v1, authMw)
		handlers.Dispatch.RegisterRoutes(v1, authMw)
	}

	return r
}
