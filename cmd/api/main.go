package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ferrari4891/selecttravel-api/internal/config"
	authhandler "github.com/Ferrari4891/selecttravel-api/internal/handler/auth"
	businesshandler "github.com/Ferrari4891/selecttravel-api/internal/handler/business"
	dispatchhandler "github.com/Ferrari4891/selecttravel-api/internal/handler/dispatch"
	schedulehandler "github.com/Ferrari4891/selecttravel-api/internal/handler/schedule"
	voucherhandler "github.com/Ferrari4891/selecttravel-api/internal/handler/voucher"
	"github.com/Ferrari4891/selecttravel-api/internal/middleware"
	"github.com/Ferrari4891/selecttravel-api/internal/repository/postgres"
	"github.com/Ferrari4891/selecttravel-api/internal/router"
	"github.com/Ferrari4891/selecttravel-api/internal/service/auth"
	"github.com/Ferrari4891/selecttravel-api/internal/service/business"
	"github.com/Ferrari4891/selecttravel-api/internal/service/schedule"
	"github.com/Ferrari4891/selecttravel-api/internal/service/voucher"
	pkgauth "github.com/Ferrari4891/selecttravel-api/pkg/auth"
	"github.com/Ferrari4891/selecttravel-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	businessRepo := postgres.NewBusinessRepository(db)
	voucherRepo := postgres.NewVoucherRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	resultRepo := postgres.NewDispatchResultRepository(db)
	userRepo := postgres.NewUserRepository(db)

	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := auth.NewService(userRepo, jwtSvc, security.NewBcryptHasher(0))
	businessSvc := business.NewService(businessRepo)
	voucherSvc := voucher.NewService(voucherRepo)
	scheduleSvc := schedule.NewService(scheduleRepo, businessRepo, resultRepo)

	dispatcher := newDispatcher(cfg, scheduleRepo, resultRepo, voucherRepo, businessRepo)

	authMw := middleware.NewAuthMiddleware(authSvc)

	engine := router.New(cfg, db, router.Handlers{
		Auth:     authhandler.NewHandler(authSvc),
		Business: businesshandler.NewHandler(businessSvc),
		Voucher:  voucherhandler.NewHandler(voucherSvc),
		Schedule: schedulehandler.NewHandler(scheduleSvc),
		Dispatch: dispatchhandler.NewHandler(dispatcher),
	}, authMw)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
