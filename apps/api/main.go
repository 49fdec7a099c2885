package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	complaintshandler "github.com/aadinathdeepak/pg-management-app/domains/complaints/be/handler"
	complaintsrepo "github.com/aadinathdeepak/pg-management-app/domains/complaints/be/repo"
	complaintsservice "github.com/aadinathdeepak/pg-management-app/domains/complaints/be/service"
	dashboardhandler "github.com/aadinathdeepak/pg-management-app/domains/dashboard/be/handler"
	dashboardrepo "github.com/aadinathdeepak/pg-management-app/domains/dashboard/be/repo"
	dashboardservice "github.com/aadinathdeepak/pg-management-app/domains/dashboard/be/service"
	roomshandler "github.com/aadinathdeepak/pg-management-app/domains/rooms/be/handler"
	roomsrepo "github.com/aadinathdeepak/pg-management-app/domains/rooms/be/repo"
	roomsservice "github.com/aadinathdeepak/pg-management-app/domains/rooms/be/service"
	tenantshandler "github.com/aadinathdeepak/pg-management-app/domains/tenants/be/handler"
	tenantsrepo "github.com/aadinathdeepak/pg-management-app/domains/tenants/be/repo"
	tenantsservice "github.com/aadinathdeepak/pg-management-app/domains/tenants/be/service"
	platformlogging "github.com/aadinathdeepak/pg-management-app/platform/go/logging"
	platformmiddleware "github.com/aadinathdeepak/pg-management-app/platform/go/middleware"
	"github.com/aadinathdeepak/pg-management-app/platform/go/persistence"
)

type config struct {
	Port            string        `env:"PORT" envDefault:"5000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	Bootstrap       bool          `env:"BOOTSTRAP_SCHEMA" envDefault:"false"`
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := platformlogging.NewLogger(platformlogging.Config{
		Component: "api-server",
		Level:     cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: cfg.DatabaseURL})
	if err != nil {
		logger.Fatal("init postgres pool", zap.Error(err))
	}
	defer persistence.ClosePool(pool)

	if cfg.Bootstrap {
		if err := persistence.Bootstrap(ctx, pool); err != nil {
			logger.Fatal("bootstrap schema", zap.Error(err))
		}
		logger.Info("schema bootstrap applied")
	}

	roomStore, err := persistence.NewRoomStore(pool)
	if err != nil {
		logger.Fatal("init room store", zap.Error(err))
	}
	tenantStore, err := persistence.NewTenantStore(pool)
	if err != nil {
		logger.Fatal("init tenant store", zap.Error(err))
	}
	complaintStore, err := persistence.NewComplaintStore(pool)
	if err != nil {
		logger.Fatal("init complaint store", zap.Error(err))
	}

	tenantService := tenantsservice.New(tenantsrepo.NewPostgresRepository(tenantStore))
	tenantHTTPHandler := tenantshandler.New(tenantService, logger)

	roomService := roomsservice.New(roomsrepo.NewPostgresRepository(roomStore))
	roomHTTPHandler := roomshandler.New(roomService, logger)

	complaintService := complaintsservice.New(complaintsrepo.NewPostgresRepository(complaintStore))
	complaintHTTPHandler := complaintshandler.New(complaintService, logger)

	dashboardService := dashboardservice.New(dashboardrepo.NewPostgresRepository(roomStore, tenantStore, complaintStore))
	dashboardHTTPHandler := dashboardhandler.New(dashboardService, logger)

	rootRouter := chi.NewRouter()

	rootRouter.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		chimw.Timeout(cfg.RequestTimeout),
		platformmiddleware.DefaultCORS(),
	)

	rootRouter.Use(platformlogging.RequestLogger(logger))

	rootRouter.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rootRouter.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	apiRouter := chi.NewRouter()
	tenantHTTPHandler.Register(apiRouter)
	roomHTTPHandler.Register(apiRouter)
	complaintHTTPHandler.Register(apiRouter)
	dashboardHTTPHandler.Register(apiRouter)

	rootRouter.Mount("/api", apiRouter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rootRouter,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("starting api server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
