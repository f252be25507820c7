package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"checkinly-backend/config"
	"checkinly-backend/events"
	"checkinly-backend/jobs"
	"checkinly-backend/routes"
	"checkinly-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		utils.Logger.Info("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		utils.Logger.Fatalf("❌ config: %v", err)
	}
	utils.InitLogger(cfg.AppName, cfg.LogLevel)
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		utils.Logger.Fatalf("❌ Database connect failed: %v", err)
	}
	utils.Logger.Infof("✅ Database connected (%s) and migrated", cfg.DB.Driver)

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
		utils.Logger.Info("✅ Redis connected; search cache and auth rate limit enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Events go through RabbitMQ when configured, otherwise straight to the handler.
	var pub events.Publisher
	inproc := events.NewInProcessPublisher(nil)
	if cfg.RabbitURL != "" {
		pub = events.NewRabbitPublisher(cfg.RabbitURL, cfg.EventsQueue)
	} else {
		pub = inproc
	}
	defer pub.Close()

	svcs := routes.NewServices(cfg, db, rdb, pub)
	if cfg.RabbitURL != "" {
		consumer := &events.Consumer{
			URL:      cfg.RabbitURL,
			Queue:    cfg.EventsQueue,
			Prefetch: 16,
			Handler:  svcs.Notifications,
		}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				utils.Logger.WithError(err).Error("events consumer stopped")
			}
		}()
		utils.Logger.Infof("✅ RabbitMQ events on queue %s", cfg.EventsQueue)
	} else {
		inproc.SetHandler(svcs.Notifications)
	}

	sweeper, err := jobs.StartLockSweep(cfg.LockSweepSchedule, svcs.LockMonitor)
	if err != nil {
		utils.Logger.Fatalf("❌ %v", err)
	}

	router := routes.SetupRouter(cfg, rdb, svcs.Auth, svcs.Hotel, routes.NewControllers(svcs))

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Logger.Infof("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	<-ctx.Done()
	utils.Logger.Info("⚠️  Shutdown signal received, shutting down server...")

	<-sweeper.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Logger.Errorf("❌ Server forced to shutdown: %v", err)
	}

	utils.Logger.Info("✅ Server stopped gracefully")
}
