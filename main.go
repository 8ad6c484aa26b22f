package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	routeApi "realgo/internal/route/api"
	routeApp "realgo/internal/route/app"
	routeRepo "realgo/internal/route/repo"
	"realgo/internal/shared/config"
	"realgo/internal/shared/db"
	"realgo/internal/shared/health"
	"realgo/internal/shared/middleware"
	"realgo/internal/shared/mq"
	"realgo/internal/shared/util"
	shiftApi "realgo/internal/shift/api"
	shiftApp "realgo/internal/shift/app"
	shiftRepo "realgo/internal/shift/repo"
	tripApi "realgo/internal/trip/api"
	tripApp "realgo/internal/trip/app"
	tripRepo "realgo/internal/trip/repo"
	userApi "realgo/internal/user/api"
	userApp "realgo/internal/user/app"
	userRepo "realgo/internal/user/repo"
)

func main() {
	log := util.New()

	log.Info("RealGo", "Starting service initialization...")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Config", "Failed to load configuration", err)
	}
	log.OK("Config", "Configuration loaded successfully")

	ctx := context.Background()

	database, err := db.ConnectToDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Database", "Failed to connect to database", err)
	}
	defer database.Close()
	log.OK("Database", "Connected successfully")

	if err := db.Migrate(ctx, database, cfg.Service.SQLDir); err != nil {
		log.Fatal("Database", "Failed to apply schema", err)
	}
	log.OK("Database", "Schema up to date")

	rmqConn, rmqCh, err := mq.ConnectToRMQ(&cfg.RabbitMQ)
	if err != nil {
		log.Fatal("RabbitMQ", "Failed to connect to RabbitMQ", err)
	}
	defer rmqConn.Close()
	defer rmqCh.Close()
	log.OK("RabbitMQ", "Connected successfully")

	publisher := mq.NewPublisher(rmqCh)
	if err := publisher.DeclareTopology(); err != nil {
		log.Fatal("RabbitMQ", "Failed to declare exchange", err)
	}

	auth := middleware.Auth([]byte(cfg.Auth.JWTSecret))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Handler("realgo", database, rmqConn))

	routeApi.NewHandler(routeApp.NewRouteService(routeRepo.NewRouteRepo(database), log), log).Register(mux)
	userApi.NewHandler(userApp.NewUserService(userRepo.NewUserRepo(database), log), log).Register(mux, auth)
	shiftApi.NewHandler(shiftApp.NewShiftService(shiftRepo.NewShiftRepo(database), log), log).Register(mux, auth)
	tripApi.NewHandler(tripApp.NewTripService(tripRepo.NewTripRepo(database), publisher, log), log).Register(mux, auth)

	server := &http.Server{
		Addr:    ":" + cfg.Service.Port,
		Handler: middleware.RequestID(mux),
	}

	go func() {
		log.OK("HTTP", "realgo running on :"+cfg.Service.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP", "Server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("RealGo", "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP", "Shutdown error", err)
	} else {
		log.OK("HTTP", "Server stopped gracefully")
	}
	log.Info("RealGo", "Shutdown complete")
}
