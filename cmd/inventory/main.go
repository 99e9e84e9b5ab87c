package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/cart-store/internal/catalog"
	"github.com/fjod/cart-store/internal/config"
	invgrpc "github.com/fjod/cart-store/internal/grpc"
	h "github.com/fjod/cart-store/internal/http"
	"github.com/fjod/cart-store/internal/logger"
	"github.com/fjod/cart-store/internal/telemetry"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/reflection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logger.New(cfg.LogLevel, os.Stdout)

	tp, err := telemetry.InitTracerProvider(context.Background(), "inventory", cfg.OTLPEndpoint)
	if err != nil {
		log.WithError(err).Fatal("failed to init tracing")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.WithError(err).Error("error shutting down tracer provider")
		}
	}()

	repo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to open catalog")
	}
	defer repo.Close()

	if err := repo.RunMigrations(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	log.Info("migrations completed successfully")

	// gRPC
	grpcServer := invgrpc.NewServer(repo)

	// Enable reflection for grpcurl/grpcui
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.WithError(err).Fatal("failed to listen")
	}

	go func() {
		log.Infof("inventory grpc listening on :%s", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			log.WithError(err).Fatal("failed to serve grpc")
		}
	}()

	// HTTP
	srv := &http.Server{
		Addr: ":" + cfg.InventoryPort,
		Handler: h.NewInventoryRouter(
			h.RouterConfig{Logger: log, RequestTimeout: cfg.RequestTimeout},
			h.NewInventoryHandler(repo, cfg.RequestTimeout),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("inventory http listening on :%s", cfg.InventoryPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down inventory...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	grpcServer.GracefulStop()
	log.Info("inventory stopped")
}
