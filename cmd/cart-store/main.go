package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/cart-store/internal/catalog"
	"github.com/fjod/cart-store/internal/config"
	invgrpc "github.com/fjod/cart-store/internal/grpc"
	h "github.com/fjod/cart-store/internal/http"
	"github.com/fjod/cart-store/internal/inventory"
	"github.com/fjod/cart-store/internal/logger"
	"github.com/fjod/cart-store/internal/notify"
	"github.com/fjod/cart-store/internal/service"
	"github.com/fjod/cart-store/internal/storage"
	"github.com/fjod/cart-store/internal/telemetry"
	"github.com/fjod/cart-store/internal/view"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logger.New(cfg.LogLevel, os.Stdout)
	ctx := context.Background()

	tp, err := telemetry.InitTracerProvider(ctx, "cart-store", cfg.OTLPEndpoint)
	if err != nil {
		log.WithError(err).Fatal("failed to init tracing")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.WithError(err).Error("error shutting down tracer provider")
		}
	}()

	// closers run in reverse order on shutdown
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	kv, closeKV, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}
	closers = append(closers, closeKV)

	inv, closeInv, err := openInventory(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open inventory")
	}
	closers = append(closers, closeInv)

	store, err := service.NewCartStore(ctx, inv, kv, service.Options{
		Key:         cfg.StorageKey,
		StrictStock: cfg.StrictStock,
		Logger:      log,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to load cart")
	}
	log.WithField("lines", len(store.Cart())).Info("cart hydrated")

	formatter, err := view.NewFormatter(cfg.Currency)
	if err != nil {
		log.WithError(err).Fatal("invalid currency")
	}
	ctrl := view.NewController(store, notify.NewLogNotifier(log), service.MessagesFor(cfg.Locale), formatter)

	router := h.NewCartRouter(
		h.RouterConfig{Logger: log, RequestTimeout: cfg.RequestTimeout},
		h.NewCartHandler(ctrl, cfg.RequestTimeout),
		h.NewPageHandler(ctrl, cfg.RequestTimeout, log),
		h.NewInventoryHandler(inv, cfg.RequestTimeout),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("cart store listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	log.Info("server exited")
}

func openStorage(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (storage.KV, func(), error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client, err := storage.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("addr", cfg.RedisAddr).Info("connected to redis")
		return storage.NewRedisStore(client, cfg.SnapshotTTL), func() { _ = client.Close() }, nil

	case config.StorageMongo:
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		store := storage.NewMongoStore(db)
		if err := store.CreateIndexes(ctx, cfg.SnapshotTTL); err != nil {
			_ = db.Client().Disconnect(ctx)
			return nil, nil, err
		}
		log.WithField("database", cfg.MongoDatabase).Info("connected to mongodb")
		return store, func() { _ = db.Client().Disconnect(context.Background()) }, nil

	default:
		log.Warn("using in-memory storage, the cart is lost on restart")
		return storage.NewMemoryStore(), func() {}, nil
	}
}

func openInventory(cfg config.Config, log logrus.FieldLogger) (inventory.Inventory, func(), error) {
	switch cfg.Inventory {
	case config.InventoryGRPC:
		conn, err := invgrpc.Dial(cfg.InventoryAddr)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("addr", cfg.InventoryAddr).Info("using grpc inventory")
		return invgrpc.NewClient(conn, cfg.InventoryTimeout), func() { _ = conn.Close() }, nil

	case config.InventoryMemory:
		repo, err := catalog.NewRepository(":memory:")
		if err != nil {
			return nil, nil, err
		}
		if err := repo.RunMigrations(); err != nil {
			_ = repo.Close()
			return nil, nil, err
		}
		log.Info("using in-process seeded catalog")
		return repo, func() { _ = repo.Close() }, nil

	default:
		client, err := inventory.NewHTTPClient(cfg.InventoryURL, cfg.InventoryTimeout)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("url", cfg.InventoryURL).Info("using http inventory")
		return client, func() {}, nil
	}
}
