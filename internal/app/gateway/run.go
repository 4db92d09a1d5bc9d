// Package gateway boots the dashboard daemon: the HTTP surface, the remote
// fulfillment client behind each bounded context, the durable notification
// store, and the background low-stock sweep.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/orderdesk/orderdesk/internal/clients/http/fulfillment"
	catalogcache "github.com/orderdesk/orderdesk/internal/domains/catalog/adapters/cache"
	catalogremote "github.com/orderdesk/orderdesk/internal/domains/catalog/adapters/remote"
	catalogapp "github.com/orderdesk/orderdesk/internal/domains/catalog/application"
	catalogports "github.com/orderdesk/orderdesk/internal/domains/catalog/ports"
	notifalert "github.com/orderdesk/orderdesk/internal/domains/notifications/adapters/alert"
	notiffile "github.com/orderdesk/orderdesk/internal/domains/notifications/adapters/file"
	notifmemory "github.com/orderdesk/orderdesk/internal/domains/notifications/adapters/memory"
	notifsqlite "github.com/orderdesk/orderdesk/internal/domains/notifications/adapters/persistence/sqlite"
	notifapp "github.com/orderdesk/orderdesk/internal/domains/notifications/application"
	notifports "github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
	ordersobs "github.com/orderdesk/orderdesk/internal/domains/orders/adapters/observability"
	ordersremote "github.com/orderdesk/orderdesk/internal/domains/orders/adapters/remote"
	ordersworkflows "github.com/orderdesk/orderdesk/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/orderdesk/orderdesk/internal/domains/orders/application"
	ordersports "github.com/orderdesk/orderdesk/internal/domains/orders/ports"
	staffremote "github.com/orderdesk/orderdesk/internal/domains/staff/adapters/remote"
	staffapp "github.com/orderdesk/orderdesk/internal/domains/staff/application"
	platformobservability "github.com/orderdesk/orderdesk/internal/platform/observability"
)

const serviceName = "orderdesk-gateway"

// Run boots the dashboard daemon and blocks until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, closeStore := buildNotificationStore(cfg, logger)
	defer closeStore()

	dispatcher := notifapp.NewDispatcher(ctx, store, buildAlertSurface(cfg, logger),
		notifapp.WithLogger(logger))

	clientOpts := []fulfillment.Option{}
	if cfg.RemoteToken != "" {
		clientOpts = append(clientOpts, fulfillment.WithToken(cfg.RemoteToken))
	}
	remote, err := fulfillment.NewClient(cfg.RemoteBaseURL, clientOpts...)
	if err != nil {
		return fmt.Errorf("failed to build fulfillment client: %w", err)
	}

	catalogGateway, closeCache := buildCatalogGateway(ctx, cfg, remote, logger)
	defer closeCache()
	catalogService := catalogapp.NewService(catalogGateway, dispatcher, catalogapp.WithLogger(logger))

	ordersGateway := ordersremote.NewGateway(remote)
	creation, closeCreation := buildCreationOrchestrator(cfg, ordersGateway, catalogService, instruments)
	defer closeCreation()
	ordersCore := ordersapp.NewService(ordersGateway, creation, dispatcher, ordersapp.WithLogger(logger))
	ordersService := ordersobs.New(
		ordersCore,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	staffService := staffapp.NewService(staffremote.NewGateway(remote), dispatcher, staffapp.WithLogger(logger))

	router := NewRouter(serviceName, Handlers{
		Orders:        NewOrderHandlers(ordersService, cfg.Actor),
		Catalog:       NewCatalogHandlers(catalogService),
		Staff:         NewStaffHandlers(staffService),
		Notifications: NewNotificationHandlers(dispatcher),
	})

	if cfg.SweepInterval > 0 {
		go runSweepLoop(ctx, catalogService, cfg.SweepInterval, logger)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard gateway listening",
			slog.String("addr", srv.Addr),
			slog.String("actor", cfg.Actor.ID),
			slog.String("role", string(cfg.Actor.Role)))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
			return err
		}
		logger.Info("dashboard gateway stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("dashboard gateway exited", slog.String("error", err.Error()))
		return err
	}
}

// buildNotificationStore selects the durable backend, falling back to memory
// when the configured one cannot start. Losing durability beats losing the
// whole daemon.
func buildNotificationStore(cfg Config, logger *slog.Logger) (notifports.Store, func()) {
	if cfg.StoreBackend == StoreMemory {
		logger.Info("notification store configured in memory, records will not survive restarts")
		return notifmemory.NewStore(), func() {}
	}
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		logger.Warn("failed to create state dir, falling back to in-memory notifications",
			slog.String("dir", cfg.StateDir), slog.String("error", err.Error()))
		return notifmemory.NewStore(), func() {}
	}

	switch cfg.StoreBackend {
	case StoreSQLite:
		path := filepath.Join(cfg.StateDir, "notifications.db")
		store, err := notifsqlite.Open(path)
		if err != nil {
			logger.Warn("failed to open sqlite notification store, falling back to memory",
				slog.String("path", path), slog.String("error", err.Error()))
			return notifmemory.NewStore(), func() {}
		}
		logger.Info("notification store configured with sqlite", slog.String("path", path))
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close sqlite notification store", slog.String("error", err.Error()))
			}
		}
	default:
		path := filepath.Join(cfg.StateDir, "notifications.json")
		store, err := notiffile.NewStore(path)
		if err != nil {
			logger.Warn("failed to open notification file store, falling back to memory",
				slog.String("path", path), slog.String("error", err.Error()))
			return notifmemory.NewStore(), func() {}
		}
		if err := store.Load(); err != nil {
			logger.Warn("failed to load stored notifications, starting empty",
				slog.String("path", path), slog.String("error", err.Error()))
		}
		logger.Info("notification store configured with file backend", slog.String("path", path))
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close notification store", slog.String("error", err.Error()))
			}
		}
	}
}

func buildAlertSurface(cfg Config, logger *slog.Logger) notifports.AlertSurface {
	if cfg.DesktopAlertsDisabled {
		logger.Info("desktop alerts disabled, notifications stay in-app only")
		return notifports.NoopAlertSurface{}
	}
	return notifalert.NewDesktopSurface("OrderDesk")
}

// buildCatalogGateway wraps the remote gateway with the redis read-through
// cache when an address is configured and reachable.
func buildCatalogGateway(ctx context.Context, cfg Config, remote *fulfillment.Client, logger *slog.Logger) (catalogports.Gateway, func()) {
	gateway := catalogremote.NewGateway(remote)
	if cfg.RedisAddr == "" {
		return gateway, func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, catalog cache disabled",
			slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		_ = rdb.Close()
		return gateway, func() {}
	}
	logger.Info("catalog cache configured with redis", slog.String("addr", cfg.RedisAddr))
	cached := catalogcache.NewGateway(gateway, rdb, catalogcache.WithLogger(logger))
	return cached, func() { _ = rdb.Close() }
}

// buildCreationOrchestrator prefers the durable Temporal sequence when a
// cluster is configured, otherwise the inline compensating sequence.
func buildCreationOrchestrator(cfg Config, gateway ordersports.Gateway, stock ordersports.StockAdjuster, instruments *platformobservability.Instruments) (ordersports.CreationOrchestrator, func()) {
	logger := instruments.Logger
	inline := func() (ordersports.CreationOrchestrator, func()) {
		return ordersworkflows.NewInlineOrderCreation(gateway, stock, ordersworkflows.WithLogger(logger)), func() {}
	}
	if cfg.TemporalDisabled {
		return inline()
	}
	temporalClient, err := connectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal unavailable, running order creation inline", slog.String("error", err.Error()))
		return inline()
	}
	logger.Info("Temporal order creation enabled", slog.String("namespace", cfg.TemporalNamespace))
	return ordersworkflows.NewTemporalOrderCreation(temporalClient), temporalClient.Close
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-client")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

// runSweepLoop drives the periodic low-stock detection. The sweep belongs to
// this session; no second process touches the notification store.
func runSweepLoop(ctx context.Context, catalog catalogports.Service, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := catalog.SweepLowStock(ctx)
			if err != nil {
				logger.Warn("low-stock sweep failed", slog.String("error", err.Error()))
				continue
			}
			if report.Notified {
				logger.Info("low-stock sweep notified",
					slog.Int("scanned", report.Scanned),
					slog.Int("low", len(report.Low)))
			}
		}
	}
}
