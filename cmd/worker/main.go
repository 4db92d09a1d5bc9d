package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/orderdesk/orderdesk/internal/clients/http/fulfillment"
	catalogremote "github.com/orderdesk/orderdesk/internal/domains/catalog/adapters/remote"
	catalogapp "github.com/orderdesk/orderdesk/internal/domains/catalog/application"
	ordersremote "github.com/orderdesk/orderdesk/internal/domains/orders/adapters/remote"
	orderworkflows "github.com/orderdesk/orderdesk/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/orderdesk/orderdesk/internal/platform/observability"
	orderactivities "github.com/orderdesk/orderdesk/internal/platform/temporal/activities/orders"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	const serviceName = "orderdesk-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	remote, err := buildFulfillmentClient()
	if err != nil {
		logger.Error("failed to build fulfillment client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	ordersGateway := ordersremote.NewGateway(remote)
	catalogService := catalogapp.NewService(catalogremote.NewGateway(remote), nil, catalogapp.WithLogger(logger))
	activities := orderactivities.NewActivities(ordersGateway, catalogService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderCreationWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.CreateRemoteOrder, activity.RegisterOptions{Name: orderactivities.CreateRemoteOrderActivityName})
	w.RegisterActivityWithOptions(activities.DecrementStock, activity.RegisterOptions{Name: orderactivities.DecrementStockActivityName})
	w.RegisterActivityWithOptions(activities.Restock, activity.RegisterOptions{Name: orderactivities.RestockActivityName})
	w.RegisterActivityWithOptions(activities.CompensateDelete, activity.RegisterOptions{Name: orderactivities.CompensateDeleteActivityName})

	logger.Info("worker listening",
		slog.String("taskQueue", orderworkflows.OrderCreationTaskQueue),
		slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildFulfillmentClient() (*fulfillment.Client, error) {
	baseURL := envOrDefault("ORDERDESK_REMOTE_URL", "http://localhost:9000")
	opts := []fulfillment.Option{}
	if token := strings.TrimSpace(os.Getenv("ORDERDESK_REMOTE_TOKEN")); token != "" {
		opts = append(opts, fulfillment.WithToken(token))
	}
	return fulfillment.NewClient(baseURL, opts...)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
