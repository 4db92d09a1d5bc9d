package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/ports"
	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

const tracerName = "github.com/orderdesk/orderdesk/internal/domains/orders/adapters/observability/service"

// Service decorates the orders application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// Refresh replaces the session list from the remote service.
func (s *Service) Refresh(ctx context.Context, actor identity.Actor, filter ports.Filter) ([]domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Refresh", actorAttrs(actor)...)
	defer span.End()

	s.logInfo(ctx, "refreshing orders", slog.String("actor.id", actor.ID))
	result, err := s.inner.Refresh(ctx, actor, filter)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to refresh orders", slog.String("actor.id", actor.ID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	s.logInfo(ctx, "orders refreshed", slog.Int("count", len(result)))
	return result, nil
}

// List returns the actor-visible session orders.
func (s *Service) List(ctx context.Context, actor identity.Actor) ([]domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.List", actorAttrs(actor)...)
	defer span.End()

	result, err := s.inner.List(ctx, actor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("actor.id", actor.ID))
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result)))
	return result, nil
}

// Get loads a single visible order.
func (s *Service) Get(ctx context.Context, actor identity.Actor, id string) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Get", append(actorAttrs(actor), attribute.String("order.id", id))...)
	defer span.End()

	result, err := s.inner.Get(ctx, actor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to get order", slog.String("order.id", id))
	}
	return result, nil
}

// Create runs the order-creation sequence.
func (s *Service) Create(ctx context.Context, actor identity.Actor, draft ports.Draft) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Create", append(actorAttrs(actor), attribute.Int("order.items", len(draft.Items)))...)
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("actor.id", actor.ID), slog.String("customer", draft.CustomerName))
	result, err := s.inner.Create(ctx, actor, draft)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("customer", draft.CustomerName))
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "order created", slog.String("order.id", result.ID), slog.String("order.number", result.Number))
	return result, nil
}

// Transition applies a lifecycle patch.
func (s *Service) Transition(ctx context.Context, actor identity.Actor, id string, patch domain.Patch) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.Transition", append(actorAttrs(actor), attribute.String("order.id", id))...)
	defer span.End()

	s.logInfo(ctx, "transitioning order", slog.String("order.id", id), slog.String("actor.id", actor.ID))
	result, err := s.inner.Transition(ctx, actor, id, patch)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to transition order", slog.String("order.id", id))
	}
	s.metrics.recordTransitioned(ctx, result.Status)
	s.logInfo(ctx, "order transitioned", slog.String("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

// MarkPaid flags the order as paid.
func (s *Service) MarkPaid(ctx context.Context, actor identity.Actor, id string) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.MarkPaid", append(actorAttrs(actor), attribute.String("order.id", id))...)
	defer span.End()

	s.logInfo(ctx, "marking order paid", slog.String("order.id", id), slog.String("actor.id", actor.ID))
	result, err := s.inner.MarkPaid(ctx, actor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark order paid", slog.String("order.id", id))
	}
	s.metrics.recordPaid(ctx)
	s.logInfo(ctx, "order marked paid", slog.String("order.id", result.ID))
	return result, nil
}

// Delete removes the order.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	ctx, span := s.startSpan(ctx, "Service.Delete", append(actorAttrs(actor), attribute.String("order.id", id))...)
	defer span.End()

	s.logInfo(ctx, "deleting order", slog.String("order.id", id), slog.String("actor.id", actor.ID))
	if err := s.inner.Delete(ctx, actor, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete order", slog.String("order.id", id))
	}
	s.metrics.recordDeleted(ctx)
	s.logInfo(ctx, "order deleted", slog.String("order.id", id))
	return nil
}

// Stats aggregates the visible orders.
func (s *Service) Stats(ctx context.Context, actor identity.Actor) (ports.Stats, error) {
	ctx, span := s.startSpan(ctx, "Service.Stats", actorAttrs(actor)...)
	defer span.End()

	result, err := s.inner.Stats(ctx, actor)
	if err != nil {
		return ports.Stats{}, s.handleError(ctx, span, err, "failed to compute order stats", slog.String("actor.id", actor.ID))
	}
	span.SetAttributes(attribute.Int("order.result.count", result.Count))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

func actorAttrs(actor identity.Actor) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("actor.id", actor.ID),
		attribute.String("actor.role", string(actor.Role)),
	}
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersCreated      metric.Int64Counter
	ordersTransitioned metric.Int64Counter
	ordersPaid         metric.Int64Counter
	ordersDeleted      metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	ordersTransitioned, _ := m.Int64Counter("orders.service.transitioned", metric.WithDescription("Number of order lifecycle transitions"))
	ordersPaid, _ := m.Int64Counter("orders.service.paid", metric.WithDescription("Number of orders marked paid"))
	ordersDeleted, _ := m.Int64Counter("orders.service.deleted", metric.WithDescription("Number of orders deleted"))
	return serviceMetrics{
		ordersCreated:      ordersCreated,
		ordersTransitioned: ordersTransitioned,
		ordersPaid:         ordersPaid,
		ordersDeleted:      ordersDeleted,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	addCounter(ctx, m.ordersCreated, 1)
}

func (m serviceMetrics) recordTransitioned(ctx context.Context, status domain.Status) {
	addCounter(ctx, m.ordersTransitioned, 1, attribute.String("order.status", string(status)))
}

func (m serviceMetrics) recordPaid(ctx context.Context) {
	addCounter(ctx, m.ordersPaid, 1)
}

func (m serviceMetrics) recordDeleted(ctx context.Context) {
	addCounter(ctx, m.ordersDeleted, 1)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}
