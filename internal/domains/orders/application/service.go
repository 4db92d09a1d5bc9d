package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	notifdomain "github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
	notifports "github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/ports"
	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

// Service is the workflow orchestrator for the orders bounded context. It
// owns the session's in-memory order list, a read-through/write-through cache
// of the remote service: mutations go remote first, and only a confirmed
// remote result updates the local view. Exactly one user-facing notification
// is emitted per successful mutation.
type Service struct {
	gateway  ports.Gateway
	creation ports.CreationOrchestrator
	notifier notifports.Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.RWMutex
	session map[string]domain.Order
	loaded  bool
}

// Option configures the service.
type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the orders service with its dependencies.
func NewService(gateway ports.Gateway, creation ports.CreationOrchestrator, notifier notifports.Notifier, opts ...Option) *Service {
	s := &Service{
		gateway:  gateway,
		creation: creation,
		notifier: notifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		session:  map[string]domain.Order{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Refresh replaces the session list with the remote state and returns the
// actor-visible slice. Re-fetching is the only reconciliation mechanism
// between sessions; there is no local merge.
func (s *Service) Refresh(ctx context.Context, actor identity.Actor, filter ports.Filter) ([]domain.Order, error) {
	orders, err := s.gateway.ListOrders(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	s.mu.Lock()
	s.session = make(map[string]domain.Order, len(orders))
	for _, order := range orders {
		s.session[order.ID] = order
	}
	s.loaded = true
	s.mu.Unlock()
	return visibleSlice(actor, orders), nil
}

// List returns the actor-visible orders from the session cache, fetching the
// remote list on first use.
func (s *Service) List(ctx context.Context, actor identity.Actor) ([]domain.Order, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		return s.Refresh(ctx, actor, ports.Filter{})
	}
	s.mu.RLock()
	orders := make([]domain.Order, 0, len(s.session))
	for _, order := range s.session {
		orders = append(orders, order)
	}
	s.mu.RUnlock()
	return visibleSlice(actor, orders), nil
}

// Get returns one visible order. An order the actor may not see is reported
// as not found, never as forbidden.
func (s *Service) Get(ctx context.Context, actor identity.Actor, id string) (*domain.Order, error) {
	order, err := s.cachedOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !domain.Visible(actor, *order) {
		return nil, ports.ErrNotFound
	}
	return order, nil
}

// Create recomputes the total, runs the creation sequence (remote order plus
// stock decrements, with compensation on partial failure), then caches the
// authoritative record and emits one notification.
func (s *Service) Create(ctx context.Context, actor identity.Actor, draft ports.Draft) (*domain.Order, error) {
	order, err := domain.NewOrder(draft.CustomerName, draft.PaymentCondition, draft.Priority, draft.Items)
	if err != nil {
		return nil, mapError(err)
	}
	order.Number = draft.Number
	order.CreatedBy = actor.ID
	if draft.AssignedTo != "" {
		if !domain.CanAssign(actor) {
			return nil, ErrForbidden
		}
		order.AssignedTo = draft.AssignedTo
	}

	created, err := s.creation.CreateOrder(ctx, *order)
	if err != nil {
		return nil, mapError(err)
	}

	s.storeInSession(created)
	s.publish(ctx, domain.OrderCreated{
		BaseEvent:    domain.BaseEvent{Timestamp: s.now()},
		OrderID:      created.ID,
		Number:       created.Number,
		CustomerName: created.CustomerName,
		Total:        created.Total,
	})
	result := created
	return &result, nil
}

// Transition validates the patch, authorizes the edit, issues the remote
// mutation, and reconciles the echo into the session. On remote failure the
// session is untouched and no notification is emitted.
func (s *Service) Transition(ctx context.Context, actor identity.Actor, id string, patch domain.Patch) (*domain.Order, error) {
	if err := patch.Validate(); err != nil {
		return nil, mapError(err)
	}
	current, err := s.authorizeEdit(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if patch.AssignedTo != nil && !domain.CanAssign(actor) {
		return nil, ErrForbidden
	}

	remote, err := s.gateway.UpdateOrder(ctx, id, patch)
	if err != nil {
		return nil, mapError(err)
	}

	// The remote echo is authoritative; the local transition result only
	// backfills derived timestamps the remote might not echo.
	local := *current
	if err := local.Apply(patch, s.now()); err != nil {
		return nil, mapError(err)
	}
	merged := domain.Reconcile(remote, local)
	s.storeInSession(merged)

	s.publish(ctx, domain.OrderTransitioned{
		BaseEvent: domain.BaseEvent{Timestamp: s.now()},
		OrderID:   merged.ID,
		Number:    merged.Number,
		Summary:   summarizeTransition(merged, patch),
		Status:    merged.Status,
	})
	result := merged
	return &result, nil
}

// MarkPaid flags the order as paid remotely. Re-marking an already-paid order
// succeeds without moving the original payment timestamp.
func (s *Service) MarkPaid(ctx context.Context, actor identity.Actor, id string) (*domain.Order, error) {
	current, err := s.authorizeEdit(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if current.Paid {
		result := *current
		return &result, nil
	}

	remote, err := s.gateway.MarkOrderPaid(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}

	local := *current
	paid := true
	if err := local.Apply(domain.Patch{Paid: &paid}, s.now()); err != nil {
		return nil, mapError(err)
	}
	merged := domain.Reconcile(remote, local)
	s.storeInSession(merged)

	paidAt := s.now()
	if merged.PaidAt != nil {
		paidAt = *merged.PaidAt
	}
	s.publish(ctx, domain.OrderPaid{
		BaseEvent: domain.BaseEvent{Timestamp: s.now()},
		OrderID:   merged.ID,
		Number:    merged.Number,
		PaidAt:    paidAt,
		Actor:     actorName(actor),
	})
	result := merged
	return &result, nil
}

// Delete removes the order remotely and from the session. Notification
// records referencing it keep existing; only their target is gone.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	current, err := s.authorizeEdit(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.gateway.DeleteOrder(ctx, id); err != nil {
		return mapError(err)
	}

	s.mu.Lock()
	delete(s.session, id)
	s.mu.Unlock()

	s.publish(ctx, domain.OrderDeleted{
		BaseEvent:    domain.BaseEvent{Timestamp: s.now()},
		OrderID:      id,
		Number:       current.Number,
		CustomerName: current.CustomerName,
		Actor:        actorName(actor),
	})
	return nil
}

// Stats aggregates the actor-visible orders for the dashboard.
func (s *Service) Stats(ctx context.Context, actor identity.Actor) (ports.Stats, error) {
	orders, err := s.List(ctx, actor)
	if err != nil {
		return ports.Stats{}, err
	}
	stats := ports.Stats{ByStatus: map[domain.Status]int{}}
	for _, order := range orders {
		stats.Count++
		stats.ByStatus[order.Status]++
		if order.Paid {
			stats.PaidTotal += order.Total
		} else {
			stats.UnpaidTotal += order.Total
		}
	}
	return stats, nil
}

// authorizeEdit resolves the order and checks the visibility policy before
// any remote round trip. Invisible orders report as not found.
func (s *Service) authorizeEdit(ctx context.Context, actor identity.Actor, id string) (*domain.Order, error) {
	order, err := s.cachedOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !domain.Visible(actor, *order) {
		return nil, ports.ErrNotFound
	}
	if !domain.Editable(actor, *order) {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *Service) cachedOrder(ctx context.Context, actor identity.Actor, id string) (*domain.Order, error) {
	s.mu.RLock()
	loaded := s.loaded
	order, ok := s.session[id]
	s.mu.RUnlock()
	if !loaded {
		if _, err := s.Refresh(ctx, actor, ports.Filter{}); err != nil {
			return nil, err
		}
		s.mu.RLock()
		order, ok = s.session[id]
		s.mu.RUnlock()
	}
	if !ok {
		return nil, ports.ErrNotFound
	}
	result := order
	return &result, nil
}

// storeInSession upserts one record. Only Refresh sets the loaded flag;
// a session that has never listed the remote still does so on first read.
func (s *Service) storeInSession(order domain.Order) {
	s.mu.Lock()
	s.session[order.ID] = order
	s.mu.Unlock()
}

// publish renders a domain event as an in-app notification and appends it.
// The remote mutation already succeeded, so a failing append is logged rather
// than failing the whole operation.
func (s *Service) publish(ctx context.Context, event domain.Event) {
	if s.notifier == nil {
		return
	}
	draft, ok := draftFromEvent(event)
	if !ok {
		s.logger.Warn("no notification rendering for event",
			slog.String("event", event.EventName()))
		return
	}
	if _, err := s.notifier.Notify(ctx, draft); err != nil {
		s.logger.Error("failed to record order notification",
			slog.String("event", event.EventName()),
			slog.String("error", err.Error()))
	}
}

// draftFromEvent maps each event type to its user-facing notification text.
func draftFromEvent(event domain.Event) (notifdomain.Draft, bool) {
	switch e := event.(type) {
	case domain.OrderCreated:
		ref := orderRef(e.Number, e.OrderID)
		return notifdomain.Draft{
			Type:      notifdomain.TypeOrder,
			Title:     fmt.Sprintf("Order %s created", ref),
			Message:   fmt.Sprintf("Order %s created for %s", ref, e.CustomerName),
			ActionURL: orderActionURL(e.OrderID),
		}, true
	case domain.OrderTransitioned:
		return notifdomain.Draft{
			Type:      notifdomain.TypeOrder,
			Title:     fmt.Sprintf("Order %s updated", orderRef(e.Number, e.OrderID)),
			Message:   e.Summary,
			ActionURL: orderActionURL(e.OrderID),
		}, true
	case domain.OrderPaid:
		ref := orderRef(e.Number, e.OrderID)
		return notifdomain.Draft{
			Type:      notifdomain.TypeOrder,
			Title:     fmt.Sprintf("Order %s marked as paid", ref),
			Message:   fmt.Sprintf("Order %s marked as paid by %s", ref, e.Actor),
			ActionURL: orderActionURL(e.OrderID),
		}, true
	case domain.OrderDeleted:
		ref := orderRef(e.Number, e.OrderID)
		return notifdomain.Draft{
			Type:    notifdomain.TypeOrder,
			Title:   fmt.Sprintf("Order %s deleted", ref),
			Message: fmt.Sprintf("Order %s for %s was deleted by %s", ref, e.CustomerName, e.Actor),
		}, true
	default:
		return notifdomain.Draft{}, false
	}
}

func visibleSlice(actor identity.Actor, orders []domain.Order) []domain.Order {
	visible := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if domain.Visible(actor, order) {
			visible = append(visible, order)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible
}

// summarizeTransition renders the change in user-facing terms, never the raw patch.
func summarizeTransition(order domain.Order, patch domain.Patch) string {
	number := orderRef(order.Number, order.ID)
	var changes []string
	if patch.Status != nil {
		changes = append(changes, fmt.Sprintf("moved to %s", statusLabel(*patch.Status)))
	}
	if patch.Paid != nil && *patch.Paid {
		changes = append(changes, "marked as paid")
	}
	if patch.AssignedTo != nil {
		if *patch.AssignedTo == "" {
			changes = append(changes, "unassigned")
		} else {
			changes = append(changes, "assigned to "+*patch.AssignedTo)
		}
	}
	if patch.Priority != nil {
		changes = append(changes, fmt.Sprintf("priority set to %s", *patch.Priority))
	}
	if patch.PaymentCondition != nil {
		changes = append(changes, fmt.Sprintf("payment terms set to %s", *patch.PaymentCondition))
	}
	if len(changes) == 0 {
		return fmt.Sprintf("Order %s updated", number)
	}
	return fmt.Sprintf("Order %s %s", number, strings.Join(changes, ", "))
}

func statusLabel(status domain.Status) string {
	if status == domain.StatusDC {
		return "delivery challan"
	}
	return string(status)
}

func orderRef(number, id string) string {
	if number != "" {
		return "#" + number
	}
	return id
}

func actorName(actor identity.Actor) string {
	if actor.Name != "" {
		return actor.Name
	}
	return actor.ID
}

func orderActionURL(id string) string {
	return "/orders/" + id
}

var _ ports.Service = (*Service)(nil)
