package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notifdomain "github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/ports"
	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

// fakeGateway records calls and echoes mutations the way the remote service
// does: full post-update records, without the locally derived timestamps.
type fakeGateway struct {
	orders    map[string]domain.Order
	calls     []string
	listErr   error
	updateErr error
	paidErr   error
	deleteErr error
}

func newFakeGateway(orders ...domain.Order) *fakeGateway {
	g := &fakeGateway{orders: map[string]domain.Order{}}
	for _, order := range orders {
		g.orders[order.ID] = order
	}
	return g
}

func (g *fakeGateway) ListOrders(_ context.Context, _ ports.Filter) ([]domain.Order, error) {
	g.calls = append(g.calls, "list")
	if g.listErr != nil {
		return nil, g.listErr
	}
	orders := make([]domain.Order, 0, len(g.orders))
	for _, order := range g.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (g *fakeGateway) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	g.calls = append(g.calls, "create")
	order.ID = "ord-created"
	g.orders[order.ID] = order
	return order, nil
}

func (g *fakeGateway) UpdateOrder(_ context.Context, id string, patch domain.Patch) (domain.Order, error) {
	g.calls = append(g.calls, "update")
	if g.updateErr != nil {
		return domain.Order{}, g.updateErr
	}
	order, ok := g.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.Paid != nil {
		order.Paid = *patch.Paid
	}
	if patch.AssignedTo != nil {
		order.AssignedTo = *patch.AssignedTo
	}
	if patch.Priority != nil {
		order.Priority = *patch.Priority
	}
	g.orders[id] = order
	return order, nil
}

func (g *fakeGateway) MarkOrderPaid(_ context.Context, id string) (domain.Order, error) {
	g.calls = append(g.calls, "paid")
	if g.paidErr != nil {
		return domain.Order{}, g.paidErr
	}
	order, ok := g.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	order.Paid = true
	g.orders[id] = order
	return order, nil
}

func (g *fakeGateway) DeleteOrder(_ context.Context, id string) error {
	g.calls = append(g.calls, "delete")
	if g.deleteErr != nil {
		return g.deleteErr
	}
	delete(g.orders, id)
	return nil
}

type fakeNotifier struct {
	drafts []notifdomain.Draft
}

func (n *fakeNotifier) Notify(_ context.Context, draft notifdomain.Draft) (*notifdomain.Notification, error) {
	n.drafts = append(n.drafts, draft)
	return &notifdomain.Notification{ID: "ntf-1", Title: draft.Title}, nil
}

type gatewayCreation struct {
	gateway ports.Gateway
}

func (c gatewayCreation) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	return c.gateway.CreateOrder(ctx, order)
}

var (
	admin = identity.Actor{ID: "u-admin", Name: "Kiran", Role: identity.RoleAdmin}
	exec  = identity.Actor{ID: "u-exec", Name: "Priya", Role: identity.RoleExecutive}
	staff = identity.Actor{ID: "u-staff", Name: "Dev", Role: identity.RoleStaff}
)

func pendingOrder(id string) domain.Order {
	return domain.Order{
		ID:               id,
		Number:           "1001",
		CustomerName:     "Acme Traders",
		Status:           domain.StatusPending,
		PaymentCondition: domain.PaymentNet15,
		Priority:         domain.PriorityMedium,
		Items:            []domain.LineItem{{ProductID: "p-1", Quantity: 2, UnitPrice: 500}},
		Total:            1000,
		CreatedAt:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newTestService(gateway *fakeGateway, notifier *fakeNotifier) *Service {
	fixed := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return NewService(gateway, gatewayCreation{gateway}, notifier,
		WithClock(func() time.Time { return fixed }))
}

func TestTransition_RejectsInvalidPatchBeforeAnyRemoteCall(t *testing.T) {
	gateway := newFakeGateway(pendingOrder("ord-1"))
	svc := newTestService(gateway, &fakeNotifier{})

	bogus := domain.Status("shipped")
	_, err := svc.Transition(context.Background(), admin, "ord-1", domain.Patch{Status: &bogus})
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Empty(t, gateway.calls, "validation failures must not reach the remote")
}

func TestTransition_ExecutiveCannotReassign(t *testing.T) {
	order := pendingOrder("ord-1")
	order.CreatedBy = exec.ID
	gateway := newFakeGateway(order)
	notifier := &fakeNotifier{}
	svc := newTestService(gateway, notifier)

	target := "u-staff"
	_, err := svc.Transition(context.Background(), exec, "ord-1", domain.Patch{AssignedTo: &target})
	require.ErrorIs(t, err, ErrForbidden)
	assert.NotContains(t, gateway.calls, "update")
	assert.Empty(t, notifier.drafts)
}

func TestTransition_RemoteFailureLeavesSessionUntouched(t *testing.T) {
	gateway := newFakeGateway(pendingOrder("ord-1"))
	notifier := &fakeNotifier{}
	svc := newTestService(gateway, notifier)

	// Warm the session cache first.
	_, err := svc.List(context.Background(), admin)
	require.NoError(t, err)

	gateway.updateErr = ports.ErrRemoteUnavailable
	dispatched := domain.StatusDispatched
	_, err = svc.Transition(context.Background(), admin, "ord-1", domain.Patch{Status: &dispatched})
	require.ErrorIs(t, err, ports.ErrRemoteUnavailable)
	assert.Empty(t, notifier.drafts, "failed mutations must not notify")

	cached, err := svc.Get(context.Background(), admin, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, cached.Status)
	assert.Nil(t, cached.DispatchDate)
}

func TestTransition_ReconcilesEchoAndEmitsOneNotification(t *testing.T) {
	gateway := newFakeGateway(pendingOrder("ord-1"))
	notifier := &fakeNotifier{}
	svc := newTestService(gateway, notifier)

	dispatched := domain.StatusDispatched
	updated, err := svc.Transition(context.Background(), admin, "ord-1", domain.Patch{Status: &dispatched})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDispatched, updated.Status)
	require.NotNil(t, updated.DispatchDate, "dispatch date backfilled when the echo omits it")

	require.Len(t, notifier.drafts, 1)
	assert.Equal(t, notifdomain.TypeOrder, notifier.drafts[0].Type)
	assert.Contains(t, notifier.drafts[0].Message, "dispatched")

	cached, err := svc.Get(context.Background(), admin, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDispatched, cached.Status)
}

func TestMarkPaid_IdempotentWithoutSecondRemoteCall(t *testing.T) {
	gateway := newFakeGateway(pendingOrder("ord-1"))
	notifier := &fakeNotifier{}
	svc := newTestService(gateway, notifier)

	first, err := svc.MarkPaid(context.Background(), admin, "ord-1")
	require.NoError(t, err)
	require.True(t, first.Paid)
	require.NotNil(t, first.PaidAt)
	require.Len(t, notifier.drafts, 1)

	remoteCalls := len(gateway.calls)
	second, err := svc.MarkPaid(context.Background(), admin, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, *first.PaidAt, *second.PaidAt)
	assert.Len(t, gateway.calls, remoteCalls, "already-paid orders short-circuit locally")
	assert.Len(t, notifier.drafts, 1, "re-marking paid is not news")
}

func TestGet_InvisibleOrderReportsNotFound(t *testing.T) {
	order := pendingOrder("ord-1")
	order.AssignedTo = "someone-else"
	gateway := newFakeGateway(order)
	svc := newTestService(gateway, &fakeNotifier{})

	_, err := svc.Get(context.Background(), staff, "ord-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_FiltersByVisibilityPolicy(t *testing.T) {
	mine := pendingOrder("ord-mine")
	mine.AssignedTo = staff.ID
	open := pendingOrder("ord-open")
	other := pendingOrder("ord-other")
	other.AssignedTo = "u-someone"
	gateway := newFakeGateway(mine, open, other)
	svc := newTestService(gateway, &fakeNotifier{})

	orders, err := svc.List(context.Background(), staff)
	require.NoError(t, err)
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	assert.ElementsMatch(t, []string{"ord-mine", "ord-open"}, ids)
}

func TestCreate_RecomputesTotalAndNotifiesOnce(t *testing.T) {
	gateway := newFakeGateway()
	notifier := &fakeNotifier{}
	svc := newTestService(gateway, notifier)

	created, err := svc.Create(context.Background(), exec, ports.Draft{
		Number:           "1002",
		CustomerName:     "Bharat Mills",
		PaymentCondition: domain.PaymentImmediate,
		Items: []domain.LineItem{
			{ProductID: "p-1", Quantity: 3, UnitPrice: 400},
			{ProductID: "p-2", Quantity: 1, UnitPrice: 250},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3*400+250), created.Total)
	assert.Equal(t, exec.ID, created.CreatedBy)
	assert.Equal(t, domain.StatusPending, created.Status)
	require.Len(t, notifier.drafts, 1)
	assert.Contains(t, notifier.drafts[0].Title, "#1002")
}

func TestCreate_FreshSessionStillListsPreexistingOrders(t *testing.T) {
	gateway := newFakeGateway(pendingOrder("ord-old"))
	svc := newTestService(gateway, &fakeNotifier{})

	_, err := svc.Create(context.Background(), admin, ports.Draft{
		Number:           "1002",
		CustomerName:     "Bharat Mills",
		PaymentCondition: domain.PaymentImmediate,
		Items:            []domain.LineItem{{ProductID: "p-1", Quantity: 1, UnitPrice: 100}},
	})
	require.NoError(t, err)

	orders, err := svc.List(context.Background(), admin)
	require.NoError(t, err)
	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	assert.ElementsMatch(t, []string{"ord-old", "ord-created"}, ids,
		"creating before the first listing must not hide remote orders")
	assert.Contains(t, gateway.calls, "list")
}

func TestCreate_ExecutiveCannotPreAssign(t *testing.T) {
	gateway := newFakeGateway()
	svc := newTestService(gateway, &fakeNotifier{})

	_, err := svc.Create(context.Background(), exec, ports.Draft{
		CustomerName:     "Bharat Mills",
		PaymentCondition: domain.PaymentImmediate,
		AssignedTo:       "u-staff",
		Items:            []domain.LineItem{{ProductID: "p-1", Quantity: 1, UnitPrice: 100}},
	})
	require.ErrorIs(t, err, ErrForbidden)
	assert.NotContains(t, gateway.calls, "create")
}

func TestStats_AggregatesVisibleOrdersOnly(t *testing.T) {
	paid := pendingOrder("ord-paid")
	paid.Paid = true
	paid.Status = domain.StatusDispatched
	unpaid := pendingOrder("ord-unpaid")
	unpaid.Total = 750
	hidden := pendingOrder("ord-hidden")
	hidden.AssignedTo = "u-someone"
	gateway := newFakeGateway(paid, unpaid, hidden)
	svc := newTestService(gateway, &fakeNotifier{})

	stats, err := svc.Stats(context.Background(), staff)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 1, stats.ByStatus[domain.StatusDispatched])
	assert.Equal(t, 1, stats.ByStatus[domain.StatusPending])
	assert.Equal(t, int64(1000), stats.PaidTotal)
	assert.Equal(t, int64(750), stats.UnpaidTotal)
}

func TestDraftFromEvent_RendersUserFacingText(t *testing.T) {
	when := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	base := domain.BaseEvent{Timestamp: when}

	created, ok := draftFromEvent(domain.OrderCreated{
		BaseEvent: base, OrderID: "ord-1", Number: "1001",
		CustomerName: "Acme Traders", Total: 1000,
	})
	require.True(t, ok)
	assert.Equal(t, notifdomain.TypeOrder, created.Type)
	assert.Equal(t, "Order #1001 created", created.Title)
	assert.Contains(t, created.Message, "Acme Traders")
	assert.Equal(t, "/orders/ord-1", created.ActionURL)

	transitioned, ok := draftFromEvent(domain.OrderTransitioned{
		BaseEvent: base, OrderID: "ord-2",
		Summary: "Order ord-2 moved to dispatched", Status: domain.StatusDispatched,
	})
	require.True(t, ok)
	assert.Equal(t, "Order ord-2 updated", transitioned.Title, "orders without a number fall back to the ID")
	assert.Equal(t, "Order ord-2 moved to dispatched", transitioned.Message)

	paid, ok := draftFromEvent(domain.OrderPaid{
		BaseEvent: base, OrderID: "ord-1", Number: "1001", PaidAt: when, Actor: "Kiran",
	})
	require.True(t, ok)
	assert.Equal(t, "Order #1001 marked as paid", paid.Title)
	assert.Contains(t, paid.Message, "Kiran")

	deleted, ok := draftFromEvent(domain.OrderDeleted{
		BaseEvent: base, OrderID: "ord-1", Number: "1001",
		CustomerName: "Acme Traders", Actor: "Kiran",
	})
	require.True(t, ok)
	assert.Contains(t, deleted.Message, "deleted by Kiran")
	assert.Empty(t, deleted.ActionURL, "deleted orders have no target to open")
}

func TestDelete_RemovesFromSessionAndNotifies(t *testing.T) {
	gateway := newFakeGateway(pendingOrder("ord-1"))
	notifier := &fakeNotifier{}
	svc := newTestService(gateway, notifier)

	require.NoError(t, svc.Delete(context.Background(), admin, "ord-1"))
	_, err := svc.Get(context.Background(), admin, "ord-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	require.Len(t, notifier.drafts, 1)
	assert.Contains(t, notifier.drafts[0].Message, "deleted")
}
