package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk/internal/domains/orders/adapters/memory"
	"github.com/orderdesk/orderdesk/internal/domains/orders/domain"
	"github.com/orderdesk/orderdesk/internal/domains/orders/ports"
)

type fakeStock struct {
	failOn     string
	decrements []string
	restocks   []string
}

func (s *fakeStock) Decrement(_ context.Context, productID string, _ int64) error {
	if productID == s.failOn {
		return errors.New("insufficient stock")
	}
	s.decrements = append(s.decrements, productID)
	return nil
}

func (s *fakeStock) Restock(_ context.Context, productID string, _ int64) error {
	s.restocks = append(s.restocks, productID)
	return nil
}

func draftOrder() domain.Order {
	return domain.Order{
		CustomerName:     "Acme Traders",
		Status:           domain.StatusPending,
		PaymentCondition: domain.PaymentImmediate,
		Priority:         domain.PriorityMedium,
		Items: []domain.LineItem{
			{ProductID: "p-1", Quantity: 2, UnitPrice: 500},
			{ProductID: "p-2", Quantity: 1, UnitPrice: 300},
		},
		Total: 1300,
	}
}

func TestInlineOrderCreation_HappyPathDecrementsEveryLine(t *testing.T) {
	gateway := memory.NewGateway()
	stock := &fakeStock{}
	orchestrator := NewInlineOrderCreation(gateway, stock)

	created, err := orchestrator.CreateOrder(context.Background(), draftOrder())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"p-1", "p-2"}, stock.decrements)

	orders, err := gateway.ListOrders(context.Background(), ports.Filter{})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestInlineOrderCreation_CompensatesOnDecrementFailure(t *testing.T) {
	gateway := memory.NewGateway()
	stock := &fakeStock{failOn: "p-2"}
	orchestrator := NewInlineOrderCreation(gateway, stock)

	_, err := orchestrator.CreateOrder(context.Background(), draftOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")

	orders, listErr := gateway.ListOrders(context.Background(), ports.Filter{})
	require.NoError(t, listErr)
	assert.Empty(t, orders, "the half-created order must be deleted")
	assert.Equal(t, []string{"p-1"}, stock.decrements, "the first line was decremented before the failure")
	assert.Equal(t, []string{"p-1"}, stock.restocks, "the landed decrement must be reversed")
}

func TestInlineOrderCreation_FirstLineFailureRestocksNothing(t *testing.T) {
	gateway := memory.NewGateway()
	stock := &fakeStock{failOn: "p-1"}
	orchestrator := NewInlineOrderCreation(gateway, stock)

	_, err := orchestrator.CreateOrder(context.Background(), draftOrder())
	require.Error(t, err)
	assert.Empty(t, stock.decrements)
	assert.Empty(t, stock.restocks)
}

func TestInlineOrderCreation_NoStockAdjusterStillCreates(t *testing.T) {
	gateway := memory.NewGateway()
	orchestrator := NewInlineOrderCreation(gateway, nil)

	created, err := orchestrator.CreateOrder(context.Background(), draftOrder())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}
