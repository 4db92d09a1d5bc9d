package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk/internal/domains/catalog/adapters/memory"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/domain"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/ports"
	notifdomain "github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
)

type fakeNotifier struct {
	drafts []notifdomain.Draft
}

func (n *fakeNotifier) Notify(_ context.Context, draft notifdomain.Draft) (*notifdomain.Notification, error) {
	n.drafts = append(n.drafts, draft)
	return &notifdomain.Notification{ID: "ntf-1", Title: draft.Title}, nil
}

func thresholdPtr(v int64) *int64 { return &v }

func seedProducts(gateway *memory.Gateway) {
	gateway.Seed(
		domain.Product{ID: "p-low", Name: "Steel rod", Stock: 2, Threshold: thresholdPtr(5), UnitPrice: 2500},
		domain.Product{ID: "p-ok", Name: "Copper wire", Stock: 50, Threshold: thresholdPtr(10), UnitPrice: 1200},
		domain.Product{ID: "p-untracked", Name: "Brass sheet", Stock: 0, UnitPrice: 1800},
	)
}

func TestSweepLowStock_BatchesIntoOneNotification(t *testing.T) {
	gateway := memory.NewGateway()
	gateway.Seed(
		domain.Product{ID: "p-1", Name: "Steel rod", Stock: 1, Threshold: thresholdPtr(5)},
		domain.Product{ID: "p-2", Name: "Copper wire", Stock: 2, Threshold: thresholdPtr(10)},
		domain.Product{ID: "p-3", Name: "Brass sheet", Stock: 99, Threshold: thresholdPtr(10)},
	)
	notifier := &fakeNotifier{}
	svc := NewService(gateway, notifier)

	report, err := svc.SweepLowStock(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Len(t, report.Low, 2)
	assert.True(t, report.Notified)
	require.Len(t, notifier.drafts, 1, "low products batch into a single notification")
	assert.Equal(t, notifdomain.TypeProduct, notifier.drafts[0].Type)
	assert.Contains(t, notifier.drafts[0].Title, "2 products")
}

func TestSweepLowStock_UnchangedSetStaysSilent(t *testing.T) {
	gateway := memory.NewGateway()
	seedProducts(gateway)
	notifier := &fakeNotifier{}
	svc := NewService(gateway, notifier)

	first, err := svc.SweepLowStock(context.Background())
	require.NoError(t, err)
	assert.True(t, first.Notified)

	second, err := svc.SweepLowStock(context.Background())
	require.NoError(t, err)
	assert.False(t, second.Notified, "an unchanged low set does not re-notify")
	assert.Len(t, notifier.drafts, 1)

	// A new product dropping low changes the set and notifies again.
	gateway.Seed(domain.Product{ID: "p-new", Name: "Iron plate", Stock: 1, Threshold: thresholdPtr(4)})
	third, err := svc.SweepLowStock(context.Background())
	require.NoError(t, err)
	assert.True(t, third.Notified)
	assert.Len(t, notifier.drafts, 2)
}

func TestSweepLowStock_ProductsWithoutThresholdNeverLow(t *testing.T) {
	gateway := memory.NewGateway()
	gateway.Seed(domain.Product{ID: "p-untracked", Name: "Brass sheet", Stock: 0})
	notifier := &fakeNotifier{}
	svc := NewService(gateway, notifier)

	report, err := svc.SweepLowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Low)
	assert.False(t, report.Notified)
	assert.Empty(t, notifier.drafts)
}

func TestDecrement_ShiftsStockWithoutNotifying(t *testing.T) {
	gateway := memory.NewGateway()
	seedProducts(gateway)
	notifier := &fakeNotifier{}
	svc := NewService(gateway, notifier)

	require.NoError(t, svc.Decrement(context.Background(), "p-ok", 8))
	product, err := svc.Get(context.Background(), "p-ok")
	require.NoError(t, err)
	assert.Equal(t, int64(42), product.Stock)
	assert.Empty(t, notifier.drafts, "stock decrements ride on the order notification")
}

func TestRestock_ReversesADecrement(t *testing.T) {
	gateway := memory.NewGateway()
	seedProducts(gateway)
	notifier := &fakeNotifier{}
	svc := NewService(gateway, notifier)

	require.NoError(t, svc.Decrement(context.Background(), "p-ok", 8))
	require.NoError(t, svc.Restock(context.Background(), "p-ok", 8))
	product, err := svc.Get(context.Background(), "p-ok")
	require.NoError(t, err)
	assert.Equal(t, int64(50), product.Stock)
	assert.Empty(t, notifier.drafts)
}

func TestDecrement_InsufficientStockSurfacesRejection(t *testing.T) {
	gateway := memory.NewGateway()
	seedProducts(gateway)
	svc := NewService(gateway, &fakeNotifier{})

	err := svc.Decrement(context.Background(), "p-low", 10)
	assert.ErrorIs(t, err, ports.ErrRemoteRejected)
}

func TestCreate_ValidatesDraftAndNotifies(t *testing.T) {
	gateway := memory.NewGateway()
	notifier := &fakeNotifier{}
	svc := NewService(gateway, notifier)

	_, err := svc.Create(context.Background(), domain.Draft{Name: "Steel rod", Threshold: thresholdPtr(0)})
	require.ErrorIs(t, err, ErrInvalidProduct)
	require.ErrorIs(t, err, domain.ErrInvalidThreshold)
	assert.Empty(t, notifier.drafts)

	created, err := svc.Create(context.Background(), domain.Draft{Name: "Steel rod", Stock: 10, UnitPrice: 2500})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	require.Len(t, notifier.drafts, 1)
	assert.Contains(t, notifier.drafts[0].Title, "Steel rod")
}

func TestDelete_NotifiesWithProductName(t *testing.T) {
	gateway := memory.NewGateway()
	seedProducts(gateway)
	notifier := &fakeNotifier{}
	svc := NewService(gateway, notifier)

	require.NoError(t, svc.Delete(context.Background(), "p-ok"))
	_, err := svc.Get(context.Background(), "p-ok")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	require.Len(t, notifier.drafts, 1)
	assert.Contains(t, notifier.drafts[0].Title, "Copper wire")
}
