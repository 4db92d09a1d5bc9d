package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() Order {
	return Order{
		ID:               "ord-1",
		Number:           "1001",
		CustomerName:     "Acme Traders",
		Status:           StatusPending,
		PaymentCondition: PaymentNet15,
		Priority:         PriorityMedium,
		Items: []LineItem{
			{ProductID: "p-1", Name: "Steel rod", Quantity: 3, UnitPrice: 2500},
			{ProductID: "p-2", Name: "Copper wire", Quantity: 2, UnitPrice: 1200},
		},
		Total:     9900,
		CreatedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
	}
}

func statusPtr(s Status) *Status                        { return &s }
func boolPtr(b bool) *bool                              { return &b }
func stringPtr(s string) *string                        { return &s }
func priorityPtr(p Priority) *Priority                  { return &p }
func conditionPtr(c PaymentCondition) *PaymentCondition { return &c }

func TestApply_DispatchStampsDateExactlyOnce(t *testing.T) {
	order := sampleOrder()
	first := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)

	require.NoError(t, order.Apply(Patch{Status: statusPtr(StatusDispatched)}, first))
	require.NotNil(t, order.DispatchDate)
	assert.Equal(t, first, *order.DispatchDate)

	require.NoError(t, order.Apply(Patch{Status: statusPtr(StatusDispatched)}, second))
	assert.Equal(t, first, *order.DispatchDate, "re-dispatching must not move the dispatch date")
}

func TestApply_DispatchDateSurvivesRoundTripThroughOtherStatuses(t *testing.T) {
	order := sampleOrder()
	first := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)

	require.NoError(t, order.Apply(Patch{Status: statusPtr(StatusDispatched)}, first))
	require.NoError(t, order.Apply(Patch{Status: statusPtr(StatusInvoice)}, first.Add(time.Hour)))
	require.NoError(t, order.Apply(Patch{Status: statusPtr(StatusDispatched)}, first.Add(2*time.Hour)))

	require.NotNil(t, order.DispatchDate)
	assert.Equal(t, first, *order.DispatchDate)
}

func TestApply_MarkPaidIsIdempotent(t *testing.T) {
	order := sampleOrder()
	first := time.Date(2026, 1, 11, 9, 30, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, order.Apply(Patch{Paid: boolPtr(true)}, first))
	require.True(t, order.Paid)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, first, *order.PaidAt)

	require.NoError(t, order.Apply(Patch{Paid: boolPtr(true)}, second))
	assert.True(t, order.Paid)
	assert.Equal(t, first, *order.PaidAt, "re-marking paid must keep the first timestamp")
}

func TestApply_UnknownStatusRejectedAndOrderUnmodified(t *testing.T) {
	order := sampleOrder()
	before := order

	err := order.Apply(Patch{Status: statusPtr(Status("shipped")), Priority: priorityPtr(PriorityHigh)}, time.Now())
	require.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, before, order)
}

func TestApply_NeverTouchesItemsOrTotal(t *testing.T) {
	order := sampleOrder()
	require.NoError(t, order.Apply(Patch{
		Status:           statusPtr(StatusInvoice),
		Paid:             boolPtr(true),
		AssignedTo:       stringPtr("staff-7"),
		Priority:         priorityPtr(PriorityHigh),
		PaymentCondition: conditionPtr(PaymentImmediate),
	}, time.Now()))

	assert.Equal(t, sampleOrder().Items, order.Items)
	assert.Equal(t, sampleOrder().Total, order.Total)
}

func TestPatchValidate_ClosedEnumerations(t *testing.T) {
	assert.ErrorIs(t, Patch{Priority: priorityPtr(Priority("urgent"))}.Validate(), ErrInvalidPriority)
	assert.ErrorIs(t, Patch{PaymentCondition: conditionPtr(PaymentCondition("net-60"))}.Validate(), ErrInvalidPaymentCondition)
	assert.NoError(t, Patch{Status: statusPtr(StatusDC)}.Validate())
	assert.NoError(t, Patch{}.Validate())
}

func TestNewOrder_RecomputesTotalAndStartsPending(t *testing.T) {
	order, err := NewOrder("Acme Traders", PaymentNet30, "", []LineItem{
		{ProductID: "p-1", Quantity: 4, UnitPrice: 150},
		{ProductID: "p-2", Quantity: 1, UnitPrice: 999},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, PriorityMedium, order.Priority)
	assert.Equal(t, int64(4*150+999), order.Total)
}

func TestNewOrder_Invariants(t *testing.T) {
	_, err := NewOrder("  ", PaymentImmediate, PriorityLow, []LineItem{{ProductID: "p", Quantity: 1, UnitPrice: 1}})
	assert.ErrorIs(t, err, ErrEmptyCustomer)

	_, err = NewOrder("Acme", PaymentCondition("someday"), PriorityLow, []LineItem{{ProductID: "p", Quantity: 1, UnitPrice: 1}})
	assert.ErrorIs(t, err, ErrInvalidPaymentCondition)

	_, err = NewOrder("Acme", PaymentImmediate, PriorityLow, nil)
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = NewOrder("Acme", PaymentImmediate, PriorityLow, []LineItem{{ProductID: "p", Quantity: 0, UnitPrice: 1}})
	assert.ErrorIs(t, err, ErrInvalidLineItem)
}

func TestReconcile_RemoteWinsButDerivedTimestampsBackfill(t *testing.T) {
	dispatched := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)
	paid := dispatched.Add(time.Hour)

	remote := sampleOrder()
	remote.Status = StatusDispatched
	remote.Paid = true
	// Remote echo omits the derived timestamps.
	local := remote
	local.DispatchDate = &dispatched
	local.PaidAt = &paid

	merged := Reconcile(remote, local)
	require.NotNil(t, merged.DispatchDate)
	assert.Equal(t, dispatched, *merged.DispatchDate)
	require.NotNil(t, merged.PaidAt)
	assert.Equal(t, paid, *merged.PaidAt)

	// When the remote does echo a timestamp, it wins.
	remoteStamp := dispatched.Add(-time.Minute)
	remote.DispatchDate = &remoteStamp
	merged = Reconcile(remote, local)
	assert.Equal(t, remoteStamp, *merged.DispatchDate)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" Dispatched ")
	require.NoError(t, err)
	assert.Equal(t, StatusDispatched, status)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
