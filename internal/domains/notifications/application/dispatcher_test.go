package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/adapters/memory"
	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
	"github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
)

type fakeAlertSurface struct {
	state    ports.Permission
	grantOn  ports.Permission
	requests int
	shown    []string
	failShow bool
}

func (f *fakeAlertSurface) Permission() ports.Permission { return f.state }

func (f *fakeAlertSurface) RequestPermission(context.Context) ports.Permission {
	f.requests++
	f.state = f.grantOn
	return f.state
}

func (f *fakeAlertSurface) TryShow(title, _ string) bool {
	if f.failShow {
		return false
	}
	f.shown = append(f.shown, title)
	return true
}

func TestNotify_AppendsAndMirrors(t *testing.T) {
	store := memory.NewStore()
	alert := &fakeAlertSurface{state: ports.PermissionGranted}
	dispatcher := NewDispatcher(context.Background(), store, alert)

	saved, err := dispatcher.Notify(context.Background(), domain.Draft{
		Type:    domain.TypeOrder,
		Title:   "Order #1001 marked as paid",
		Message: "Order #1001 marked as paid by Dana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, []string{"Order #1001 marked as paid"}, alert.shown)
}

func TestNotify_MirrorFailureNeverFailsTheRecord(t *testing.T) {
	store := memory.NewStore()
	alert := &fakeAlertSurface{state: ports.PermissionGranted, failShow: true}
	dispatcher := NewDispatcher(context.Background(), store, alert)

	_, err := dispatcher.Notify(context.Background(), domain.Draft{
		Type:    domain.TypeProduct,
		Title:   "Low stock",
		Message: "3 products are below their reorder threshold",
	})
	require.NoError(t, err)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestNotify_RejectsUnknownType(t *testing.T) {
	dispatcher := NewDispatcher(context.Background(), memory.NewStore(), ports.NoopAlertSurface{})

	_, err := dispatcher.Notify(context.Background(), domain.Draft{
		Type:    "broadcast",
		Title:   "t",
		Message: "m",
	})
	require.ErrorIs(t, err, ErrInvalidNotice)
	require.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestNotify_DoesNotDeduplicateIdenticalPayloads(t *testing.T) {
	store := memory.NewStore()
	dispatcher := NewDispatcher(context.Background(), store, ports.NoopAlertSurface{})

	payload := domain.Draft{Type: domain.TypeSystem, Title: "same", Message: "same"}
	_, err := dispatcher.Notify(context.Background(), payload)
	require.NoError(t, err)
	_, err = dispatcher.Notify(context.Background(), payload)
	require.NoError(t, err)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestNewDispatcher_RequestsPermissionExactlyOnceWhenUndecided(t *testing.T) {
	alert := &fakeAlertSurface{state: ports.PermissionUndecided, grantOn: ports.PermissionGranted}
	NewDispatcher(context.Background(), memory.NewStore(), alert)
	assert.Equal(t, 1, alert.requests)
}

func TestNewDispatcher_NeverRepromptsAfterDenial(t *testing.T) {
	alert := &fakeAlertSurface{state: ports.PermissionDenied, grantOn: ports.PermissionGranted}
	dispatcher := NewDispatcher(context.Background(), memory.NewStore(), alert)
	assert.Equal(t, 0, alert.requests)

	_, err := dispatcher.Notify(context.Background(), domain.Draft{Type: domain.TypeSystem, Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, 0, alert.requests)
	assert.Empty(t, alert.shown)
}
