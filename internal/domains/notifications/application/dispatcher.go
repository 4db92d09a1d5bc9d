package application

import (
	"context"
	"io"
	"log/slog"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
	"github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
)

// Dispatcher turns domain events into stored, user-visible notifications and
// mirrors them to the OS alert surface on a best-effort basis. The in-app
// record is the durable delivery; the OS alert may silently fail.
type Dispatcher struct {
	store  ports.Store
	alert  ports.AlertSurface
	logger *slog.Logger
}

// Option configures the dispatcher.
type Option func(*Dispatcher)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher wires the dispatcher with its store and alert surface.
// If the surface's permission is still undecided, exactly one request is
// issued here; a denial is never re-prompted.
func NewDispatcher(ctx context.Context, store ports.Store, alert ports.AlertSurface, opts ...Option) *Dispatcher {
	if alert == nil {
		alert = ports.NoopAlertSurface{}
	}
	d := &Dispatcher{
		store:  store,
		alert:  alert,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.alert.Permission() == ports.PermissionUndecided {
		granted := d.alert.RequestPermission(ctx)
		d.logger.Info("alert permission requested", slog.String("result", string(granted)))
	}
	return d
}

// Notify validates the draft, appends it to the store, and mirrors it to the
// OS surface when permitted. Identical drafts produce distinct records;
// batching is the caller's responsibility.
func (d *Dispatcher) Notify(ctx context.Context, draft domain.Draft) (*domain.Notification, error) {
	if err := draft.Validate(); err != nil {
		return nil, mapError(err)
	}
	stored, err := d.store.Append(ctx, draft)
	if err != nil {
		return nil, err
	}
	if d.alert.Permission() == ports.PermissionGranted {
		if !d.alert.TryShow(stored.Title, stored.Message) {
			d.logger.Debug("OS alert mirroring failed",
				slog.String("notification.id", stored.ID),
				slog.String("notification.type", string(stored.Type)))
		}
	}
	return stored, nil
}

// List returns the stored log, most recent first.
func (d *Dispatcher) List(ctx context.Context) ([]domain.Notification, error) {
	return d.store.List(ctx)
}

// MarkRead flags one record as read; repeating it is a no-op.
func (d *Dispatcher) MarkRead(ctx context.Context, id string) error {
	return d.store.MarkRead(ctx, id)
}

// MarkAllRead flags every record as read.
func (d *Dispatcher) MarkAllRead(ctx context.Context) error {
	return d.store.MarkAllRead(ctx)
}

// Clear empties the log.
func (d *Dispatcher) Clear(ctx context.Context) error {
	return d.store.Clear(ctx)
}

// UnreadCount counts the unread records in the live set.
func (d *Dispatcher) UnreadCount(ctx context.Context) (int, error) {
	return d.store.UnreadCount(ctx)
}

var _ ports.Service = (*Dispatcher)(nil)
