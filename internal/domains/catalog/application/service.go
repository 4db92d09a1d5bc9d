package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/orderdesk/orderdesk/internal/domains/catalog/domain"
	"github.com/orderdesk/orderdesk/internal/domains/catalog/ports"
	notifdomain "github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
	notifports "github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
	orderports "github.com/orderdesk/orderdesk/internal/domains/orders/ports"
)

// Service implements the catalog use cases over the remote gateway. It keeps
// no local product list; every read goes through the gateway (or its cache
// decorator). The low-stock sweep remembers the last reported set so that an
// unchanged set across passes does not re-notify.
type Service struct {
	gateway  ports.Gateway
	notifier notifports.Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	lastLow map[string]struct{}
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

// NewService wires the catalog service.
func NewService(gateway ports.Gateway, notifier notifports.Notifier, opts ...Option) *Service {
	s := &Service{
		gateway:  gateway,
		notifier: notifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		lastLow:  map[string]struct{}{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns all products.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

// Get returns one product.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.gateway.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create validates the draft, creates the product remotely, and emits one
// product notification.
func (s *Service) Create(ctx context.Context, draft domain.Draft) (*domain.Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, mapError(err)
	}
	product, err := s.gateway.CreateProduct(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, notifdomain.Draft{
		Type:      notifdomain.TypeProduct,
		Title:     fmt.Sprintf("Product %q added", product.Name),
		Message:   fmt.Sprintf("Product %q added with %d in stock", product.Name, product.Stock),
		ActionURL: "/products/" + product.ID,
	})
	return &product, nil
}

// Update validates the draft and replaces the product remotely. Updates are
// routine and do not notify.
func (s *Service) Update(ctx context.Context, id string, draft domain.Draft) (*domain.Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, mapError(err)
	}
	product, err := s.gateway.UpdateProduct(ctx, id, draft)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes the product remotely and emits one product notification.
func (s *Service) Delete(ctx context.Context, id string) error {
	product, err := s.gateway.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gateway.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, notifdomain.Draft{
		Type:    notifdomain.TypeProduct,
		Title:   fmt.Sprintf("Product %q removed", product.Name),
		Message: fmt.Sprintf("Product %q was removed from the catalog", product.Name),
	})
	return nil
}

// Decrement shifts one product's stock down, the order-creation side effect.
// It deliberately emits no notification; the order mutation is the one
// user-facing event.
func (s *Service) Decrement(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return nil
	}
	if _, err := s.gateway.AdjustStock(ctx, productID, -quantity); err != nil {
		return fmt.Errorf("adjust stock for product %s: %w", productID, err)
	}
	return nil
}

// Restock shifts one product's stock back up, undoing a Decrement when order
// creation is compensated. Like Decrement it emits no notification.
func (s *Service) Restock(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return nil
	}
	if _, err := s.gateway.AdjustStock(ctx, productID, quantity); err != nil {
		return fmt.Errorf("restock product %s: %w", productID, err)
	}
	return nil
}

// SweepLowStock runs one detection pass over the catalog. All low products are
// reported in a single batched notification; a pass whose low set matches the
// previous pass stays silent.
func (s *Service) SweepLowStock(ctx context.Context) (ports.SweepReport, error) {
	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		return ports.SweepReport{}, err
	}

	report := ports.SweepReport{Scanned: len(products)}
	low := map[string]struct{}{}
	for _, product := range products {
		if product.LowStock() {
			report.Low = append(report.Low, product)
			low[product.ID] = struct{}{}
		}
	}

	s.mu.Lock()
	changed := !sameIDSet(low, s.lastLow)
	s.lastLow = low
	s.mu.Unlock()

	if len(report.Low) == 0 || !changed {
		return report, nil
	}

	report.Notified = true
	s.notify(ctx, notifdomain.Draft{
		Type:      notifdomain.TypeProduct,
		Title:     fmt.Sprintf("%d products below reorder threshold", len(report.Low)),
		Message:   sweepMessage(report.Low),
		ActionURL: "/products",
	})
	return report, nil
}

func (s *Service) notify(ctx context.Context, draft notifdomain.Draft) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(ctx, draft); err != nil {
		s.logger.Error("failed to record product notification",
			slog.String("title", draft.Title),
			slog.String("error", err.Error()))
	}
}

func sameIDSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

func sweepMessage(low []domain.Product) string {
	names := make([]string, 0, len(low))
	for _, product := range low {
		names = append(names, product.Name)
	}
	sort.Strings(names)
	const sample = 5
	if len(names) > sample {
		return fmt.Sprintf("%d products are below their reorder threshold, including %s",
			len(names), strings.Join(names[:sample], ", "))
	}
	return fmt.Sprintf("%d products are below their reorder threshold: %s",
		len(names), strings.Join(names, ", "))
}

var (
	_ ports.Service            = (*Service)(nil)
	_ orderports.StockAdjuster = (*Service)(nil)
)
