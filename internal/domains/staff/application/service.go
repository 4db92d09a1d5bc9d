package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	notifdomain "github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
	notifports "github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
	"github.com/orderdesk/orderdesk/internal/domains/staff/domain"
	"github.com/orderdesk/orderdesk/internal/domains/staff/ports"
	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

// ErrInvalidMember signals a draft that violates the directory invariants.
var ErrInvalidMember = errors.New("invalid staff member")

// Service implements the staff directory use cases over the remote gateway.
type Service struct {
	gateway  ports.Gateway
	notifier notifports.Notifier
	logger   *slog.Logger
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

// NewService wires the staff service.
func NewService(gateway ports.Gateway, notifier notifports.Notifier, opts ...Option) *Service {
	s := &Service{
		gateway:  gateway,
		notifier: notifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns the full directory.
func (s *Service) List(ctx context.Context) ([]domain.Member, error) {
	members, err := s.gateway.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

// Get returns one member. The remote directory has no single-member read, so
// the lookup scans the listing.
func (s *Service) Get(ctx context.Context, id string) (*domain.Member, error) {
	members, err := s.gateway.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		if member.ID == id {
			result := member
			return &result, nil
		}
	}
	return nil, ports.ErrNotFound
}

// Create validates the draft and adds the member remotely. Additions are
// routine and do not notify.
func (s *Service) Create(ctx context.Context, draft domain.Draft) (*domain.Member, error) {
	if err := mapDraftError(draft.Validate()); err != nil {
		return nil, err
	}
	member, err := s.gateway.CreateMember(ctx, draft)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update validates the draft and replaces the member remotely.
func (s *Service) Update(ctx context.Context, id string, draft domain.Draft) (*domain.Member, error) {
	if err := mapDraftError(draft.Validate()); err != nil {
		return nil, err
	}
	member, err := s.gateway.UpdateMember(ctx, id, draft)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Delete removes the member remotely and emits one staff notification.
// Orders that referenced the member keep their assignment string; they simply
// point at a directory entry that no longer resolves.
func (s *Service) Delete(ctx context.Context, id string) error {
	member, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gateway.DeleteMember(ctx, id); err != nil {
		return err
	}
	s.notify(ctx, notifdomain.Draft{
		Type:    notifdomain.TypeStaff,
		Title:   fmt.Sprintf("Staff member %s removed", member.Name),
		Message: fmt.Sprintf("%s (%s) was removed from the staff directory", member.Name, member.Email),
	})
	return nil
}

func (s *Service) notify(ctx context.Context, draft notifdomain.Draft) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Notify(ctx, draft); err != nil {
		s.logger.Error("failed to record staff notification",
			slog.String("title", draft.Title),
			slog.String("error", err.Error()))
	}
}

func mapDraftError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, identity.ErrInvalidRole) {
		return fmt.Errorf("%w: %w", ErrInvalidMember, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
