package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
	"github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
)

var _ ports.Store = (*Store)(nil)

// Store provides an in-memory notification log for development and tests.
type Store struct {
	mu       sync.RWMutex
	records  []domain.Notification
	capacity int
	now      func() time.Time
}

// Option configures the store.
type Option func(*Store)

// WithCapacity overrides the retained record limit.
func WithCapacity(capacity int) Option {
	return func(s *Store) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// NewStore constructs an empty in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{capacity: domain.DefaultCapacity, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// WithClock overrides the time source for deterministic testing.
func (s *Store) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Append stamps the record with store time, prepends it, and truncates to capacity.
func (s *Store) Append(_ context.Context, draft domain.Draft) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := domain.Notification{
		ID:        uuid.NewString(),
		Type:      draft.Type,
		Title:     draft.Title,
		Message:   draft.Message,
		ActionURL: draft.ActionURL,
		Timestamp: s.now(),
	}
	s.records = append([]domain.Notification{record}, s.records...)
	if len(s.records) > s.capacity {
		s.records = s.records[:s.capacity]
	}
	saved := record
	return &saved, nil
}

// List returns a copy of the log, most recent first.
func (s *Store) List(_ context.Context) ([]domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Notification{}, s.records...), nil
}

// MarkRead flags the record as read; already-read records are left untouched.
func (s *Store) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Read = true
			return nil
		}
	}
	return ports.ErrNotFound
}

// MarkAllRead flags every record as read in one pass.
func (s *Store) MarkAllRead(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		s.records[i].Read = true
	}
	return nil
}

// Clear empties the log.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// UnreadCount counts unread records in the live set.
func (s *Store) UnreadCount(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for i := range s.records {
		if !s.records[i].Read {
			count++
		}
	}
	return count, nil
}
