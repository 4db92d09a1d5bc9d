// Package file persists the notification log as a capped JSON array on disk,
// the canonical per-session store.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
	"github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
)

var _ ports.Store = (*Store)(nil)

// record is the on-disk layout. Timestamps travel as RFC 3339 strings.
type record struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ActionURL string `json:"actionUrl,omitempty"`
	Timestamp string `json:"timestamp"`
	Read      bool   `json:"read"`
}

// Store is a file-backed notification log with write-through persistence.
// Lifecycle: construct, Load, mutate, Close.
type Store struct {
	mu       sync.Mutex
	path     string
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

// NewStore builds a store writing to the given path.
func NewStore(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("notification store path is required")
	}
	s := &Store{path: path, capacity: domain.DefaultCapacity, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// WithClock overrides the time source for deterministic testing.
func (s *Store) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Load reads the persisted log. A missing file is an empty log. Records whose
// timestamps cannot be parsed are dropped individually; one corrupt entry
// never discards the rest.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.records = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("read notification log: %w", err)
	}
	var raw []record
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode notification log: %w", err)
	}
	records := make([]domain.Notification, 0, len(raw))
	for _, r := range raw {
		ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
		if err != nil {
			continue
		}
		records = append(records, domain.Notification{
			ID:        r.ID,
			Type:      domain.Type(r.Type),
			Title:     r.Title,
			Message:   r.Message,
			ActionURL: r.ActionURL,
			Timestamp: ts,
			Read:      r.Read,
		})
	}
	if len(records) > s.capacity {
		records = records[:s.capacity]
	}
	s.records = records
	return nil
}

// Close flushes the log one final time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// Append stamps the record with store time, prepends it, truncates to
// capacity, and writes through.
func (s *Store) Append(_ context.Context, draft domain.Draft) (*domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := domain.Notification{
		ID:        uuid.NewString(),
		Type:      draft.Type,
		Title:     draft.Title,
		Message:   draft.Message,
		ActionURL: draft.ActionURL,
		Timestamp: s.now(),
	}
	s.records = append([]domain.Notification{stored}, s.records...)
	if len(s.records) > s.capacity {
		s.records = s.records[:s.capacity]
	}
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	saved := stored
	return &saved, nil
}

// List returns a copy of the log, most recent first.
func (s *Store) List(_ context.Context) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Notification{}, s.records...), nil
}

// MarkRead flags one record as read; a second call is a no-op.
func (s *Store) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			if s.records[i].Read {
				return nil
			}
			s.records[i].Read = true
			return s.persistLocked()
		}
	}
	return ports.ErrNotFound
}

// MarkAllRead flags every record as read in one atomic write.
func (s *Store) MarkAllRead(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		s.records[i].Read = true
	}
	return s.persistLocked()
}

// Clear empties the log.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return s.persistLocked()
}

// UnreadCount counts unread records in the live set.
func (s *Store) UnreadCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range s.records {
		if !s.records[i].Read {
			count++
		}
	}
	return count, nil
}

// persistLocked writes the full log via temp-file rename so a crash mid-write
// never leaves a truncated log behind.
func (s *Store) persistLocked() error {
	raw := make([]record, 0, len(s.records))
	for _, n := range s.records {
		raw = append(raw, record{
			ID:        n.ID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			ActionURL: n.ActionURL,
			Timestamp: n.Timestamp.Format(time.RFC3339Nano),
			Read:      n.Read,
		})
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notification log: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create notification log dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".notifications-*.json")
	if err != nil {
		return fmt.Errorf("create notification log temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write notification log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close notification log temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace notification log: %w", err)
	}
	return nil
}
