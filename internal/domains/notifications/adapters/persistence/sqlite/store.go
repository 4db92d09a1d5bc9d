// Package sqlite persists the notification log in a per-session SQLite file.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
	"github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
)

var _ ports.Store = (*Store)(nil)

type notificationRecord struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement;column:seq"`
	ID        string    `gorm:"column:id;uniqueIndex;size:64"`
	Type      string    `gorm:"column:type;size:16"`
	Title     string    `gorm:"column:title"`
	Message   string    `gorm:"column:message"`
	ActionURL string    `gorm:"column:action_url"`
	Timestamp time.Time `gorm:"column:timestamp;index"`
	Read      bool      `gorm:"column:read"`
}

func (notificationRecord) TableName() string { return "notifications" }

// Store keeps the notification log in SQLite through gorm.
type Store struct {
	db       *gorm.DB
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

// Open connects to (or creates) the database file and migrates the schema.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite store path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite notification store: %w", err)
	}
	if err := db.AutoMigrate(&notificationRecord{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite notification store: %w", err)
	}
	s := &Store{db: db, capacity: domain.DefaultCapacity, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Append inserts the stamped record and evicts rows beyond capacity.
func (s *Store) Append(ctx context.Context, draft domain.Draft) (*domain.Notification, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	rec := notificationRecord{
		ID:        uuid.NewString(),
		Type:      string(draft.Type),
		Title:     draft.Title,
		Message:   draft.Message,
		ActionURL: draft.ActionURL,
		Timestamp: s.now(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		return tx.
			Where("seq NOT IN (?)", tx.Model(&notificationRecord{}).Select("seq").Order("seq DESC").Limit(s.capacity)).
			Delete(&notificationRecord{}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("append notification: %w", err)
	}
	saved := toDomain(rec)
	return &saved, nil
}

// List returns the log, most recent first.
func (s *Store) List(ctx context.Context) ([]domain.Notification, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var rows []notificationRecord
	if err := s.db.WithContext(ctx).Order("seq DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	records := make([]domain.Notification, 0, len(rows))
	for _, row := range rows {
		records = append(records, toDomain(row))
	}
	return records, nil
}

// MarkRead flags one record as read; repeating it is a no-op.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	result := s.db.WithContext(ctx).Model(&notificationRecord{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&notificationRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("mark notification read: %w", err)
		}
		if count == 0 {
			return ports.ErrNotFound
		}
	}
	return nil
}

// MarkAllRead flags every record as read in one statement.
func (s *Store) MarkAllRead(ctx context.Context) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&notificationRecord{}).Where("read = ?", false).Update("read", true).Error; err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// Clear empties the log.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&notificationRecord{}).Error; err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// UnreadCount counts unread rows.
func (s *Store) UnreadCount(ctx context.Context) (int, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&notificationRecord{}).Where("read = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return int(count), nil
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("sqlite notification store not configured")
	}
	return nil
}

func toDomain(rec notificationRecord) domain.Notification {
	return domain.Notification{
		ID:        rec.ID,
		Type:      domain.Type(rec.Type),
		Title:     rec.Title,
		Message:   rec.Message,
		ActionURL: rec.ActionURL,
		Timestamp: rec.Timestamp,
		Read:      rec.Read,
	}
}
