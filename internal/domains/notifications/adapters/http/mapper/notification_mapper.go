// Package mapper translates between the dashboard's notification JSON
// surface and the domain model.
package mapper

import (
	"time"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/domain"
)

// Notification is the HTTP representation of one in-app record.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ActionURL string    `json:"actionUrl,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// ListResponse pairs the record list with its derived unread count.
type ListResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

// FromDomain maps a domain notification into its HTTP representation.
func FromDomain(notification domain.Notification) Notification {
	return Notification{
		ID:        notification.ID,
		Type:      string(notification.Type),
		Title:     notification.Title,
		Message:   notification.Message,
		ActionURL: notification.ActionURL,
		Timestamp: notification.Timestamp,
		Read:      notification.Read,
	}
}

// FromDomainList maps a slice of domain notifications.
func FromDomainList(notifications []domain.Notification) []Notification {
	result := make([]Notification, 0, len(notifications))
	for _, notification := range notifications {
		result = append(result, FromDomain(notification))
	}
	return result
}
