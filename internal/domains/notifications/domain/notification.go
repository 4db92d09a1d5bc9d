package domain

import (
	"errors"
	"strings"
	"time"
)

// Type categorizes a notification by the entity it concerns.
type Type string

const (
	TypeOrder   Type = "order"
	TypeProduct Type = "product"
	TypeStaff   Type = "staff"
	TypeSystem  Type = "system"
)

// DefaultCapacity is how many notifications the log retains, oldest evicted first.
const DefaultCapacity = 50

var (
	ErrInvalidType  = errors.New("notification type is invalid")
	ErrEmptyTitle   = errors.New("notification title is required")
	ErrEmptyMessage = errors.New("notification message is required")
)

// Draft is the payload a producer hands to the dispatcher. The store assigns
// identity and timestamp; producers never supply either.
type Draft struct {
	Type      Type
	Title     string
	Message   string
	ActionURL string
}

// Validate checks the draft against the closed type enumeration and required fields.
func (d Draft) Validate() error {
	if !isValidType(d.Type) {
		return ErrInvalidType
	}
	if strings.TrimSpace(d.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(d.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// Notification is a stored record, immutable except for the Read flag.
type Notification struct {
	ID        string
	Type      Type
	Title     string
	Message   string
	ActionURL string
	Timestamp time.Time
	Read      bool
}

func isValidType(t Type) bool {
	switch t {
	case TypeOrder, TypeProduct, TypeStaff, TypeSystem:
		return true
	default:
		return false
	}
}
