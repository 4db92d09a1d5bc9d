package ports

import "context"

// Permission is the tri-state consent for OS-level alerts.
type Permission string

const (
	PermissionGranted   Permission = "granted"
	PermissionDenied    Permission = "denied"
	PermissionUndecided Permission = "undecided"
)

// AlertSurface mirrors notifications to the host OS when the environment
// supports it. TryShow reports delivery without ever failing the caller.
type AlertSurface interface {
	Permission() Permission
	RequestPermission(ctx context.Context) Permission
	TryShow(title, message string) bool
}

// NoopAlertSurface is a safe default that never shows anything.
type NoopAlertSurface struct{}

func (NoopAlertSurface) Permission() Permission                       { return PermissionDenied }
func (NoopAlertSurface) RequestPermission(context.Context) Permission { return PermissionDenied }
func (NoopAlertSurface) TryShow(string, string) bool                  { return false }
