// Package alert provides AlertSurface adapters for OS-level notification mirroring.
package alert

import (
	"context"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/orderdesk/orderdesk/internal/domains/notifications/ports"
)

var _ ports.AlertSurface = (*DesktopSurface)(nil)

// DesktopSurface shows notifications through the host desktop environment.
// Permission starts undecided; the first request probes delivery once and the
// outcome sticks for the process lifetime.
type DesktopSurface struct {
	mu      sync.Mutex
	state   ports.Permission
	appName string
}

// NewDesktopSurface builds the desktop adapter.
func NewDesktopSurface(appName string) *DesktopSurface {
	if appName == "" {
		appName = "orderdesk"
	}
	return &DesktopSurface{state: ports.PermissionUndecided, appName: appName}
}

// Permission reports the current consent state.
func (s *DesktopSurface) Permission() ports.Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RequestPermission probes the desktop once; an environment that cannot show
// alerts resolves to denied and is never probed again.
func (s *DesktopSurface) RequestPermission(_ context.Context) ports.Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != ports.PermissionUndecided {
		return s.state
	}
	if err := beeep.Notify(s.appName, "Desktop alerts enabled", ""); err != nil {
		s.state = ports.PermissionDenied
	} else {
		s.state = ports.PermissionGranted
	}
	return s.state
}

// TryShow delivers one alert, reporting success without propagating failures.
func (s *DesktopSurface) TryShow(title, message string) bool {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	if state != ports.PermissionGranted {
		return false
	}
	return beeep.Notify(title, message, "") == nil
}
