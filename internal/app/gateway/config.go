package gateway

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	"github.com/orderdesk/orderdesk/internal/shared/identity"
)

// StoreBackend selects where the notification log lives.
type StoreBackend string

const (
	StoreFile   StoreBackend = "file"
	StoreSQLite StoreBackend = "sqlite"
	StoreMemory StoreBackend = "memory"
)

// Config carries environment-driven settings for the dashboard daemon.
type Config struct {
	Port          string
	RemoteBaseURL string
	RemoteToken   string

	Actor identity.Actor

	StateDir     string
	StoreBackend StoreBackend

	RedisAddr string

	SweepInterval time.Duration

	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool

	DesktopAlertsDisabled bool
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	role, err := identity.ParseRole(envDefault("ORDERDESK_ACTOR_ROLE", string(identity.RoleAdmin)))
	if err != nil {
		return Config{}, fmt.Errorf("ORDERDESK_ACTOR_ROLE: %w", err)
	}

	cfg := Config{
		Port:          envDefault("PORT", "8080"),
		RemoteBaseURL: envDefault("ORDERDESK_REMOTE_URL", "http://localhost:9000"),
		RemoteToken:   strings.TrimSpace(os.Getenv("ORDERDESK_REMOTE_TOKEN")),
		Actor: identity.Actor{
			ID:   envDefault("ORDERDESK_ACTOR_ID", "local-admin"),
			Name: envDefault("ORDERDESK_ACTOR_NAME", "Local Admin"),
			Role: role,
		},
		StateDir:              envDefault("ORDERDESK_STATE_DIR", defaultStateDir()),
		StoreBackend:          StoreBackend(envDefault("ORDERDESK_STORE", string(StoreFile))),
		RedisAddr:             strings.TrimSpace(os.Getenv("ORDERDESK_REDIS_ADDR")),
		TemporalAddress:       envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:     envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:      isTruthy(envDefault("TEMPORAL_DISABLED", "1")),
		DesktopAlertsDisabled: isTruthy(os.Getenv("ORDERDESK_NO_DESKTOP_ALERTS")),
	}

	switch cfg.StoreBackend {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return Config{}, fmt.Errorf("ORDERDESK_STORE must be one of file, sqlite, memory")
	}

	if raw := strings.TrimSpace(os.Getenv("ORDERDESK_SWEEP_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			return Config{}, fmt.Errorf("ORDERDESK_SWEEP_INTERVAL_MINUTES must be a non-negative integer")
		}
		cfg.SweepInterval = time.Duration(minutes) * time.Minute
	}

	return cfg, nil
}

func defaultStateDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".orderdesk")
	}
	return ".orderdesk"
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
