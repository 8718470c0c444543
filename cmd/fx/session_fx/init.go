package session_fx

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/fx"

	"voyago/pkg/memcache"
)

var Module = fx.Provide(
	ProvideSessionStore,
	ProvideSessionConfig,
)

// SessionConfig scopes how long a planning session (and its token) stays valid.
type SessionConfig struct {
	TTL time.Duration
}

func ProvideSessionStore() memcache.PlanSessionStore {
	return memcache.NewPlanSessions()
}

func ProvideSessionConfig() SessionConfig {
	minutes := 120
	if v := os.Getenv("PLAN_SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minutes = n
		}
	}
	return SessionConfig{TTL: time.Duration(minutes) * time.Minute}
}
