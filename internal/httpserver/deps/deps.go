package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openshelf/shelfd/internal/core"
	"github.com/openshelf/shelfd/internal/logger"
)

// Deps carries everything the route handlers need.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	// Core is the governance/catalog state machine.
	Core *core.Core

	// RedisClient backs the readiness probe; nil when the store is in-memory.
	RedisClient *redis.Client

	// AllowedHosts restricts Host headers; AllowedCIDRS fences the governance
	// endpoints. TrustProxy enables proxy-header IP resolution for both.
	AllowedHosts []string
	AllowedCIDRS []string
	TrustProxy   bool

	// Write-route token bucket per client IP.
	ThrottleBurst  int
	ThrottlePerMin int
}
