package deps

import (
	"context"
	"html/template"
	"time"

	"github.com/MrSnakeDoc/reelpanel/internal/logger"
	"github.com/MrSnakeDoc/reelpanel/internal/reelstore"
)

// Pinger checks an optional backing service (the redis substrate).
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time   // for testing, defaults to time.Now
	AllowedHosts    []string           // Host headers allowed to reach ops endpoints
	AllowedCIDRS    []string           // IPs allowed to reach ops endpoints
	TrustProxy      bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Store           *reelstore.Store   // Owner of the reel collection
	Templates       *template.Template // Parsed admin page templates
	Mode            string             // "remote" | "local"
	BackendURL      string             // remote mode only, shown on /infra
	Substrate       Pinger             // local redis substrate, nil otherwise
	ReloadTrigger   chan struct{}      // Channel to trigger a manual reload
	APIRateLimit    int                // read API requests per minute per IP (0 = unlimited)
	MutationBurst   int                // mutation burst per IP
	MutationRefillM int                // mutation tokens per minute per IP
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
