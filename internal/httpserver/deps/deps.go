package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atshaw/quill/internal/auth"
	"github.com/atshaw/quill/internal/blog"
	"github.com/atshaw/quill/internal/logger"
	"github.com/atshaw/quill/internal/web"
)

// Deps carries everything the routes need. Handlers hold no state of their
// own; all persistence sits behind the blog service.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Blog     *blog.Service      // post and bookmark lifecycle
	Gate     *auth.Gate         // identity-provider handshake
	Sessions *auth.SessionCodec // signed session cookie codec
	Web      *web.Renderer      // html page rendering

	RedisClient *redis.Client // for health reporting only

	PageSize     int      // posts per feed page
	AllowedHosts []string // optional Host header allowlist
	TrustProxy   bool     // true behind a trusted reverse proxy

	LoginBurst     int // login rate limit: bucket size
	LoginPerMinute int // login rate limit: refill per IP per minute
}
