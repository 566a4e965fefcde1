package http

import (
	"html/template"

	"github.com/mrlokans/skillexchange/internal/auth"
	"github.com/mrlokans/skillexchange/internal/config"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Stores
	Profiles  ProfileStore
	Skills    SkillCatalog
	Exchanges ExchangeStore
	Stats     StatsReader
	Database  Pinger

	// Activity feed and recorder (optional)
	ActivityFeed     ActivityFeed
	ActivityRecorder ActivityRecorder

	// Live user tracking
	Presence PresenceTracker

	// Activity retention job, reported by /health (optional)
	ActivityCleanup CleanupSchedule

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// UI paths. Templates, when set, is used instead of parsing TemplatesPath.
	TemplatesPath string
	StaticPath    string
	Templates     *template.Template

	// Application info
	Version string
}
