package http

import (
	"html/template"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/skillexchange/internal/auth"
)

// templateFuncs are available to every page template.
var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
}

// NewRouter creates and configures the HTTP router with all endpoints.
// The returned stop function releases background resources held by the
// handlers (the login rate limiter).
func NewRouter(cfg RouterConfig) (*gin.Engine, func()) {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware(31536000))
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	authMiddleware := auth.NewMiddleware(cfg.SessionManager)
	router.Use(authMiddleware.Handler())

	if cfg.Presence != nil {
		router.Use(PresenceMiddleware(cfg.Presence))
	}

	if cfg.Templates != nil {
		router.SetHTMLTemplate(cfg.Templates)
	} else {
		tmpl := template.Must(template.New("").Funcs(templateFuncs).ParseGlob(cfg.TemplatesPath + "/*.html"))
		router.SetHTMLTemplate(tmpl)
	}

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	stop := func() {}
	if cfg.AuthService != nil && cfg.SessionManager != nil {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.Skills, cfg.ActivityRecorder, cfg.AuthConfig)
		authController.RegisterRoutes(router)
		stop = authController.Stop
	} else {
		log.Printf("Auth routes disabled: no auth service or session manager configured")
	}

	health := NewHealthController(cfg.Database, cfg.ActivityCleanup, cfg.Version)
	ui := NewUIController(cfg.SessionManager, cfg.Profiles, cfg.Skills, cfg.Exchanges)
	exchangesController := NewExchangesController(cfg.SessionManager, cfg.Exchanges, cfg.ActivityRecorder)
	api := NewAPIController(cfg.Stats, cfg.Presence, cfg.ActivityFeed)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// Public pages
	router.GET("/", ui.HomePage)
	router.GET("/browse", ui.BrowsePage)
	router.GET("/skill/:id", ui.SkillPage)

	// Pages that need a logged-in user
	router.GET("/profile", authMiddleware.RequireLogin("Please log in to access your profile!"), ui.ProfilePage)
	router.GET("/sessions", authMiddleware.RequireLogin("Please log in to view sessions!"), ui.SessionsPage)
	router.POST("/request_exchange", authMiddleware.RequireLogin("Please log in to request exchanges!"), exchangesController.RequestExchange)
	router.GET("/accept_exchange/:id", authMiddleware.RequireLogin("Please log in first!"), exchangesController.AcceptExchange)

	// JSON API
	router.GET("/api/stats", api.Stats)
	router.GET("/api/live-users", api.LiveUsers)
	router.GET("/api/activity", authMiddleware.RequireLogin(""), api.Activity)

	return router, stop
}

// PresenceMiddleware marks the logged-in viewer as active on every request.
// It must run after the auth middleware.
func PresenceMiddleware(tracker PresenceTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if viewer := auth.CurrentViewer(c); viewer.Authenticated() {
			tracker.Touch(viewer.UserID)
		}
		c.Next()
	}
}
