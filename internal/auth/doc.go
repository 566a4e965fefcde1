// Package auth provides authentication for the web UI.
//
// Users register with an email and password and are identified afterwards
// by a server-side session stored in SQLite. New passwords are hashed with
// bcrypt; accounts carried over from the old deployment keep their SHA-256
// hex digests, which CheckPassword still accepts.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<base64-32-bytes>  # CSRF key, auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h              # Session duration
//	AUTH_BCRYPT_COST=10                    # bcrypt cost factor
//	AUTH_SECURE_COOKIES=false              # HTTPS-only cookies
//	AUTH_MAX_LOGIN_ATTEMPTS=5              # Failed logins before lockout
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	authService := auth.NewService(userRepo, cfg.Auth)
//	sessionManager, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(sessionManager)
//	router.Use(sessionManager.SessionLoadSave(), authMiddleware.Handler())
//
// Extract the viewer in handlers:
//
//	userID := auth.GetUserID(c)  // 0 for anonymous visitors
package auth
