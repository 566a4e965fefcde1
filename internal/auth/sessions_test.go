package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mrlokans/skillexchange/internal/config"
	"github.com/mrlokans/skillexchange/internal/entities"
)

func setupSessionManager(t *testing.T) *SessionManager {
	t.Helper()

	db := setupTestDB(t)
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}

	cfg := config.Auth{
		SessionLifetime: 24 * time.Hour,
		SecureCookies:   false,
	}

	sm, err := NewSessionManager(sqlDB, cfg)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	return sm
}

func TestNewSessionManager(t *testing.T) {
	sm := setupSessionManager(t)

	if sm.SessionManager == nil {
		t.Fatal("inner session manager should not be nil")
	}

	// Verify cookie configuration
	if sm.Cookie.Name != "session" {
		t.Errorf("Expected cookie name 'session', got '%s'", sm.Cookie.Name)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("Cookie should be HttpOnly")
	}
	if sm.Cookie.SameSite != http.SameSiteStrictMode {
		t.Errorf("Expected SameSiteStrictMode, got %v", sm.Cookie.SameSite)
	}
	if sm.Lifetime != 24*time.Hour {
		t.Errorf("Expected lifetime 24h, got %v", sm.Lifetime)
	}
}

func TestSessionManager_CreateAndRetrieveSession(t *testing.T) {
	sm := setupSessionManager(t)

	user := &entities.User{ID: 123, Name: "Ada", Email: "ada@example.com"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sm.GetUserID(r) != 0 {
			t.Error("Should not be authenticated before login")
		}

		if err := sm.CreateSession(r, user); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if got := sm.GetUserID(r); got != user.ID {
			t.Errorf("Expected user ID %d, got %d", user.ID, got)
		}
		if got := sm.GetUserName(r); got != user.Name {
			t.Errorf("Expected user name '%s', got '%s'", user.Name, got)
		}
		if sm.GetUserID(r) == 0 {
			t.Error("Should be authenticated after login")
		}

		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if len(rr.Result().Cookies()) == 0 {
		t.Error("Expected a session cookie to be set")
	}
}

func TestSessionManager_DestroySession(t *testing.T) {
	sm := setupSessionManager(t)

	user := &entities.User{ID: 789, Name: "Grace"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sm.CreateSession(r, user); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := sm.DestroySession(r); err != nil {
			t.Fatalf("failed to destroy session: %v", err)
		}

		if sm.GetUserID(r) != 0 {
			t.Error("Should not be authenticated after session destroy")
		}
		if sm.GetUserName(r) != "" {
			t.Error("User name should be cleared after destroy")
		}

		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(rr, req)
}

func TestSessionManager_Flashes(t *testing.T) {
	sm := setupSessionManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if flashes := sm.PopFlashes(r); len(flashes) != 0 {
			t.Errorf("Expected no flashes, got %v", flashes)
		}

		sm.AddFlash(r, FlashSuccess, "Saved!")
		sm.AddFlash(r, FlashWarning, "Careful!")

		flashes := sm.PopFlashes(r)
		if len(flashes) != 2 {
			t.Fatalf("Expected 2 flashes, got %d", len(flashes))
		}
		if flashes[0] != (Flash{Category: FlashSuccess, Message: "Saved!"}) {
			t.Errorf("Unexpected first flash: %+v", flashes[0])
		}
		if flashes[1].Category != FlashWarning {
			t.Errorf("Unexpected second flash category: %s", flashes[1].Category)
		}

		if again := sm.PopFlashes(r); len(again) != 0 {
			t.Errorf("Flashes should be cleared after pop, got %v", again)
		}

		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(rr, req)
}

func TestSessionManager_FlashSurvivesDestroy(t *testing.T) {
	sm := setupSessionManager(t)

	// first request logs in
	loginRR := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sm.CreateSession(r, &entities.User{ID: 1, Name: "Ada"}); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(loginRR, httptest.NewRequest(http.MethodGet, "/login", nil))

	// second request logs out and leaves a message
	logoutReq := httptest.NewRequest(http.MethodGet, "/logout", nil)
	for _, c := range loginRR.Result().Cookies() {
		logoutReq.AddCookie(c)
	}
	logoutRR := httptest.NewRecorder()
	sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sm.DestroySession(r); err != nil {
			t.Fatalf("failed to destroy session: %v", err)
		}
		sm.AddFlash(r, FlashInfo, "Bye")
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(logoutRR, logoutReq)

	// third request sees the message but no identity
	nextReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range logoutRR.Result().Cookies() {
		nextReq.AddCookie(c)
	}
	sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sm.GetUserID(r) != 0 {
			t.Error("Should not be authenticated after logout")
		}
		flashes := sm.PopFlashes(r)
		if len(flashes) != 1 || flashes[0].Message != "Bye" {
			t.Errorf("Expected logout flash, got %v", flashes)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(httptest.NewRecorder(), nextReq)
}

func TestSessionManager_SecureCookieConfig(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}

	sm, err := NewSessionManager(sqlDB, config.Auth{SessionLifetime: time.Hour, SecureCookies: true})
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	if !sm.Cookie.Secure {
		t.Error("Cookie.Secure should be true when SecureCookies is enabled")
	}
}
