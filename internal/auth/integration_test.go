package auth

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/skillexchange/internal/config"
	"github.com/mrlokans/skillexchange/internal/database"
	"github.com/mrlokans/skillexchange/internal/database/skills"
	"github.com/mrlokans/skillexchange/internal/database/users"
	"github.com/mrlokans/skillexchange/internal/entities"
)

const testTemplates = `
{{define "flashes"}}{{range .Flashes}}[{{.Category}}] {{.Message}}|{{end}}{{end}}
{{define "login"}}LOGIN email={{.Email}} {{template "flashes" .}}{{end}}
{{define "register"}}REGISTER skills={{len .Skills}} name={{.Name}} {{template "flashes" .}}{{end}}
`

var testSite = &url.URL{Scheme: "http", Host: "example.com", Path: "/"}

type recordedActivity struct {
	userID uint
	action entities.ActivityAction
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedActivity
}

func (f *fakeRecorder) Record(userID uint, action entities.ActivityAction, _ *uint, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedActivity{userID: userID, action: action})
}

func (f *fakeRecorder) actions() []entities.ActivityAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.ActivityAction, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.action)
	}
	return out
}

type testApp struct {
	t        *testing.T
	router   *gin.Engine
	db       *database.Database
	jar      *cookiejar.Jar
	recorder *fakeRecorder
}

func setupTestApp(t *testing.T, maxAttempts int) *testApp {
	t.Helper()

	db := setupTestDB(t)
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}

	cfg := config.Auth{
		SessionLifetime:  24 * time.Hour,
		BcryptCost:       4,
		MaxLoginAttempts: maxAttempts,
	}

	sm, err := NewSessionManager(sqlDB, cfg)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	recorder := &fakeRecorder{}
	svc := NewService(users.NewRepository(db.DB), cfg)
	controller := NewAuthController(svc, sm, skills.NewRepository(db.DB), recorder, cfg)
	t.Cleanup(controller.Stop)

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))
	router.Use(sm.SessionLoadSave())
	router.Use(NewMiddleware(sm).Handler())
	controller.RegisterRoutes(router)

	router.GET("/whoami", func(c *gin.Context) {
		viewer := CurrentViewer(c)
		c.JSON(http.StatusOK, gin.H{"user_id": viewer.UserID, "name": viewer.Name})
	})
	router.GET("/flashes", func(c *gin.Context) {
		c.JSON(http.StatusOK, sm.PopFlashes(c.Request))
	})

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}

	return &testApp{t: t, router: router, db: db, jar: jar, recorder: recorder}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range a.jar.Cookies(testSite) {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	a.jar.SetCookies(testSite, rr.Result().Cookies())
	return rr
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) whoami() (uint, string) {
	a.t.Helper()
	var body struct {
		UserID uint   `json:"user_id"`
		Name   string `json:"name"`
	}
	rr := a.get("/whoami")
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		a.t.Fatalf("failed to decode whoami: %v", err)
	}
	return body.UserID, body.Name
}

func (a *testApp) flashes() []Flash {
	a.t.Helper()
	var flashes []Flash
	rr := a.get("/flashes")
	if err := json.Unmarshal(rr.Body.Bytes(), &flashes); err != nil {
		a.t.Fatalf("failed to decode flashes: %v", err)
	}
	return flashes
}

func registrationForm() url.Values {
	return url.Values{
		"name":             {"Ada Lovelace"},
		"email":            {"ada@example.com"},
		"password":         {"secret99"},
		"confirm_password": {"secret99"},
		"division":         {"Engineering"},
	}
}

func expectRedirect(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rr.Code != http.StatusFound {
		t.Fatalf("Expected 302, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

func expectFlash(t *testing.T, flashes []Flash, category, message string) {
	t.Helper()
	for _, f := range flashes {
		if f.Category == category && f.Message == message {
			return
		}
	}
	t.Errorf("Expected [%s] %q among %+v", category, message, flashes)
}

func TestIntegration_RegisterPageListsSkills(t *testing.T) {
	app := setupTestApp(t, 5)

	rr := app.get("/register")

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "skills=16") {
		t.Errorf("Expected all seeded skills, got %q", rr.Body.String())
	}
}

func TestIntegration_RegisterLoginLogoutFlow(t *testing.T) {
	app := setupTestApp(t, 5)

	skillRepo := skills.NewRepository(app.db.DB)
	all, err := skillRepo.ListAll()
	if err != nil {
		t.Fatalf("failed to list skills: %v", err)
	}

	form := registrationForm()
	form["teach_skills"] = []string{strconv.Itoa(int(all[0].ID)), "not-a-number"}
	form["learn_skills"] = []string{strconv.Itoa(int(all[1].ID))}

	rr := app.post("/register", form)
	expectRedirect(t, rr, "/profile")

	userID, name := app.whoami()
	if userID == 0 || name != "Ada Lovelace" {
		t.Fatalf("Expected to be logged in as Ada, got %d %q", userID, name)
	}
	expectFlash(t, app.flashes(), FlashSuccess, "Registration successful! Welcome to Skill Exchange Network!")

	userRepo := users.NewRepository(app.db.DB)
	teaching, err := userRepo.TeachingSkills(userID)
	if err != nil {
		t.Fatalf("failed to load teaching skills: %v", err)
	}
	if len(teaching) != 1 {
		t.Errorf("Expected 1 taught skill, got %d", len(teaching))
	}

	rr = app.get("/logout")
	expectRedirect(t, rr, "/")
	if id, _ := app.whoami(); id != 0 {
		t.Errorf("Expected anonymous after logout, got user %d", id)
	}
	expectFlash(t, app.flashes(), FlashInfo, "You have been logged out successfully!")

	rr = app.post("/login", url.Values{"email": {"  ada@example.com "}, "password": {"secret99"}})
	expectRedirect(t, rr, "/profile")
	if id, _ := app.whoami(); id != userID {
		t.Errorf("Expected user %d after login, got %d", userID, id)
	}
	expectFlash(t, app.flashes(), FlashSuccess, "Welcome back, Ada Lovelace!")

	actions := app.recorder.actions()
	if len(actions) != 2 || actions[0] != entities.ActivityRegister || actions[1] != entities.ActivityLogin {
		t.Errorf("Unexpected recorded activity: %v", actions)
	}
}

func TestIntegration_RegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(url.Values)
		message string
	}{
		{
			name:    "missing division",
			modify:  func(f url.Values) { f.Set("division", "  ") },
			message: "Please fill in all required fields!",
		},
		{
			name:    "passwords differ",
			modify:  func(f url.Values) { f.Set("confirm_password", "secret98") },
			message: "Passwords do not match!",
		},
		{
			name: "password too short",
			modify: func(f url.Values) {
				f.Set("password", "abc12")
				f.Set("confirm_password", "abc12")
			},
			message: "Password must be at least 6 characters long!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t, 5)
			form := registrationForm()
			tt.modify(form)

			rr := app.post("/register", form)

			expectRedirect(t, rr, "/register")
			expectFlash(t, app.flashes(), FlashError, tt.message)
			if id, _ := app.whoami(); id != 0 {
				t.Errorf("Should not be logged in, got user %d", id)
			}
		})
	}
}

func TestIntegration_RegisterDuplicateEmail(t *testing.T) {
	app := setupTestApp(t, 5)

	expectRedirect(t, app.post("/register", registrationForm()), "/profile")
	app.get("/logout")
	app.flashes()

	form := registrationForm()
	form.Set("name", "Imposter")
	form.Set("email", "ada@example.com")
	rr := app.post("/register", form)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected form to be re-rendered, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Email already exists! Please try logging in instead.") {
		t.Errorf("Expected duplicate email flash, got %q", body)
	}
	if !strings.Contains(body, "name=Imposter") {
		t.Errorf("Expected submitted name to be kept, got %q", body)
	}
}

func TestIntegration_LoginErrors(t *testing.T) {
	app := setupTestApp(t, 5)
	expectRedirect(t, app.post("/register", registrationForm()), "/profile")
	app.get("/logout")
	app.flashes()

	rr := app.post("/login", url.Values{"email": {"ada@example.com"}})
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Please fill in all fields!") {
		t.Errorf("Expected missing fields message, got %d %q", rr.Code, rr.Body.String())
	}

	rr = app.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"wrong-pass"}})
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Invalid email or password!") {
		t.Errorf("Expected invalid credentials message, got %d %q", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "email=ada@example.com") {
		t.Errorf("Expected email to be kept in the form, got %q", rr.Body.String())
	}

	rr = app.post("/login", url.Values{"email": {"nobody@example.com"}, "password": {"secret99"}})
	if !strings.Contains(rr.Body.String(), "Invalid email or password!") {
		t.Errorf("Unknown email should look like a bad password, got %q", rr.Body.String())
	}

	if id, _ := app.whoami(); id != 0 {
		t.Errorf("Should not be logged in, got user %d", id)
	}
}

func TestIntegration_LoginRateLimited(t *testing.T) {
	app := setupTestApp(t, 2)
	expectRedirect(t, app.post("/register", registrationForm()), "/profile")
	app.get("/logout")
	app.flashes()

	bad := url.Values{"email": {"ada@example.com"}, "password": {"wrong-pass"}}
	app.post("/login", bad)
	app.post("/login", bad)

	rr := app.post("/login", url.Values{"email": {"ada@example.com"}, "password": {"secret99"}})
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 while locked out, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
	if id, _ := app.whoami(); id != 0 {
		t.Errorf("Locked out login must not create a session, got user %d", id)
	}
}

func TestParseSkillIDs(t *testing.T) {
	got := parseSkillIDs([]string{"3", " 1 ", "abc", "0", "-2", "3", ""})
	want := []uint{3, 1}

	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}
