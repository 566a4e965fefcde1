package auth

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/skillexchange/internal/config"
	"github.com/mrlokans/skillexchange/internal/entities"
)

// SkillLister supplies the skill checkboxes on the registration form.
type SkillLister interface {
	ListAll() ([]entities.Skill, error)
}

// ActivityRecorder records user actions for the activity feed.
type ActivityRecorder interface {
	Record(userID uint, action entities.ActivityAction, exchangeID *uint, description string)
}

// AuthController handles login, registration and logout.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	skills         SkillLister
	activity       ActivityRecorder
	rateLimiter    *RateLimiter
}

// NewAuthController creates a new authentication controller. activity may
// be nil.
func NewAuthController(service *Service, sessionManager *SessionManager, skills SkillLister, activity ActivityRecorder, cfg config.Auth) *AuthController {
	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		skills:         skills,
		activity:       activity,
		rateLimiter:    rateLimiter,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.GET("/logout", ac.Logout)
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *AuthController) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	ac.render(c, http.StatusOK, "login", gin.H{"Title": "Login"})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	clientIP := c.ClientIP()
	data := gin.H{"Title": "Login", "Email": email}

	if email == "" || password == "" {
		ac.sessionManager.AddFlash(c.Request, FlashError, "Please fill in all fields!")
		ac.render(c, http.StatusOK, "login", data)
		return
	}

	if allowed, retryAfter := ac.rateLimiter.Allow(clientIP, email); !allowed {
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		ac.sessionManager.AddFlash(c.Request, FlashError, "Too many login attempts. Please try again later.")
		ac.render(c, http.StatusTooManyRequests, "login", data)
		return
	}

	user, err := ac.service.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			ac.rateLimiter.RecordFailure(clientIP, email)
			ac.sessionManager.AddFlash(c.Request, FlashError, "Invalid email or password!")
		} else {
			log.Printf("Login error for %s: %v", email, err)
			ac.sessionManager.AddFlash(c.Request, FlashError, "Login failed. Please try again.")
		}
		ac.render(c, http.StatusOK, "login", data)
		return
	}

	ac.rateLimiter.RecordSuccess(clientIP, email)

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("Failed to create session for user %d: %v", user.ID, err)
		ac.sessionManager.AddFlash(c.Request, FlashError, "Login failed. Please try again.")
		ac.render(c, http.StatusOK, "login", data)
		return
	}

	ac.record(user.ID, entities.ActivityLogin, "Logged in")
	ac.sessionManager.AddFlash(c.Request, FlashSuccess, fmt.Sprintf("Welcome back, %s!", user.Name))
	c.Redirect(http.StatusFound, "/profile")
}

// RegisterPage renders the registration form with every skill.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	ac.renderRegister(c, http.StatusOK, gin.H{})
}

// Register handles the registration form submission.
func (ac *AuthController) Register(c *gin.Context) {
	input := RegistrationInput{
		Name:            c.PostForm("name"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
		Division:        c.PostForm("division"),
		TeachSkills:     parseSkillIDs(c.PostFormArray("teach_skills")),
		LearnSkills:     parseSkillIDs(c.PostFormArray("learn_skills")),
		AvailableTime:   c.PostForm("available_time"),
	}

	user, err := ac.service.Register(input)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			ac.redirectToRegister(c, "Please fill in all required fields!")
		case errors.Is(err, ErrPasswordMismatch):
			ac.redirectToRegister(c, "Passwords do not match!")
		case errors.Is(err, ErrPasswordTooShort):
			ac.redirectToRegister(c, fmt.Sprintf("Password must be at least %d characters long!", MinPasswordLength))
		case errors.Is(err, ErrEmailTaken):
			ac.sessionManager.AddFlash(c.Request, FlashError, "Email already exists! Please try logging in instead.")
			ac.renderRegister(c, http.StatusOK, registerFormData(input))
		default:
			log.Printf("Registration failed for %s: %v", input.Email, err)
			ac.sessionManager.AddFlash(c.Request, FlashError, "Registration failed. Please try again.")
			ac.renderRegister(c, http.StatusOK, registerFormData(input))
		}
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("Failed to create session for new user %d: %v", user.ID, err)
		ac.sessionManager.AddFlash(c.Request, FlashWarning, "Account created. Please log in.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ac.record(user.ID, entities.ActivityRegister, "Joined the network")
	ac.sessionManager.AddFlash(c.Request, FlashSuccess, "Registration successful! Welcome to Skill Exchange Network!")
	c.Redirect(http.StatusFound, "/profile")
}

// Logout destroys the session and redirects home.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	ac.sessionManager.AddFlash(c.Request, FlashInfo, "You have been logged out successfully!")
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) redirectToRegister(c *gin.Context, message string) {
	ac.sessionManager.AddFlash(c.Request, FlashError, message)
	c.Redirect(http.StatusFound, "/register")
}

func (ac *AuthController) renderRegister(c *gin.Context, status int, data gin.H) {
	skills, err := ac.skills.ListAll()
	if err != nil {
		log.Printf("Failed to load skills for registration: %v", err)
	}
	data["Title"] = "Register"
	data["Skills"] = skills
	ac.render(c, status, "register", data)
}

func (ac *AuthController) render(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, TemplateData(c, ac.sessionManager, data))
}

func (ac *AuthController) record(userID uint, action entities.ActivityAction, description string) {
	if ac.activity != nil {
		ac.activity.Record(userID, action, nil, description)
	}
}

// registerFormData keeps the non-secret fields so the form can be refilled.
func registerFormData(input RegistrationInput) gin.H {
	return gin.H{
		"Name":          strings.TrimSpace(input.Name),
		"Email":         strings.TrimSpace(input.Email),
		"Division":      strings.TrimSpace(input.Division),
		"AvailableTime": input.AvailableTime,
	}
}

// parseSkillIDs converts submitted checkbox values, skipping anything that
// isn't a positive integer.
func parseSkillIDs(values []string) []uint {
	ids := make([]uint, 0, len(values))
	seen := make(map[uint]bool, len(values))
	for _, v := range values {
		id, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
		if err != nil || id == 0 {
			continue
		}
		if seen[uint(id)] {
			continue
		}
		seen[uint(id)] = true
		ids = append(ids, uint(id))
	}
	return ids
}
