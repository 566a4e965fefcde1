package http

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/skillexchange/internal/auth"
	"github.com/mrlokans/skillexchange/internal/entities"
)

// UIController serves the server-rendered pages.
type UIController struct {
	pageRenderer
	profiles  ProfileStore
	skills    SkillCatalog
	exchanges ExchangeStore
}

func NewUIController(sessions *auth.SessionManager, profiles ProfileStore, skills SkillCatalog, exchanges ExchangeStore) *UIController {
	return &UIController{
		pageRenderer: pageRenderer{sessions: sessions},
		profiles:     profiles,
		skills:       skills,
		exchanges:    exchanges,
	}
}

func (controller *UIController) HomePage(c *gin.Context) {
	controller.render(c, "index", gin.H{"Title": "Home"})
}

// ProfilePage shows the logged-in user's skills and exchanges. A session
// pointing at a user that no longer exists is cleared.
func (controller *UIController) ProfilePage(c *gin.Context) {
	viewer := auth.CurrentViewer(c)

	user, err := controller.profiles.GetByID(viewer.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if controller.sessions != nil {
			if err := controller.sessions.DestroySession(c.Request); err != nil {
				log.Printf("Failed to destroy stale session for user %d: %v", viewer.UserID, err)
			}
		}
		controller.redirectWithFlash(c, "/login", auth.FlashError, "User not found!")
		return
	}
	if err != nil {
		controller.profileError(c, viewer.UserID, err)
		return
	}

	teaching, err := controller.profiles.TeachingSkills(user.ID)
	if err != nil {
		controller.profileError(c, user.ID, err)
		return
	}
	learning, err := controller.profiles.LearningSkills(user.ID)
	if err != nil {
		controller.profileError(c, user.ID, err)
		return
	}
	exchanges, err := controller.exchanges.ForUser(user.ID)
	if err != nil {
		controller.profileError(c, user.ID, err)
		return
	}

	controller.render(c, "profile", gin.H{
		"Title":          "Profile",
		"User":           user,
		"TeachingSkills": teaching,
		"LearningSkills": learning,
		"Exchanges":      exchanges,
	})
}

func (controller *UIController) profileError(c *gin.Context, userID uint, err error) {
	log.Printf("Error loading profile for user %d: %v", userID, err)
	controller.redirectWithFlash(c, "/", auth.FlashError, "Error loading profile. Please try again.")
}

// BrowsePage lists skills by how many people teach them.
func (controller *UIController) BrowsePage(c *gin.Context) {
	search := c.Query("search")

	skills, err := controller.skills.Browse(search)
	if err != nil {
		log.Printf("Error browsing skills (search=%q): %v", search, err)
		controller.flash(c, auth.FlashError, "Error browsing skills. Please try again.")
		skills = []entities.SkillSummary{}
	}

	controller.render(c, "browse", gin.H{
		"Title":       "Browse Skills",
		"Skills":      skills,
		"SearchQuery": search,
	})
}

// SkillPage lists the teachers of one skill, leaving out the viewer.
func (controller *UIController) SkillPage(c *gin.Context) {
	skillID, ok := parseID(c.Param("id"))
	if !ok {
		controller.redirectWithFlash(c, "/browse", auth.FlashError, "Skill not found!")
		return
	}

	skill, err := controller.skills.GetByID(skillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		controller.redirectWithFlash(c, "/browse", auth.FlashError, "Skill not found!")
		return
	}
	if err != nil {
		log.Printf("Error loading skill %d: %v", skillID, err)
		controller.redirectWithFlash(c, "/browse", auth.FlashError, "Error loading teachers. Please try again.")
		return
	}

	teachers, err := controller.skills.Teachers(skillID, auth.GetUserID(c))
	if err != nil {
		log.Printf("Error loading teachers for skill %d: %v", skillID, err)
		controller.redirectWithFlash(c, "/browse", auth.FlashError, "Error loading teachers. Please try again.")
		return
	}

	controller.render(c, "match", gin.H{
		"Title":    skill.Name,
		"Skill":    skill,
		"SkillID":  skillID,
		"Teachers": teachers,
	})
}

// SessionsPage lists the viewer's accepted exchanges.
func (controller *UIController) SessionsPage(c *gin.Context) {
	userID := auth.GetUserID(c)

	sessions, err := controller.exchanges.AcceptedForUser(userID)
	if err != nil {
		log.Printf("Error loading sessions for user %d: %v", userID, err)
		controller.flash(c, auth.FlashError, "Error loading sessions. Please try again.")
		sessions = []entities.ExchangeView{}
	}

	controller.render(c, "sessions", gin.H{
		"Title":    "My Sessions",
		"Sessions": sessions,
	})
}
