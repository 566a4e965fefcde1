package http

import (
	"bytes"
	"html/template"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/skillexchange/internal/auth"
	"github.com/mrlokans/skillexchange/internal/entities"
)

func TestTemplates_RenderEveryPage(t *testing.T) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseGlob("../../templates/*.html")
	require.NoError(t, err)

	sessionTime := "Friday 10:00"
	loggedIn := auth.AuthTemplateData{LoggedIn: true, UserID: 1, UserName: "Alice", CSRFToken: "tok"}
	flashes := []auth.Flash{{Category: auth.FlashSuccess, Message: "Welcome back, Alice!"}}

	pages := []struct {
		name     string
		data     gin.H
		contains []string
	}{
		{"index", gin.H{"Auth": auth.AuthTemplateData{}, "Flashes": flashes}, []string{"Get started", "Welcome back, Alice!", "/static/js/script.js"}},
		{"login", gin.H{"Auth": auth.AuthTemplateData{CSRFToken: "tok"}, "Email": "a@example.com"}, []string{`value="a@example.com"`, `name="` + auth.CSRFFieldName + `"`}},
		{"register", gin.H{
			"Auth":   auth.AuthTemplateData{},
			"Skills": []entities.Skill{{ID: 3, Name: "Python Programming", Category: "Programming"}},
			"Name":   "Alice",
		}, []string{`name="teach_skills" value="3"`, `name="learn_skills" value="3"`, `value="Alice"`}},
		{"profile", gin.H{
			"Auth":           loggedIn,
			"User":           &entities.User{ID: 1, Name: "Alice", Email: "alice@example.com", Division: "Engineering", CreatedAt: time.Now()},
			"TeachingSkills": []entities.TaughtSkill{{SkillID: 3, Name: "Python Programming", AvailableTime: "Evenings"}},
			"LearningSkills": []entities.LearnedSkill{},
			"Exchanges": []entities.ExchangeView{{
				ID: 9, Status: entities.ExchangeStatusPending, SkillName: "Python Programming",
				PartnerName: "Bob", Role: entities.RoleTeaching, CreatedAt: time.Now(),
			}},
		}, []string{"Alice", "Evenings", `href="/accept_exchange/9"`, "Logout"}},
		{"browse", gin.H{
			"Auth":        auth.AuthTemplateData{},
			"Skills":      []entities.SkillSummary{{ID: 3, Name: "Python Programming", TeacherCount: 1}},
			"SearchQuery": "py",
		}, []string{`href="/skill/3"`, "1 teacher<", `value="py"`}},
		{"match", gin.H{
			"Auth":     loggedIn,
			"Skill":    &entities.Skill{ID: 3, Name: "Python Programming"},
			"SkillID":  uint(3),
			"Teachers": []entities.SkillTeacher{{UserID: 2, Name: "Bob", Division: "Sales", AvailableTime: "Flexible"}},
		}, []string{`name="teacher_id" value="2"`, `name="skill_id" value="3"`, "Flexible"}},
		{"sessions", gin.H{
			"Auth": loggedIn,
			"Sessions": []entities.ExchangeView{{
				Status: entities.ExchangeStatusAccepted, SkillName: "Python Programming",
				PartnerName: "Bob", PartnerEmail: "bob@example.com", Role: entities.RoleLearning, SessionTime: &sessionTime,
			}},
		}, []string{"mailto:bob@example.com", "Friday 10:00", "Learning"}},
	}

	for _, page := range pages {
		t.Run(page.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tmpl.ExecuteTemplate(&buf, page.name, page.data))
			for _, want := range page.contains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}
