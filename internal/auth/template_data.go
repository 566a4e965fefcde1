package auth

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

// AuthTemplateData holds authentication info for templates.
type AuthTemplateData struct {
	LoggedIn  bool   // Whether user is logged in
	UserID    uint   // Current user's ID (0 if not logged in)
	UserName  string // Current user's display name
	CSRFToken string // CSRF token for forms (empty when CSRF is off)
}

// CSRFField renders the hidden form input carrying the CSRF token.
func (a AuthTemplateData) CSRFField() template.HTML {
	if a.CSRFToken == "" {
		return ""
	}
	return template.HTML(`<input type="hidden" name="` + CSRFFieldName + `" value="` +
		template.HTMLEscapeString(a.CSRFToken) + `">`)
}

// GetAuthTemplateData builds the auth block for templates from the request.
func GetAuthTemplateData(c *gin.Context) AuthTemplateData {
	viewer := CurrentViewer(c)
	return AuthTemplateData{
		LoggedIn:  viewer.Authenticated(),
		UserID:    viewer.UserID,
		UserName:  viewer.Name,
		CSRFToken: GetCSRFToken(c),
	}
}

// TemplateData adds the Auth block and any pending flash messages to data.
// Flashes are consumed, so call it once per rendered page.
func TemplateData(c *gin.Context, sm *SessionManager, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Auth"] = GetAuthTemplateData(c)
	if sm != nil {
		data["Flashes"] = sm.PopFlashes(c.Request)
	}
	return data
}
