package http

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/skillexchange/internal/auth"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondInternalError logs the error and sends a 500 response carrying
// the error text.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

// --- Page Helpers ---

// pageRenderer renders named templates with the auth block and pending
// flashes merged into the data.
type pageRenderer struct {
	sessions *auth.SessionManager
}

func (p pageRenderer) render(c *gin.Context, name string, data gin.H) {
	c.HTML(http.StatusOK, name, auth.TemplateData(c, p.sessions, data))
}

func (p pageRenderer) flash(c *gin.Context, category, message string) {
	if p.sessions != nil {
		p.sessions.AddFlash(c.Request, category, message)
	}
}

// redirectWithFlash queues a flash message and redirects with 302.
func (p pageRenderer) redirectWithFlash(c *gin.Context, location, category, message string) {
	p.flash(c, category, message)
	c.Redirect(http.StatusFound, location)
}

// --- Parameter Parsing ---

// parseID parses a positive integer ID.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
