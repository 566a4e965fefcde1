package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      Pinger
	cleanup CleanupSchedule
	version string
}

// NewHealthController creates the health endpoints. cleanup may be nil.
func NewHealthController(db Pinger, cleanup CleanupSchedule, version string) *HealthController {
	return &HealthController{
		db:      db,
		cleanup: cleanup,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	// Informational; does not affect status
	if h.cleanup != nil {
		if next := h.cleanup.GetNextRunTime(); next != nil {
			checks["activity_cleanup"] = "next run " + next.Format(time.RFC3339)
		} else {
			checks["activity_cleanup"] = "not scheduled"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
