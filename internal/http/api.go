package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/skillexchange/internal/auth"
	"github.com/mrlokans/skillexchange/internal/entities"
)

// ActivityFeedSize is how many events /api/activity returns.
const ActivityFeedSize = 20

type LiveUsersResponse struct {
	LiveUsers int `json:"live_users"`
}

type ActivityResponse struct {
	Events []entities.ActivityEvent `json:"events"`
}

// APIController serves the JSON endpoints.
type APIController struct {
	stats    StatsReader
	presence PresenceTracker
	feed     ActivityFeed
}

func NewAPIController(stats StatsReader, presence PresenceTracker, feed ActivityFeed) *APIController {
	return &APIController{
		stats:    stats,
		presence: presence,
		feed:     feed,
	}
}

// Stats returns user, skill and exchange counts.
func (controller *APIController) Stats(c *gin.Context) {
	counts, err := controller.stats.Counts()
	if err != nil {
		respondInternalError(c, err, "stats")
		return
	}
	c.JSON(http.StatusOK, counts)
}

// LiveUsers returns the approximate number of people using the site.
func (controller *APIController) LiveUsers(c *gin.Context) {
	authenticated := auth.CurrentViewer(c).Authenticated()

	count := 1
	if controller.presence != nil {
		count = controller.presence.LiveCount(authenticated)
	}
	c.JSON(http.StatusOK, LiveUsersResponse{LiveUsers: count})
}

// Activity returns the viewer's most recent activity events.
func (controller *APIController) Activity(c *gin.Context) {
	events := []entities.ActivityEvent{}
	if controller.feed != nil {
		recent, err := controller.feed.RecentForUser(auth.GetUserID(c), ActivityFeedSize)
		if err != nil {
			respondInternalError(c, err, "activity feed")
			return
		}
		if recent != nil {
			events = recent
		}
	}
	c.JSON(http.StatusOK, ActivityResponse{Events: events})
}
