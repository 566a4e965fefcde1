package http

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/skillexchange/internal/auth"
	"github.com/mrlokans/skillexchange/internal/database/exchanges"
	"github.com/mrlokans/skillexchange/internal/entities"
)

// ExchangesController handles requesting and accepting exchanges.
type ExchangesController struct {
	pageRenderer
	store    ExchangeStore
	activity ActivityRecorder
}

func NewExchangesController(sessions *auth.SessionManager, store ExchangeStore, activity ActivityRecorder) *ExchangesController {
	return &ExchangesController{
		pageRenderer: pageRenderer{sessions: sessions},
		store:        store,
		activity:     activity,
	}
}

// RequestExchange creates a pending exchange between the viewer, as
// learner, and the submitted teacher for the submitted skill.
func (controller *ExchangesController) RequestExchange(c *gin.Context) {
	learnerID := auth.GetUserID(c)
	teacherID, okTeacher := parseID(c.PostForm("teacher_id"))
	skillID, okSkill := parseID(c.PostForm("skill_id"))
	if !okTeacher || !okSkill {
		controller.redirectWithFlash(c, "/browse", auth.FlashError, "Invalid request!")
		return
	}

	exchange, err := controller.store.Request(teacherID, learnerID, skillID)
	switch {
	case errors.Is(err, exchanges.ErrExchangeExists):
		controller.flash(c, auth.FlashWarning, "You have already requested this exchange!")
	case err != nil:
		log.Printf("Error requesting exchange (teacher=%d learner=%d skill=%d): %v", teacherID, learnerID, skillID, err)
		controller.flash(c, auth.FlashError, "Error sending request. Please try again.")
	default:
		controller.record(learnerID, entities.ActivityExchangeRequest, exchange.ID,
			fmt.Sprintf("Requested skill %d from user %d", skillID, teacherID))
		controller.flash(c, auth.FlashSuccess, "Exchange request sent successfully!")
	}

	c.Redirect(http.StatusFound, "/profile")
}

// AcceptExchange accepts an exchange the viewer teaches.
func (controller *ExchangesController) AcceptExchange(c *gin.Context) {
	teacherID := auth.GetUserID(c)
	exchangeID, ok := parseID(c.Param("id"))
	if !ok {
		controller.redirectWithFlash(c, "/profile", auth.FlashError, "Exchange not found or unauthorized!")
		return
	}

	err := controller.store.Accept(exchangeID, teacherID)
	switch {
	case errors.Is(err, exchanges.ErrExchangeNotFound):
		controller.flash(c, auth.FlashError, "Exchange not found or unauthorized!")
	case err != nil:
		log.Printf("Error accepting exchange %d for user %d: %v", exchangeID, teacherID, err)
		controller.flash(c, auth.FlashError, "Error accepting exchange. Please try again.")
	default:
		controller.record(teacherID, entities.ActivityExchangeAccept, exchangeID,
			fmt.Sprintf("Accepted exchange %d", exchangeID))
		controller.flash(c, auth.FlashSuccess, "Exchange request accepted!")
	}

	c.Redirect(http.StatusFound, "/profile")
}

func (controller *ExchangesController) record(userID uint, action entities.ActivityAction, exchangeID uint, description string) {
	if controller.activity == nil {
		return
	}
	id := exchangeID
	controller.activity.Record(userID, action, &id, description)
}
