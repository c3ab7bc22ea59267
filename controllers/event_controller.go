package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-api/models"
	"hotel-api/services"
)

type eventPayload struct {
	Title       *string `json:"title" form:"title"`
	Date        *string `json:"date" form:"date"`
	Location    *string `json:"location" form:"location"`
	Description *string `json:"description" form:"description"`
}

type EventController struct {
	*Resource[models.Event]
}

// Events are listed by event date, soonest first.
func NewEventController(store services.Collection[models.Event], uploader services.Uploader, log *zap.Logger) *EventController {
	return &EventController{Resource: &Resource[models.Event]{
		Name:     "Event",
		Store:    store,
		Uploader: uploader,
		Log:      log,
		Sort:     services.Sort{Column: "date"},
		ErrorKey: "message",
		Decode:   decodeEvent,
		Patch:    patchEvent,
		Image: &ImageRule[models.Event]{
			FormField: "image",
			Column:    "image_url",
			Set:       func(e *models.Event, url string) { e.ImageURL = url },
		},
		View: Envelopes[models.Event]{
			One:     Bare[models.Event](),
			Created: WithMessage[models.Event]("Event created successfully", "event"),
			Updated: WithMessage[models.Event]("Event updated successfully", "event"),
			Deleted: "Event deleted successfully",
		},
	}}
}

func decodeEvent(c *gin.Context) (models.Event, error) {
	var p eventPayload
	if err := bindBody(c, &p); err != nil {
		return models.Event{}, err
	}

	title, ok1 := text(p.Title)
	rawDate, ok2 := text(p.Date)
	if !ok1 || !ok2 {
		return models.Event{}, services.ValidationError{Msg: "title and date are required"}
	}
	date, err := parseDate("date", rawDate)
	if err != nil {
		return models.Event{}, err
	}

	e := models.Event{Title: title, Date: date}
	e.Location, _ = text(p.Location)
	e.Description, _ = text(p.Description)
	return e, nil
}

func patchEvent(c *gin.Context) (services.Fields, error) {
	var p eventPayload
	if err := bindBody(c, &p); err != nil {
		return nil, err
	}

	fields := services.Fields{}
	putText(fields, "title", p.Title)
	putText(fields, "location", p.Location)
	putText(fields, "description", p.Description)
	if err := putDate(fields, "date", "date", p.Date); err != nil {
		return nil, err
	}
	return fields, nil
}
