package controllers

import (
	"go.uber.org/zap"

	"hotel-api/models"
	"hotel-api/services"

	"github.com/gin-gonic/gin"
)

type roomPayload struct {
	RoomNumber  *string  `json:"roomNumber" form:"roomNumber"`
	RoomType    *string  `json:"roomType" form:"roomType"`
	Price       *float64 `json:"price" form:"price"`
	Description *string  `json:"description" form:"description"`
	ImageURL    *string  `json:"imageUrl" form:"imageUrl"`
}

// RoomController serves the two room routers. Rooms takes an uploaded image
// file; Catalog trusts an image URL supplied by the caller. Both write the same
// collection.
type RoomController struct {
	Rooms   *Resource[models.Room]
	Catalog *Resource[models.Room]
}

func NewRoomController(store services.Collection[models.Room], uploader services.Uploader, log *zap.Logger) *RoomController {
	unique := &UniqueRule[models.Room]{
		Column:  "room_number",
		Value:   func(r models.Room) any { return r.RoomNumber },
		Message: "Room number already exists",
	}

	rooms := &Resource[models.Room]{
		Name:     "Room",
		Store:    store,
		Uploader: uploader,
		Log:      log,
		Sort:     services.NewestFirst,
		ErrorKey: "message",
		Decode: func(c *gin.Context) (models.Room, error) {
			return decodeRoom(c, false, "All fields including image are required")
		},
		Patch: patchRoom(false),
		Image: &ImageRule[models.Room]{
			FormField: "image",
			Column:    "image_url",
			Required:  true,
			Missing:   "All fields including image are required",
			Set:       func(r *models.Room, url string) { r.ImageURL = url },
		},
		Unique: unique,
		View: Envelopes[models.Room]{
			One:     Wrapped[models.Room]("room"),
			Created: Bare[models.Room](),
			Updated: Wrapped[models.Room]("room"),
			Deleted: "Room deleted successfully",
		},
	}

	catalog := &Resource[models.Room]{
		Name:     "Room",
		Store:    store,
		Log:      log,
		Sort:     services.NewestFirst,
		ErrorKey: "message",
		Decode: func(c *gin.Context) (models.Room, error) {
			return decodeRoom(c, true, "All fields including imageUrl are required")
		},
		Patch:  patchRoom(true),
		Unique: unique,
		View: Envelopes[models.Room]{
			One:     Bare[models.Room](),
			Created: Bare[models.Room](),
			Updated: Wrapped[models.Room]("room"),
			Deleted: "Room deleted successfully",
		},
	}

	return &RoomController{Rooms: rooms, Catalog: catalog}
}

func decodeRoom(c *gin.Context, withURL bool, missing string) (models.Room, error) {
	var p roomPayload
	if err := bindBody(c, &p); err != nil {
		return models.Room{}, err
	}
	p.Price = formValue(c, "price", p.Price)

	number, ok1 := text(p.RoomNumber)
	roomType, ok2 := text(p.RoomType)
	desc, ok3 := text(p.Description)
	url, ok4 := text(p.ImageURL)
	if !ok1 || !ok2 || !ok3 || p.Price == nil || *p.Price <= 0 || (withURL && !ok4) {
		return models.Room{}, services.ValidationError{Msg: missing}
	}

	room := models.Room{
		RoomNumber:  number,
		RoomType:    roomType,
		Price:       *p.Price,
		Description: desc,
	}
	if withURL {
		room.ImageURL = url
	}
	return room, nil
}

// patchRoom keeps the old value for any field that is absent, blank or a zero price.
func patchRoom(withURL bool) func(c *gin.Context) (services.Fields, error) {
	return func(c *gin.Context) (services.Fields, error) {
		var p roomPayload
		if err := bindBody(c, &p); err != nil {
			return nil, err
		}
		p.Price = formValue(c, "price", p.Price)

		fields := services.Fields{}
		putText(fields, "room_number", p.RoomNumber)
		putText(fields, "room_type", p.RoomType)
		putText(fields, "description", p.Description)
		if p.Price != nil && *p.Price > 0 {
			fields["price"] = *p.Price
		}
		if withURL {
			putText(fields, "image_url", p.ImageURL)
		}
		return fields, nil
	}
}
