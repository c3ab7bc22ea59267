package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-api/middleware"
	"hotel-api/models"
	"hotel-api/services"
)

type bookingPayload struct {
	GuestName *string `json:"guestName" form:"guestName"`
	Email     *string `json:"email" form:"email"`
	Phone     *string `json:"phone" form:"phone"`
	RoomType  *string `json:"roomType" form:"roomType"`
	CheckIn   *string `json:"checkIn" form:"checkIn"`
	CheckOut  *string `json:"checkOut" form:"checkOut"`
	Guests    *int    `json:"guests" form:"guests"`
}

var bookingRoomTypes = map[string]bool{
	models.RoomTypeSingle: true,
	models.RoomTypeDouble: true,
	models.RoomTypeSuite:  true,
}

type BookingController struct {
	*Resource[models.Booking]
}

func NewBookingController(store services.Collection[models.Booking], log *zap.Logger) *BookingController {
	return &BookingController{Resource: &Resource[models.Booking]{
		Name:     "Booking",
		Store:    store,
		Log:      log,
		Sort:     services.NewestFirst,
		ErrorKey: "error",
		NotFound: map[string]string{"fetching": "Not found", "deleting": "Not found"},
		Decode:   decodeBooking,
		Patch:    patchBooking,
		View: Envelopes[models.Booking]{
			One:     Bare[models.Booking](),
			Created: Bare[models.Booking](),
			Updated: Bare[models.Booking](),
			Deleted: "Deleted",
		},
	}}
}

// MyBookings lists the bookings owned by the authenticated caller.
func (ctrl *BookingController) MyBookings(c *gin.Context) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		ctrl.fail(c, "fetching", services.ErrUnauthorized)
		return
	}
	ctrl.ListWhere(c, services.Filter{"user_id": id.UserID})
}

func decodeBooking(c *gin.Context) (models.Booking, error) {
	var p bookingPayload
	if err := bindBody(c, &p); err != nil {
		return models.Booking{}, err
	}
	p.Guests = formValue(c, "guests", p.Guests)

	name, ok1 := text(p.GuestName)
	email, ok2 := text(p.Email)
	checkIn, ok3 := text(p.CheckIn)
	checkOut, ok4 := text(p.CheckOut)
	if !ok1 || !ok2 || !ok3 || !ok4 || p.Guests == nil {
		return models.Booking{}, services.ValidationError{Msg: "guestName, email, checkIn, checkOut and guests are required"}
	}
	if *p.Guests < 1 {
		return models.Booking{}, services.ValidationError{Field: "guests", Msg: "must be at least 1"}
	}

	roomType := models.RoomTypeSingle
	if rt, ok := text(p.RoomType); ok {
		if !bookingRoomTypes[rt] {
			return models.Booking{}, services.ValidationError{Field: "roomType", Msg: "must be one of Single, Double, Suite"}
		}
		roomType = rt
	}

	in, err := parseDate("checkIn", checkIn)
	if err != nil {
		return models.Booking{}, err
	}
	out, err := parseDate("checkOut", checkOut)
	if err != nil {
		return models.Booking{}, err
	}

	b := models.Booking{
		GuestName: name,
		Email:     email,
		RoomType:  roomType,
		CheckIn:   in,
		CheckOut:  out,
		Guests:    *p.Guests,
	}
	b.Phone, _ = text(p.Phone)
	if id, ok := middleware.CurrentIdentity(c); ok {
		b.OwnerID = id.UserID
	}
	return b, nil
}

func patchBooking(c *gin.Context) (services.Fields, error) {
	var p bookingPayload
	if err := bindBody(c, &p); err != nil {
		return nil, err
	}
	p.Guests = formValue(c, "guests", p.Guests)

	fields := services.Fields{}
	putText(fields, "guest_name", p.GuestName)
	putText(fields, "email", p.Email)
	putText(fields, "phone", p.Phone)
	if rt, ok := text(p.RoomType); ok {
		if !bookingRoomTypes[rt] {
			return nil, services.ValidationError{Field: "roomType", Msg: "must be one of Single, Double, Suite"}
		}
		fields["room_type"] = rt
	}
	if err := putDate(fields, "check_in", "checkIn", p.CheckIn); err != nil {
		return nil, err
	}
	if err := putDate(fields, "check_out", "checkOut", p.CheckOut); err != nil {
		return nil, err
	}
	if p.Guests != nil {
		if *p.Guests < 1 {
			return nil, services.ValidationError{Field: "guests", Msg: "must be at least 1"}
		}
		fields["guests"] = *p.Guests
	}
	return fields, nil
}
