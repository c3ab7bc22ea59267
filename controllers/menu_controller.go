package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-api/models"
	"hotel-api/services"
)

type menuPayload struct {
	Name        *string  `json:"name" form:"name"`
	Price       *float64 `json:"price" form:"price"`
	Description *string  `json:"description" form:"description"`
}

type MenuController struct {
	*Resource[models.MenuItem]
	files *services.LocalStorage
}

// NewMenuController wires the menu router. Deleting an item also removes its
// image when the image lives in files.
func NewMenuController(store services.Collection[models.MenuItem], uploader services.Uploader, files *services.LocalStorage, log *zap.Logger) *MenuController {
	ctrl := &MenuController{files: files}
	ctrl.Resource = &Resource[models.MenuItem]{
		Name:     "Menu item",
		Store:    store,
		Uploader: uploader,
		Log:      log,
		Sort:     services.NewestFirst,
		ErrorKey: "message",
		Decode:   decodeMenuItem,
		Patch:    patchMenuItem,
		Image: &ImageRule[models.MenuItem]{
			FormField: "image",
			Column:    "image",
			Set:       func(m *models.MenuItem, url string) { m.Image = url },
		},
		View: Envelopes[models.MenuItem]{
			One:     Bare[models.MenuItem](),
			Created: Bare[models.MenuItem](),
			Updated: Bare[models.MenuItem](),
			Deleted: "Menu item deleted successfully",
		},
		AfterDelete: ctrl.removeImage,
	}
	return ctrl
}

// removeImage is best effort: the record is already gone.
func (ctrl *MenuController) removeImage(_ context.Context, item models.MenuItem) {
	if ctrl.files == nil || item.Image == "" {
		return
	}
	if err := ctrl.files.Remove(item.Image); err != nil {
		ctrl.Log.Warn("remove menu image", zap.String("id", item.ID), zap.String("image", item.Image), zap.Error(err))
	}
}

func decodeMenuItem(c *gin.Context) (models.MenuItem, error) {
	var p menuPayload
	if err := bindBody(c, &p); err != nil {
		return models.MenuItem{}, err
	}
	p.Price = formValue(c, "price", p.Price)

	name, ok := text(p.Name)
	if !ok || p.Price == nil {
		return models.MenuItem{}, services.ValidationError{Msg: "name and price are required"}
	}
	if *p.Price < 0 {
		return models.MenuItem{}, services.ValidationError{Field: "price", Msg: "must not be negative"}
	}

	item := models.MenuItem{Name: name, Price: *p.Price}
	item.Description, _ = text(p.Description)
	return item, nil
}

func patchMenuItem(c *gin.Context) (services.Fields, error) {
	var p menuPayload
	if err := bindBody(c, &p); err != nil {
		return nil, err
	}
	p.Price = formValue(c, "price", p.Price)

	fields := services.Fields{}
	putText(fields, "name", p.Name)
	putText(fields, "description", p.Description)
	if p.Price != nil {
		if *p.Price < 0 {
			return nil, services.ValidationError{Field: "price", Msg: "must not be negative"}
		}
		fields["price"] = *p.Price
	}
	return fields, nil
}
