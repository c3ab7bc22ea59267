package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-api/models"
	"hotel-api/services"
)

type orderItemPayload struct {
	MenuItemID string   `json:"menuItemId"`
	Name       string   `json:"name"`
	Price      *float64 `json:"price"`
	Quantity   *int     `json:"quantity"`
}

// orderPayload has no totalPrice; the total is computed from the items.
type orderPayload struct {
	Items []orderItemPayload `json:"items"`
}

type OrderController struct {
	*Resource[models.Order]
}

func NewOrderController(store services.Collection[models.Order], log *zap.Logger) *OrderController {
	return &OrderController{Resource: &Resource[models.Order]{
		Name:     "Order",
		Store:    store,
		Log:      log,
		Sort:     services.NewestFirst,
		ErrorKey: "error",
		Decode:   decodeOrder,
		Patch:    patchOrder,
		View: Envelopes[models.Order]{
			One:     Bare[models.Order](),
			Created: Bare[models.Order](),
			Updated: Bare[models.Order](),
			Deleted: "Order canceled successfully",
		},
	}}
}

func decodeOrder(c *gin.Context) (models.Order, error) {
	items, err := bindOrderItems(c)
	if err != nil {
		return models.Order{}, err
	}
	return models.Order{Items: items, TotalPrice: models.Total(items)}, nil
}

// patchOrder replaces the whole item list; an order update without items is rejected.
func patchOrder(c *gin.Context) (services.Fields, error) {
	items, err := bindOrderItems(c)
	if err != nil {
		return nil, err
	}
	return services.Fields{
		"items":       models.OrderItems(items),
		"total_price": models.Total(items),
	}, nil
}

func bindOrderItems(c *gin.Context) ([]models.OrderItem, error) {
	var p orderPayload
	if err := bindJSONBody(c, &p); err != nil {
		return nil, err
	}
	if len(p.Items) == 0 {
		return nil, services.ValidationError{Msg: "No items in the order"}
	}

	items := make([]models.OrderItem, 0, len(p.Items))
	for _, in := range p.Items {
		if in.Price == nil || *in.Price < 0 {
			return nil, services.ValidationError{Field: "items.price", Msg: "every item needs a price of zero or more"}
		}
		qty := 1
		if in.Quantity != nil {
			if *in.Quantity < 0 {
				return nil, services.ValidationError{Field: "items.quantity", Msg: "must not be negative"}
			}
			if *in.Quantity > 0 {
				qty = *in.Quantity
			}
		}
		items = append(items, models.OrderItem{
			MenuItemID: in.MenuItemID,
			Name:       in.Name,
			Price:      *in.Price,
			Quantity:   qty,
		})
	}
	return items, nil
}
