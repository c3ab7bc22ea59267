package models

import (
	"gorm.io/datatypes"
)

// OrderItem is a line of an order. MenuItemID is a weak reference; the name and
// price are copied at order time.
type OrderItem struct {
	MenuItemID string  `json:"menuItemId,omitempty"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type Order struct {
	Document

	Items      datatypes.JSONSlice[OrderItem] `gorm:"column:items" json:"items"`
	TotalPrice float64                        `gorm:"column:total_price" json:"totalPrice"`
}

// OrderItems converts items to the JSON column type.
func OrderItems(items []OrderItem) datatypes.JSONSlice[OrderItem] {
	return datatypes.JSONSlice[OrderItem](items)
}

// Total sums price times quantity over the given items.
func Total(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
