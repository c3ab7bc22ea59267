package models

type MenuItem struct {
	Document

	Name        string  `gorm:"size:255;not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Image       string  `gorm:"size:512" json:"image,omitempty"`
}
