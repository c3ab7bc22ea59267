package models

import "time"

type Event struct {
	Document

	Title       string    `gorm:"size:255;not null" json:"title"`
	Date        time.Time `gorm:"column:date;index" json:"date"`
	Location    string    `gorm:"size:255" json:"location"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"column:image_url;size:512" json:"imageUrl"`
}
