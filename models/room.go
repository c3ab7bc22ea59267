package models

type Room struct {
	Document

	// Unique index backs up the pre-insert duplicate check.
	RoomNumber  string  `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50);not null"`
	RoomType    string  `json:"roomType" gorm:"column:room_type;type:varchar(100);not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Description string  `json:"description" gorm:"type:text"`
	ImageURL    string  `json:"imageUrl" gorm:"column:image_url;type:varchar(512)"`
}
