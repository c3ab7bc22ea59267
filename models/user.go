package models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	Document

	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"uniqueIndex;size:150" json:"email"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	Role     string `gorm:"size:32;default:user" json:"role"`
}
