package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document carries the identity and timestamps shared by every stored record.
// IDs are generated on create and never supplied by callers.
type Document struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d Document) RecordID() string {
	return d.ID
}

// EnsureID assigns a fresh id and creation time when they are missing.
func (d *Document) EnsureID() {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	d.EnsureID()
	return nil
}
