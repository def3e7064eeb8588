package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Candidate struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	FullName       string    `gorm:"not null" json:"full_name"`
	Phone          string    `gorm:"not null" json:"phone"`
	Course         string    `gorm:"not null" json:"course"`
	DocumentNumber string    `json:"document_number"` // set through the status-update flow only
	CreatedAt      time.Time `json:"created_at"`
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
