package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusHistory is an append-only audit trail for referral status changes.
// The table is migrated but no mutation path writes to it yet.
type StatusHistory struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	ReferralID string    `gorm:"size:36;not null" json:"referral_id"`
	Status     string    `gorm:"not null" json:"status"`
	ChangedBy  string    `gorm:"size:36" json:"changed_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *StatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
