package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusReceived     = "Received"
	StatusContacted    = "Contacted"
	StatusInterested   = "Interested"
	StatusDocsPending  = "Documents Pending"
	StatusEnrolled     = "Enrolled"
	StatusNotConverted = "Not Converted"
)

// Statuses in pipeline order as presented to clients. Transitions between
// them are unrestricted; only Enrolled carries a precondition.
var Statuses = []string{
	StatusReceived,
	StatusContacted,
	StatusInterested,
	StatusDocsPending,
	StatusEnrolled,
	StatusNotConverted,
}

func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

type Referral struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CandidateID string    `gorm:"size:36;not null" json:"candidate_id"`
	EmployeeID  string    `gorm:"size:36;not null" json:"employee_id"`
	Status      string    `gorm:"not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Candidate   Candidate `gorm:"foreignKey:CandidateID" json:"candidate"`
	Employee    Employee  `gorm:"foreignKey:EmployeeID" json:"employee"`
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
