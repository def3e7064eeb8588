package referrals

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

// UpdateStatus moves a referral through the pipeline. Transitions are
// unrestricted except Enrolled, which requires a document number either on
// file or supplied in the same request. Document number and status are
// written in one transaction.
func UpdateStatus(c *gin.Context) {
	user, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	if !CanManage(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only administrators can change a referral's status"})
		return
	}

	var input struct {
		Status         string `json:"status"`
		DocumentNumber string `json:"document_number"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	if !models.IsValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status."})
		return
	}

	referral, err := loadReferral(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Referral not found"})
		return
	}

	document := ""
	if input.DocumentNumber != "" {
		document = utils.MaskDocument(input.DocumentNumber)
	}

	if input.Status == models.StatusEnrolled && !EnrollmentAllowed(referral.Candidate.DocumentNumber, document) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "A document number is required for the Enrolled status."})
		return
	}

	err = utils.DB.Transaction(func(tx *gorm.DB) error {
		if document != "" {
			if err := tx.Model(&models.Candidate{}).
				Where("id = ?", referral.CandidateID).
				Update("document_number", document).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Referral{}).
			Where("id = ?", referral.ID).
			Update("status", input.Status).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	// Re-read so the response reflects server truth, not a locally patched
	// copy.
	updated, err := loadReferral(referral.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch referral"})
		return
	}

	if updated.Status == models.StatusEnrolled {
		utils.SendEnrollmentEmail(updated.Employee.User.Email, updated.Candidate.FullName, updated.Candidate.Course)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Status updated successfully",
		"referral": updated,
	})
}
