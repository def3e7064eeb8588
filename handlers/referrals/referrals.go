package referrals

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

// ListReferrals returns all referrals for administrators and only the
// caller's own for employees, newest first, with candidate and
// employee→user data embedded.
func ListReferrals(c *gin.Context) {
	user, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	query := utils.DB.
		Preload("Candidate").
		Preload("Employee.User").
		Order("created_at DESC")

	if !CanManage(user) {
		var employee models.Employee
		if err := utils.DB.Where("user_id = ?", user.ID).First(&employee).Error; err != nil {
			// No employee record means no referrals yet
			c.JSON(http.StatusOK, gin.H{"referrals": []models.Referral{}})
			return
		}
		query = query.Where("employee_id = ?", employee.ID)
	}

	var referrals []models.Referral
	if err := query.Find(&referrals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch referrals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"referrals": referrals})
}

// GetReferral returns a single referral with its embedded records.
// Employees may only fetch their own.
func GetReferral(c *gin.Context) {
	user, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	referral, err := loadReferral(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Referral not found"})
		return
	}

	if !CanManage(user) && referral.Employee.UserID != user.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Referral not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"referral": referral})
}

// SubmitReferral creates a candidate and its referral in a single
// transaction, attributed to the caller's employee record.
func SubmitReferral(c *gin.Context) {
	user, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
		Course   string `json:"course"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	if input.FullName == "" || input.Phone == "" || input.Course == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name, phone and course are required."})
		return
	}

	if !models.IsValidCourse(input.Course) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown course."})
		return
	}

	var employee models.Employee
	if err := utils.DB.Where("user_id = ?", user.ID).First(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve employee record"})
		return
	}

	candidate := models.Candidate{
		FullName: input.FullName,
		Phone:    utils.MaskPhone(input.Phone),
		Course:   input.Course,
	}
	referral := models.Referral{
		EmployeeID: employee.ID,
		Status:     models.StatusReceived,
	}

	// Candidate and referral are created together or not at all; a failed
	// referral insert must not leave an orphaned candidate behind.
	err := utils.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&candidate).Error; err != nil {
			return err
		}
		referral.CandidateID = candidate.ID
		return tx.Create(&referral).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit referral"})
		return
	}

	created, err := loadReferral(referral.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch referral"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Referral submitted successfully",
		"referral": created,
	})
}

// DeleteReferral removes the referral row only; the candidate record is
// kept.
func DeleteReferral(c *gin.Context) {
	user, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	if !CanManage(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only administrators can delete referrals"})
		return
	}

	referralID := c.Param("id")
	var referral models.Referral
	if err := utils.DB.Where("id = ?", referralID).First(&referral).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Referral not found"})
		return
	}

	if err := utils.DB.Delete(&referral).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete referral"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Referral deleted successfully"})
}

func loadReferral(id string) (models.Referral, error) {
	var referral models.Referral
	err := utils.DB.
		Preload("Candidate").
		Preload("Employee.User").
		Where("id = ?", id).
		First(&referral).Error
	return referral, err
}
