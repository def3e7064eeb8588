package referrals

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

// UpdateCandidate overwrites the editable candidate fields (name, phone,
// course). The document number is settable only through the status-update
// flow.
func UpdateCandidate(c *gin.Context) {
	user, exists := currentUser(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	if !CanManage(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only administrators can edit candidate data"})
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

	var candidate models.Candidate
	if err := utils.DB.Where("id = ?", c.Param("id")).First(&candidate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Candidate not found"})
		return
	}

	candidate.FullName = input.FullName
	candidate.Phone = utils.MaskPhone(input.Phone)
	candidate.Course = input.Course

	if err := utils.DB.Save(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update candidate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Candidate updated successfully",
		"candidate": candidate,
	})
}
