package advisory

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

// Advisory text is drafted on demand and never persisted. Generation
// failures degrade to fixed fallback strings, so both endpoints always
// answer 200 with some text.

// AnalyzeReferral drafts a short sales-approach analysis for a referral.
func AnalyzeReferral(c *gin.Context) {
	referral, ok := fetchReferral(c)
	if !ok {
		return
	}

	var input struct {
		Notes string `json:"notes"`
	}
	// Notes are optional; an empty or absent body is fine
	c.ShouldBindJSON(&input)

	text := utils.GenerateReferralAnalysis(
		c.Request.Context(),
		referral.Candidate.FullName,
		referral.Candidate.Course,
		input.Notes,
		referral.Status,
	)

	c.JSON(http.StatusOK, gin.H{"analysis": text})
}

// FollowUpMessage drafts a short WhatsApp-style follow-up message for a
// referral.
func FollowUpMessage(c *gin.Context) {
	referral, ok := fetchReferral(c)
	if !ok {
		return
	}

	text := utils.GenerateFollowUpMessage(
		c.Request.Context(),
		referral.Candidate.FullName,
		referral.Candidate.Course,
		referral.Employee.User.Name,
	)

	c.JSON(http.StatusOK, gin.H{"message": text})
}

func fetchReferral(c *gin.Context) (models.Referral, bool) {
	var referral models.Referral
	err := utils.DB.
		Preload("Candidate").
		Preload("Employee.User").
		Where("id = ?", c.Param("id")).
		First(&referral).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Referral not found"})
		return referral, false
	}
	return referral, true
}
