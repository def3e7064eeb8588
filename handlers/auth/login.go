package auth

import (
	"log"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a valid email and password."})
		return
	}

	var user models.User
	if err := utils.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	// First login: provision the profile with a display name derived from the
	// email local part and the default employee role. Roles are never
	// auto-escalated here.
	if user.Name == "" {
		user.Name = displayNameFromEmail(user.Email)
		if user.Role == "" {
			user.Role = models.RoleEmployee
		}
		if err := utils.DB.Save(&user).Error; err != nil {
			log.Printf("Failed to provision profile for %s: %v", user.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision user profile."})
			return
		}
	}

	// Referrals are attributed to the employee record, not the user profile.
	// FirstOrCreate keyed by user id makes racing first logins collapse onto
	// the unique index instead of duplicating rows.
	var employee models.Employee
	if err := utils.DB.Where(models.Employee{UserID: user.ID}).
		Attrs(models.Employee{Active: true}).
		FirstOrCreate(&employee).Error; err != nil {
		log.Printf("Failed to provision employee record for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to provision employee record."})
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful.",
		"token":         accessToken,
		"refresh_token": refreshToken,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// Logout handles user sign-out. Tokens are stateless, so there is nothing to
// invalidate server-side; the client discards its session.
func Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful.",
	})
}

func displayNameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	if local == "" {
		return "User"
	}
	first, size := utf8.DecodeRuneInString(local)
	return string(unicode.ToUpper(first)) + local[size:]
}
