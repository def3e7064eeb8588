package referrals

import (
	"github.com/gin-gonic/gin"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
)

// CanManage reports whether the caller may change a referral's status, edit
// candidate data, or delete referrals. Every mutating handler evaluates this
// once, before touching the database.
func CanManage(user models.User) bool {
	return user.Role == models.RoleAdmin
}

// EnrollmentAllowed reports whether a transition to Enrolled may proceed: a
// document number must already be on file or supplied with the same action.
// All other transitions are unconditional.
func EnrollmentAllowed(storedDocument, suppliedDocument string) bool {
	return storedDocument != "" || suppliedDocument != ""
}

func currentUser(c *gin.Context) (models.User, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userInterface.(models.User)
	return user, ok
}
