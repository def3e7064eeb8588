package referrals

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
)

// ListCourses serves the fixed course list the creation form offers,
// together with the pipeline statuses in display order.
func ListCourses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"courses":  models.Courses,
		"statuses": models.Statuses,
	})
}
