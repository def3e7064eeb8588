package stats

import (
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

// Summary returns the dashboard counters, recomputed from the caller's
// visible referrals on every request.
func Summary(c *gin.Context) {
	referrals, ok := visibleReferrals(c)
	if !ok {
		return
	}

	summary := Summarize(referrals)

	c.JSON(http.StatusOK, gin.H{
		"total":           summary.Total,
		"contacted":       summary.Contacted,
		"enrolled":        summary.Enrolled,
		"conversion_rate": summary.ConversionRate,
	})
}

// Ranking returns the per-employee leaderboard over the caller's visible
// referrals.
func Ranking(c *gin.Context) {
	referrals, ok := visibleReferrals(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"ranking": Rank(referrals)})
}

type SummaryData struct {
	Total          int `json:"total"`
	Contacted      int `json:"contacted"`
	Enrolled       int `json:"enrolled"`
	ConversionRate int `json:"conversion_rate"`
}

// Summarize counts totals, per-status tallies and the conversion percentage
// with a single pass over the list. Conversion is 0 when the list is empty.
func Summarize(referrals []models.Referral) SummaryData {
	var s SummaryData
	s.Total = len(referrals)
	for _, r := range referrals {
		switch r.Status {
		case models.StatusContacted:
			s.Contacted++
		case models.StatusEnrolled:
			s.Enrolled++
		}
	}
	if s.Total > 0 {
		s.ConversionRate = int(math.Round(float64(s.Enrolled) * 100 / float64(s.Total)))
	}
	return s
}

type RankingEntry struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Total      int    `json:"total"`
	Enrolled   int    `json:"enrolled"`
	BarPercent int    `json:"bar_percent"`
}

// Rank groups referrals by employee and orders the result by enrolled count
// descending. Ties keep the order employees were first encountered in. The
// bar width is scaled against the leader's enrolled count, guarding the
// zero-enrollment leader.
func Rank(referrals []models.Referral) []RankingEntry {
	index := make(map[string]int)
	entries := []RankingEntry{}

	for _, r := range referrals {
		i, seen := index[r.EmployeeID]
		if !seen {
			i = len(entries)
			index[r.EmployeeID] = i
			entries = append(entries, RankingEntry{
				EmployeeID: r.EmployeeID,
				Name:       r.Employee.User.Name,
			})
		}
		entries[i].Total++
		if r.Status == models.StatusEnrolled {
			entries[i].Enrolled++
		}
	}

	// Stable sort keeps equal enrolled counts in encounter order
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Enrolled > entries[j].Enrolled
	})

	if len(entries) > 0 {
		leader := entries[0].Enrolled
		if leader == 0 {
			leader = 1
		}
		for i := range entries {
			entries[i].BarPercent = int(math.Round(float64(entries[i].Enrolled) * 100 / float64(leader)))
		}
	}

	return entries
}

// visibleReferrals fetches the same role-filtered set the referral list
// serves: everything for administrators, own referrals for employees.
func visibleReferrals(c *gin.Context) ([]models.Referral, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return nil, false
	}
	user := userInterface.(models.User)

	query := utils.DB.
		Preload("Employee.User").
		Order("created_at DESC")

	if user.Role != models.RoleAdmin {
		var employee models.Employee
		if err := utils.DB.Where("user_id = ?", user.ID).First(&employee).Error; err != nil {
			return []models.Referral{}, true
		}
		query = query.Where("employee_id = ?", employee.ID)
	}

	var referrals []models.Referral
	if err := query.Find(&referrals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch referrals"})
		return nil, false
	}

	return referrals, true
}
