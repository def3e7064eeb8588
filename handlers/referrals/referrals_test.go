package referrals

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Employee{}, &models.Candidate{}, &models.Referral{}, &models.StatusHistory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	utils.DB = db
}

func withUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
	}
}

func newRouter(user models.User) *gin.Engine {
	r := gin.New()
	r.Use(withUser(user))
	r.GET("/referrals", ListReferrals)
	r.POST("/referrals", SubmitReferral)
	r.GET("/referrals/:id", GetReferral)
	r.PUT("/referrals/:id/status", UpdateStatus)
	r.DELETE("/referrals/:id", DeleteReferral)
	r.PUT("/candidates/:id", UpdateCandidate)
	return r
}

func seedUser(t *testing.T, name, email, role string) (models.User, models.Employee) {
	t.Helper()
	user := models.User{Email: email, Password: "x", Name: name, Role: role}
	if err := utils.DB.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	employee := models.Employee{UserID: user.ID, Active: true}
	if err := utils.DB.Create(&employee).Error; err != nil {
		t.Fatalf("employee: %v", err)
	}
	return user, employee
}

func seedReferral(t *testing.T, employee models.Employee, status, document string) models.Referral {
	t.Helper()
	candidate := models.Candidate{
		FullName:       "Carlos Lima",
		Phone:          "(81) 98888-7777",
		Course:         "Law",
		DocumentNumber: document,
	}
	if err := utils.DB.Create(&candidate).Error; err != nil {
		t.Fatalf("candidate: %v", err)
	}
	referral := models.Referral{CandidateID: candidate.ID, EmployeeID: employee.ID, Status: status}
	if err := utils.DB.Create(&referral).Error; err != nil {
		t.Fatalf("referral: %v", err)
	}
	return referral
}

type referralListResponse struct {
	Referrals []models.Referral `json:"referrals"`
}

func TestSubmitAndListRoundTrip(t *testing.T) {
	setupTestDB(t)
	user, _ := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	r := newRouter(user)

	body := `{"full_name":"João da Silva","phone":"81999998888","course":"Law"}`
	req := httptest.NewRequest(http.MethodPost, "/referrals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/referrals", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", w.Code)
	}

	var list referralListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Referrals) != 1 {
		t.Fatalf("expected 1 referral, got %d", len(list.Referrals))
	}

	got := list.Referrals[0]
	if got.Status != models.StatusReceived {
		t.Errorf("status = %q, want %q", got.Status, models.StatusReceived)
	}
	if got.Candidate.FullName != "João da Silva" {
		t.Errorf("name = %q", got.Candidate.FullName)
	}
	if got.Candidate.Phone != "(81) 99999-8888" {
		t.Errorf("phone = %q, want masked form", got.Candidate.Phone)
	}
	if got.Candidate.Course != "Law" {
		t.Errorf("course = %q", got.Candidate.Course)
	}
	if got.Employee.User.Name != "Ana" {
		t.Errorf("referrer = %q, want Ana", got.Employee.User.Name)
	}
}

func TestSubmitRejectsUnknownCourse(t *testing.T) {
	setupTestDB(t)
	user, _ := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	r := newRouter(user)

	body := `{"full_name":"João da Silva","phone":"81999998888","course":"Astrology"}`
	req := httptest.NewRequest(http.MethodPost, "/referrals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}

	var count int64
	utils.DB.Model(&models.Candidate{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no candidate rows, got %d", count)
	}
}

func TestEmployeeSeesOwnReferralsOnly(t *testing.T) {
	setupTestDB(t)
	userA, employeeA := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	_, employeeB := seedUser(t, "Bruno", "bruno@school.edu", models.RoleEmployee)
	admin, _ := seedUser(t, "Root", "root@school.edu", models.RoleAdmin)
	seedReferral(t, employeeA, models.StatusReceived, "")
	seedReferral(t, employeeB, models.StatusReceived, "")

	req := httptest.NewRequest(http.MethodGet, "/referrals", nil)
	w := httptest.NewRecorder()
	newRouter(userA).ServeHTTP(w, req)
	var list referralListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Referrals) != 1 || list.Referrals[0].EmployeeID != employeeA.ID {
		t.Fatalf("employee should see only their own referral, got %d", len(list.Referrals))
	}

	req = httptest.NewRequest(http.MethodGet, "/referrals", nil)
	w = httptest.NewRecorder()
	newRouter(admin).ServeHTTP(w, req)
	list = referralListResponse{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Referrals) != 2 {
		t.Fatalf("admin should see all referrals, got %d", len(list.Referrals))
	}
}

func TestDeleteRemovesReferralButKeepsCandidate(t *testing.T) {
	setupTestDB(t)
	_, employee := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	admin, _ := seedUser(t, "Root", "root@school.edu", models.RoleAdmin)
	referral := seedReferral(t, employee, models.StatusReceived, "")

	req := httptest.NewRequest(http.MethodDelete, "/referrals/"+referral.ID, nil)
	w := httptest.NewRecorder()
	newRouter(admin).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var referralCount, candidateCount int64
	utils.DB.Model(&models.Referral{}).Count(&referralCount)
	utils.DB.Model(&models.Candidate{}).Count(&candidateCount)
	if referralCount != 0 {
		t.Errorf("referral rows = %d, want 0", referralCount)
	}
	if candidateCount != 1 {
		t.Errorf("candidate rows = %d, want 1; deletion must not cascade", candidateCount)
	}
}

func TestEmployeeCannotChangeStatusOrDelete(t *testing.T) {
	setupTestDB(t)
	user, employee := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	referral := seedReferral(t, employee, models.StatusReceived, "")
	r := newRouter(user)

	req := httptest.NewRequest(http.MethodPut, "/referrals/"+referral.ID+"/status", strings.NewReader(`{"status":"Contacted"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status change: expected 403 got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/referrals/"+referral.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("delete: expected 403 got %d", w.Code)
	}

	var stored models.Referral
	if err := utils.DB.Where("id = ?", referral.ID).First(&stored).Error; err != nil {
		t.Fatalf("referral disappeared: %v", err)
	}
	if stored.Status != models.StatusReceived {
		t.Errorf("status = %q, want untouched %q", stored.Status, models.StatusReceived)
	}
}

func TestEnrollmentRequiresDocumentNumber(t *testing.T) {
	setupTestDB(t)
	_, employee := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	admin, _ := seedUser(t, "Root", "root@school.edu", models.RoleAdmin)
	referral := seedReferral(t, employee, models.StatusDocsPending, "")
	r := newRouter(admin)

	// No document on file and none supplied: rejected before any write
	req := httptest.NewRequest(http.MethodPut, "/referrals/"+referral.ID+"/status", strings.NewReader(`{"status":"Enrolled"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d body=%s", w.Code, w.Body.String())
	}

	var stored models.Referral
	utils.DB.Where("id = ?", referral.ID).First(&stored)
	if stored.Status != models.StatusDocsPending {
		t.Fatalf("status = %q, want untouched %q", stored.Status, models.StatusDocsPending)
	}

	// Document supplied with the same action: accepted, stored masked
	body := `{"status":"Enrolled","document_number":"12345678900"}`
	req = httptest.NewRequest(http.MethodPut, "/referrals/"+referral.ID+"/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	utils.DB.Where("id = ?", referral.ID).First(&stored)
	if stored.Status != models.StatusEnrolled {
		t.Errorf("status = %q, want %q", stored.Status, models.StatusEnrolled)
	}
	var candidate models.Candidate
	utils.DB.Where("id = ?", referral.CandidateID).First(&candidate)
	if candidate.DocumentNumber != "123.456.789-00" {
		t.Errorf("document = %q, want masked form", candidate.DocumentNumber)
	}
}

func TestEnrollmentAllowedWhenDocumentOnFile(t *testing.T) {
	setupTestDB(t)
	_, employee := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	admin, _ := seedUser(t, "Root", "root@school.edu", models.RoleAdmin)
	referral := seedReferral(t, employee, models.StatusDocsPending, "123.456.789-00")

	req := httptest.NewRequest(http.MethodPut, "/referrals/"+referral.ID+"/status", strings.NewReader(`{"status":"Enrolled"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter(admin).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestStatusUpdateRejectsUnknownStatus(t *testing.T) {
	setupTestDB(t)
	_, employee := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	admin, _ := seedUser(t, "Root", "root@school.edu", models.RoleAdmin)
	referral := seedReferral(t, employee, models.StatusReceived, "")

	req := httptest.NewRequest(http.MethodPut, "/referrals/"+referral.ID+"/status", strings.NewReader(`{"status":"Graduated"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter(admin).ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestUpdateCandidateFields(t *testing.T) {
	setupTestDB(t)
	_, employee := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	admin, _ := seedUser(t, "Root", "root@school.edu", models.RoleAdmin)
	referral := seedReferral(t, employee, models.StatusReceived, "")

	body := `{"full_name":"Carlos A. Lima","phone":"81911112222","course":"Nursing"}`
	req := httptest.NewRequest(http.MethodPut, "/candidates/"+referral.CandidateID, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newRouter(admin).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	var candidate models.Candidate
	utils.DB.Where("id = ?", referral.CandidateID).First(&candidate)
	if candidate.FullName != "Carlos A. Lima" {
		t.Errorf("name = %q", candidate.FullName)
	}
	if candidate.Phone != "(81) 91111-2222" {
		t.Errorf("phone = %q, want masked form", candidate.Phone)
	}
	if candidate.Course != "Nursing" {
		t.Errorf("course = %q", candidate.Course)
	}
}

func TestEmployeeCannotFetchAnotherEmployeesReferral(t *testing.T) {
	setupTestDB(t)
	userA, _ := seedUser(t, "Ana", "ana@school.edu", models.RoleEmployee)
	_, employeeB := seedUser(t, "Bruno", "bruno@school.edu", models.RoleEmployee)
	referral := seedReferral(t, employeeB, models.StatusReceived, "")

	req := httptest.NewRequest(http.MethodGet, "/referrals/"+referral.ID, nil)
	w := httptest.NewRecorder()
	newRouter(userA).ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
