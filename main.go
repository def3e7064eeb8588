package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/uninassauauditorio-tech/indica-uninassau/handlers/advisory"
	"github.com/uninassauauditorio-tech/indica-uninassau/handlers/auth"
	"github.com/uninassauauditorio-tech/indica-uninassau/handlers/referrals"
	"github.com/uninassauauditorio-tech/indica-uninassau/handlers/stats"
	"github.com/uninassauauditorio-tech/indica-uninassau/migrations"
	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/seed"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	if len(utils.JwtSecret) == 0 {
		log.Fatal("JWT_SECRET is not set in the environment")
	}

	r := gin.Default()

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:5173"
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()

	migrations.MigrateStatusHistory()

	utils.InitAdvisory()

	// Seed Initial Data
	if err := seed.SeedAdmin(); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	r.POST("/refresh", auth.RefreshToken)
	r.POST("/logout", auth.AuthMiddleware(), auth.Logout)

	protected := r.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/courses", referrals.ListCourses)
		protected.GET("/referrals", referrals.ListReferrals)
		protected.POST("/referrals", referrals.SubmitReferral)
		protected.GET("/referrals/:id", referrals.GetReferral)
		protected.PUT("/referrals/:id/status", referrals.UpdateStatus)
		protected.DELETE("/referrals/:id", referrals.DeleteReferral)
		protected.PUT("/candidates/:id", referrals.UpdateCandidate)
		protected.GET("/stats/summary", stats.Summary)
		protected.GET("/stats/ranking", stats.Ranking)
		protected.POST("/referrals/:id/analysis", advisory.AnalyzeReferral)
		protected.POST("/referrals/:id/follow-up", advisory.FollowUpMessage)
	}

	// Migrate models
	utils.DB.AutoMigrate(&models.Candidate{})
	utils.DB.AutoMigrate(&models.Referral{})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
