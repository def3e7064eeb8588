// seed/seed.go
package seed

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

// SeedAdmin creates the initial administrator account from the environment.
// Login provisioning never escalates roles, so without this seed no admin
// could ever exist.
func SeedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set. Skipping admin seeding.")
		return nil
	}

	var existingUser models.User
	err := utils.DB.Where("email = ?", email).First(&existingUser).Error
	if err == nil {
		log.Println("Admin account already exists. Skipping seeding.")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	admin := models.User{
		Email:    email,
		Password: string(hashedPassword),
		Name:     name,
		Role:     models.RoleAdmin,
	}

	if err := utils.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin account seeded successfully.")
	return nil
}
