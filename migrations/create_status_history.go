package migrations

import (
	"github.com/uninassauauditorio-tech/indica-uninassau/models"
	"github.com/uninassauauditorio-tech/indica-uninassau/utils"
)

func MigrateStatusHistory() {
	utils.DB.AutoMigrate(&models.StatusHistory{})
}
