package initialize

import (
	"os"

	"girasol/config"
	. "girasol/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeAdminUser(db, log); err != nil {
		return log.Err("failed to initialize admin user", err)
	}

	log.Info("Table initialization complete")
	return nil
}

// initializeAdminUser guarantees at least one admin account exists so the
// instance is reachable after a fresh deploy. Credentials come from the
// environment; nothing is created when they are unset.
func initializeAdminUser(db *gorm.DB, log logger.Logger) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Info("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	var existing User
	if err := db.First(&existing, "email = ?", email).Error; err == nil {
		log.Debug("Admin user already exists", "email", email)
		return nil
	}

	admin := User{
		Name:  "Administrator",
		Email: email,
		Role:  RoleAdmin,
		Tasks: datatypes.NewJSONSlice(AllTaskTypes()),
	}
	if err := admin.SetPassword(password); err != nil {
		return log.Err("failed to hash admin password", err)
	}

	if err := db.Create(&admin).Error; err != nil {
		return log.Err("failed to create admin user", err, "email", email)
	}

	log.Info("Admin user initialized", "email", email)
	return nil
}
