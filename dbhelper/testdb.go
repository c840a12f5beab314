package dbhelper

import (
	"errors"
	"fmt"

	"wardrobeapi/config"
	"wardrobeapi/models"

	"github.com/caarlos0/env/v9"
	"gorm.io/gorm"
)

// ErrNoTestDB is returned when TEST_DB_NAME is unset, database tests skip on it.
var ErrNoTestDB = errors.New("TEST_DB_NAME is not set")

// SetupTestDB connects to the database described by TEST_DB_USERNAME,
// TEST_DB_PASSWORD, TEST_DB_HOST, TEST_DB_PORT and TEST_DB_NAME.
func SetupTestDB() (*gorm.DB, error) {
	var cfg config.DBConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TEST_"}); err != nil {
		return nil, fmt.Errorf("parse test db env: %w", err)
	}
	if cfg.Name == "" {
		return nil, ErrNoTestDB
	}
	return SetupDB(cfg, false)
}

func SetupCleaner(db *gorm.DB) func() {
	return func() {
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Outfit{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ClothingItem{})
		db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.UserAccount{})
	}
}
