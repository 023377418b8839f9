// Package db opens the application's Postgres connection from DB_* env vars.
// Credentials come from the environment or, when DB_SECRET_ID is set and no
// DB_USERNAME/DB_PASSWORD pair is present, from AWS Secrets Manager.
package db

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func GetDB() (*gorm.DB, error) {
	port, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		port = 5432
	}
	return Connect(os.Getenv("DB_HOST"), uint(port), os.Getenv("DB_NAME"), os.Getenv("DB_SECRET_ID"))
}

func Connect(host string, port uint, name, secretID string) (*gorm.DB, error) {
	user, password, err := retrieveCredentials(secretID)
	if err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d", host, user, password, name, port)
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		dsn += " sslmode=disable"
	}
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}
