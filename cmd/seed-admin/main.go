package main

import (
	"log"
	"os"

	"github.com/AdriaticEscapes/api-backoffice/internal/session"
	"github.com/AdriaticEscapes/api-backoffice/internal/utils"
	"github.com/AdriaticEscapes/api-backoffice/internal/utils/db"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	godotenv.Load()

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	if name == "" {
		name = "Admin"
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("could not connect to database:", err)
	}
	if err := database.AutoMigrate(&session.AdminUser{}, &session.AdminSession{}); err != nil {
		log.Fatal("automigrate failed:", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("could not hash password:", err)
	}

	var user session.AdminUser
	err = database.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		user.PasswordHash = hash
		user.Name = name
		if err := database.Save(&user).Error; err != nil {
			log.Fatal("could not update admin user:", err)
		}
		log.Printf("updated admin user %s", email)
	case err == gorm.ErrRecordNotFound:
		user = session.AdminUser{Email: email, PasswordHash: hash, Name: name}
		if err := database.Create(&user).Error; err != nil {
			log.Fatal("could not create admin user:", err)
		}
		log.Printf("created admin user %s", email)
	default:
		log.Fatal("could not look up admin user:", err)
	}
}
