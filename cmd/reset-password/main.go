package main

import (
	"flag"
	"log"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operator tool: force-reset a user's password without going through the
// OTP flow. Intended for recovering a locked-out super admin.
func main() {
	email := flag.String("email", "", "email of the account to reset")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: reset-password -email <email> -password <new password>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	db := database.ConnectDB()

	var user model.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", *email, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", *email)
}
