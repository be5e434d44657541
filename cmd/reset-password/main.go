package main

import (
	"flag"
	"log"

	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/pkg/config"
	"go-pharmacy-pos/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

// Operator tool for resetting a locked-out account's password straight in
// the database. Run from the server host; it reads the same .env as the API.
func main() {
	username := flag.String("user", "admin", "username of the account to reset")
	password := flag.String("password", "", "new password (min 6 characters)")
	flag.Parse()

	if len(*password) < 6 {
		log.Fatal("provide -password with at least 6 characters")
	}

	cfg := config.Load()
	db := database.Connect(cfg)

	var user model.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", *username, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", *username)
}
