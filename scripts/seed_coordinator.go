// Seeds the initial coordinator account.
//
// A fresh database has no coordinator, so no one can grant staff roles
// through the API. Run this once after deployment.
//
// Usage: go run scripts/seed_coordinator.go coordinator@example.com password123

package main

import (
	"errors"
	"language_center_backend/internal/config"
	"language_center_backend/internal/model"
	"language_center_backend/pkg/database"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <email> <password>", os.Args[0])
	}
	email, password := os.Args[1], os.Args[2]

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var existing model.User
	err = db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		// Account exists; promote it.
		if existing.Role == model.Coordinator {
			log.Printf("%s is already a coordinator", email)
			return
		}
		if err := db.Model(&existing).Update("role", model.Coordinator).Error; err != nil {
			log.Fatalf("failed to promote user: %v", err)
		}
		log.Printf("promoted %s to coordinator", email)
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		user := &model.User{
			Name:     "Coordinator",
			Email:    email,
			Password: string(hashed),
			Role:     model.Coordinator,
		}
		if err := db.Create(user).Error; err != nil {
			log.Fatalf("failed to create coordinator: %v", err)
		}
		log.Printf("created coordinator %s (id %d)", email, user.ID)
	default:
		log.Fatalf("lookup failed: %v", err)
	}
}
