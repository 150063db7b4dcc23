package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hackathon-portal/models"
	"hackathon-portal/repository"
)

// SeedUsers inserts a default admin account plus a handful of sample
// hackers, including one high school student with a chaperone.
func SeedUsers(userRepo repository.UserRepository) {
	log.Println("Seeding users...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	adminEmail := "admin@hackathon-portal.dev"
	adminUser, err := userRepo.FindUserByEmail(ctx, adminEmail)
	if err == nil && adminUser != nil {
		log.Println("Admin user already exists, skipping.")
	} else {
		newAdmin := &models.User{
			Email:        adminEmail,
			Password:     string(hashedPassword),
			Role:         "admin",
			IsFirstLogin: true,
		}
		if _, err := userRepo.CreateUser(ctx, newAdmin); err != nil {
			log.Printf("failed to seed admin user: %v", err)
		} else {
			fmt.Printf("Admin user (%s) added.\n", adminEmail)
		}
	}

	hackers := []*models.User{
		{
			Email:        "alex.kim@example.com",
			Password:     string(hashedPassword),
			Role:         "hacker",
			IsFirstLogin: true,
			Registration: &models.RegistrationDetails{
				FirstName: "Alex",
				LastName:  "Kim",
				School:    "State University",
			},
		},
		{
			Email:        "jamie.lee@example.com",
			Password:     string(hashedPassword),
			Role:         "hacker",
			IsFirstLogin: true,
			Registration: &models.RegistrationDetails{
				FirstName:           "Jamie",
				LastName:            "Lee",
				School:              "Central High School",
				IsHighSchoolStudent: true,
				Chaperone: &models.ChaperoneContact{
					FirstName: "Jane",
					LastName:  "Doe",
					Email:     "jane@example.com",
					Phone:     "555-1234",
				},
			},
		},
		{
			// Account created before the owner filled in the
			// registration form.
			Email:        "pending.signup@example.com",
			Password:     string(hashedPassword),
			Role:         "hacker",
			IsFirstLogin: true,
		},
	}

	for _, hacker := range hackers {
		existing, err := userRepo.FindUserByEmail(ctx, hacker.Email)
		if err == nil && existing != nil {
			fmt.Printf("Skipping: user %s already exists.\n", hacker.Email)
			continue
		}
		if _, err := userRepo.CreateUser(ctx, hacker); err != nil {
			log.Printf("failed to seed user %s: %v", hacker.Email, err)
		} else {
			fmt.Printf("User %s added.\n", hacker.Email)
		}
	}

	log.Println("User seeding finished.")
}
