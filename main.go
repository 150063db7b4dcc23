package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"hackathon-portal/config"
	_ "hackathon-portal/docs"
	util "hackathon-portal/pkg/utils"
	"hackathon-portal/repository"
	"hackathon-portal/router"
	"hackathon-portal/seeder"
	_ "time/tzdata"
)

// @title Hackathon Portal API
// @version 1.0
// @description API for the hackathon portal: QR badge check-in, event schedule, user management, and travel reimbursements
// @termsOfService https://github.com/your-repo/terms/
//
// @contact.name API Support
// @contact.url https://github.com/your-repo
// @contact.email support@example.com
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Users
// @tag.description User management endpoints
//
// @tag.name Admin
// @tag.description Admin only endpoints
//
// @tag.name Events
// @tag.description Event schedule endpoints
//
// @tag.name Check-in
// @tag.description Badge scanning and check-in endpoints
//
// @tag.name Reimbursements
// @tag.description Travel reimbursement endpoints
func main() {
	// `hackathon-portal generate-key` prints a fresh PASETO_SECRET value.
	if len(os.Args) > 1 && os.Args[1] == "generate-key" {
		key, err := util.GenerateBase64Key(32)
		if err != nil {
			log.Fatalf("Failed to generate key: %v", err)
		}
		log.Printf("PASETO_SECRET=%s", key)
		return
	}

	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.LoadConfig()

	config.MongoConnect()
	config.InitDatabase()

	defer config.DisconnectDB()

	if os.Getenv("SEED_DB") == "true" {
		seeder.SeedUsers(repository.NewUserRepository())
		seeder.SeedEvents(repository.NewEventRepository())
	}

	app := fiber.New()

	config.SetupCORS(app)

	app.Use(logger.New())

	router.SetupRoutes(app)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("Health Check: http://localhost:%s/", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}
