package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"hackathon-portal/config/middleware"
	_ "hackathon-portal/docs"
	"hackathon-portal/handlers"
	"hackathon-portal/repository"
)

func SetupRoutes(app *fiber.App) {
	log.Println("Registering application routes...")

	// Repositories
	userRepo := repository.NewUserRepository()
	eventRepo := repository.NewEventRepository()
	checkinRepo := repository.NewCheckinRepository()
	reimbursementRepo := repository.NewReimbursementRepository()

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo)
	userHandler := handlers.NewUserHandler(userRepo)
	eventHandler := handlers.NewEventHandler(eventRepo)
	checkinHandler := handlers.NewCheckinHandler(checkinRepo, userRepo, eventRepo)
	reimbursementHandler := handlers.NewReimbursementHandler(reimbursementRepo)
	fileHandler := handlers.NewFileHandler()

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Hackathon Portal API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)

	// API v1 group
	api := app.Group("/api/v1")

	// Authentication routes. Account creation is an admin action; hackers
	// receive their credentials out of band.
	authGroup := api.Group("/auth")
	authGroup.Post("/register", middleware.AuthMiddleware(), middleware.AdminMiddleware(), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", middleware.AuthMiddleware(), authHandler.Logout)

	// User routes
	protectedUserGroup := api.Group("/users", middleware.AuthMiddleware())
	protectedUserGroup.Post("/change-password", authHandler.ChangePassword)
	protectedUserGroup.Get("/:id", userHandler.GetUserByID)
	protectedUserGroup.Put("/:id", userHandler.UpdateUser)

	// Admin routes
	adminGroup := api.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	adminGroup.Get("/users", userHandler.GetAllUsers)
	adminGroup.Delete("/users/:id", userHandler.DeleteUser)
	adminGroup.Get("/dashboard-stats", userHandler.GetDashboardStats)

	// Event routes
	api.Get("/events", middleware.AuthMiddleware(), eventHandler.GetAllEvents)
	api.Get("/events/selector", middleware.AuthMiddleware(), eventHandler.ListEventSelector)
	api.Get("/events/occurrences", middleware.AuthMiddleware(), eventHandler.GetEventOccurrences)
	api.Get("/events/:id", middleware.AuthMiddleware(), eventHandler.GetEventByID)
	adminGroup.Post("/events", eventHandler.CreateEvent)
	adminGroup.Put("/events/:id", eventHandler.UpdateEvent)
	adminGroup.Delete("/events/:id", eventHandler.DeleteEvent)

	// Check-in routes. Scanning and its history are admin-only; the badge
	// belongs to the logged in participant.
	checkinGroup := api.Group("/checkin", middleware.AuthMiddleware())
	checkinGroup.Get("/badge/:id", checkinHandler.GenerateBadge)
	adminCheckinGroup := checkinGroup.Group("/", middleware.AdminMiddleware())
	adminCheckinGroup.Post("/scan", checkinHandler.ValidateScan)
	adminCheckinGroup.Get("/history", checkinHandler.GetScanHistory)

	// Reimbursement routes
	reimbursementGroup := api.Group("/reimbursements", middleware.AuthMiddleware())
	reimbursementGroup.Post("/", reimbursementHandler.CreateReimbursement)
	reimbursementGroup.Get("/my", reimbursementHandler.GetMyReimbursements)
	reimbursementGroup.Post("/:id/receipt", reimbursementHandler.UploadReceipt)
	adminReimbursementGroup := reimbursementGroup.Group("/", middleware.AdminMiddleware())
	adminReimbursementGroup.Get("/", reimbursementHandler.GetAllReimbursements)
	adminReimbursementGroup.Put("/:id/status", reimbursementHandler.UpdateReimbursementStatus)

	// Stored files (receipt downloads)
	api.Get("/files/:id", middleware.AuthMiddleware(), fileHandler.GetFileFromGridFS)

	log.Println("All application routes registered.")
	log.Println("Swagger documentation available at: /docs/index.html")
}
