package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/MagicWinnie/MeetingAppBackend/config"
	"github.com/MagicWinnie/MeetingAppBackend/controllers"
	"github.com/MagicWinnie/MeetingAppBackend/middleware"
	"github.com/MagicWinnie/MeetingAppBackend/repositories"
	"github.com/MagicWinnie/MeetingAppBackend/routes"
	"github.com/MagicWinnie/MeetingAppBackend/services"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to external stores
	client := config.ConnectDB()
	redisClient := config.ConnectRedis()
	s3Client := config.ConnectS3()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(client)
	interestRepo := repositories.NewUserInterestRepository(client)

	// Initialize services
	otpStore := services.NewRedisOTPStore(redisClient)
	storage := services.NewS3Storage(s3Client)

	var mailer services.Mailer
	emailService, err := services.NewEmailService()
	if err != nil {
		log.Printf("Warning: %v, notification emails will be skipped", err)
	} else {
		mailer = emailService
	}

	authService := services.NewAuthService(userRepo, otpStore, mailer)
	userService := services.NewUserService(userRepo, storage)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	interestController := controllers.NewUserInterestController(interestRepo)

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.Secure())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeaders())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "MeetingApp Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Register routes
	routes.RegisterAuthRoutes(e, authController)
	routes.RegisterUserRoutes(e, userController)
	routes.RegisterUserInterestRoutes(e, interestController)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
