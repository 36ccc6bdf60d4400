// routes/auth_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/MagicWinnie/MeetingAppBackend/controllers"
)

// RegisterAuthRoutes sets up the public authentication routes
func RegisterAuthRoutes(e *echo.Echo, authController *controllers.AuthController) {
	auth := e.Group("/api/auth")

	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.RefreshToken)
	auth.POST("/verify-email", authController.VerifyEmail)
	auth.POST("/resend-verification", authController.ResendVerification)
	auth.POST("/forgot-password", authController.ForgotPassword)
	auth.POST("/reset-password", authController.ResetPassword)
}
