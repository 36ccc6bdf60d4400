// routes/user_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/MagicWinnie/MeetingAppBackend/controllers"
	"github.com/MagicWinnie/MeetingAppBackend/middleware"
)

// RegisterUserRoutes sets up all user-related protected routes
func RegisterUserRoutes(e *echo.Echo, userController *controllers.UserController) {
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())
	r.Use(userController.RequireActiveUser())

	r.GET("/users", userController.SearchUsers)
	r.GET("/users/me", userController.GetProfile)
	r.PUT("/users/me", userController.UpdateProfile)
	r.POST("/users/me/picture", userController.UploadProfilePicture)
	r.GET("/users/:id", userController.GetUser)
}
