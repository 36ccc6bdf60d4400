// routes/user_interest_routes.go
package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/MagicWinnie/MeetingAppBackend/controllers"
)

// RegisterUserInterestRoutes sets up the public interest reference routes
func RegisterUserInterestRoutes(e *echo.Echo, interestController *controllers.UserInterestController) {
	r := e.Group("/user-interests")

	r.GET("", interestController.GetAll)
	r.GET("/:category", interestController.GetByCategory)
}
