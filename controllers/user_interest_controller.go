// controllers/user_interest_controller.go
package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MagicWinnie/MeetingAppBackend/models"
	"github.com/MagicWinnie/MeetingAppBackend/repositories"
	"github.com/MagicWinnie/MeetingAppBackend/utils"
)

// UserInterestController serves the selectable interest reference lists.
type UserInterestController struct {
	interests *repositories.UserInterestRepository
}

func NewUserInterestController(interests *repositories.UserInterestRepository) *UserInterestController {
	return &UserInterestController{interests: interests}
}

// GetAll handles GET /user-interests, grouping interest names by category.
func (ic *UserInterestController) GetAll(c echo.Context) error {
	all, err := ic.interests.All(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}

	grouped := map[string][]string{}
	for _, interest := range all {
		grouped[interest.Category] = append(grouped[interest.Category], interest.Name)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Interests retrieved successfully",
		Data:    models.UserInterestsResponse{Interests: grouped},
	})
}

// GetByCategory handles GET /user-interests/:category
func (ic *UserInterestController) GetByCategory(c echo.Context) error {
	category := utils.SanitizeInput(c.Param("category"))

	names, err := ic.interests.ByCategory(c.Request().Context(), category)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Interests retrieved successfully",
		Data:    names,
	})
}
