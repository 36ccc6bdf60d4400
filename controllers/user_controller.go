// controllers/user_controller.go
package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/MagicWinnie/MeetingAppBackend/models"
	"github.com/MagicWinnie/MeetingAppBackend/services"
	"github.com/MagicWinnie/MeetingAppBackend/utils"
)

// UserController exposes profile, search and upload endpoints.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a new user controller
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// RequireActiveUser resolves the authenticated account and rejects
// deactivated ones. Runs after the JWT middleware on every protected route,
// so handlers only ever see requests from active accounts.
func (uc *UserController) RequireActiveUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := utils.GetUserIDFromToken(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Unauthorized",
				})
			}

			user, err := uc.users.GetByID(c.Request().Context(), userID.Hex())
			if err != nil {
				// A token for a deleted account is just a bad token.
				if services.KindOf(err) == services.KindNotFound {
					return c.JSON(http.StatusUnauthorized, models.Response{
						Status:  http.StatusUnauthorized,
						Message: "Unauthorized",
					})
				}
				return errorResponse(c, err)
			}

			if !user.IsActive {
				return c.JSON(http.StatusBadRequest, models.Response{
					Status:  http.StatusBadRequest,
					Message: "Inactive user",
				})
			}

			return next(c)
		}
	}
}

// GetProfile handles GET /api/users/me
func (uc *UserController) GetProfile(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	user, err := uc.users.GetByID(c.Request().Context(), userID.Hex())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    services.NewUserResponse(user),
	})
}

// UpdateProfile handles PUT /api/users/me
func (uc *UserController) UpdateProfile(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	var upd models.UserUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	user, err := uc.users.Update(c.Request().Context(), userID.Hex(), upd)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile updated successfully",
		Data:    services.NewUserResponse(user),
	})
}

// GetUser handles GET /api/users/:id
func (uc *UserController) GetUser(c echo.Context) error {
	user, err := uc.users.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User retrieved successfully",
		Data:    services.NewUserResponse(user),
	})
}

// SearchUsers handles GET /api/users
func (uc *UserController) SearchUsers(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	filter, err := parseSearchFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	users, err := uc.users.Search(c.Request().Context(), userID.Hex(), filter)
	if err != nil {
		return errorResponse(c, err)
	}

	results := make([]models.UserResponse, len(users))
	for i := range users {
		results[i] = services.NewUserResponse(&users[i])
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Users retrieved successfully",
		Data:    results,
	})
}

// UploadProfilePicture handles POST /api/users/me/picture
func (uc *UserController) UploadProfilePicture(c echo.Context) error {
	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Unauthorized",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No file provided",
		})
	}

	if fileHeader.Size > utils.MaxImageSize {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "File too large",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Failed to read file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, utils.MaxImageSize+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Failed to read file",
		})
	}

	user, err := uc.users.UploadProfilePicture(c.Request().Context(), userID.Hex(), fileHeader.Filename, data)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile picture uploaded successfully",
		Data:    services.NewUserResponse(user),
	})
}

// parseSearchFilter reads the optional search query parameters.
func parseSearchFilter(c echo.Context) (models.UserSearchFilter, error) {
	var filter models.UserSearchFilter

	if raw := c.QueryParam("interests"); raw != "" {
		for _, interest := range strings.Split(raw, ",") {
			if interest = strings.TrimSpace(interest); interest != "" {
				filter.Interests = append(filter.Interests, interest)
			}
		}
	}

	if v := c.QueryParam("min_age"); v != "" {
		minAge, err := strconv.Atoi(v)
		if err != nil || minAge < 0 {
			return filter, errors.New("invalid min_age")
		}
		filter.MinAge = &minAge
	}

	if v := c.QueryParam("max_age"); v != "" {
		maxAge, err := strconv.Atoi(v)
		if err != nil || maxAge < 0 {
			return filter, errors.New("invalid max_age")
		}
		filter.MaxAge = &maxAge
	}

	if v := c.QueryParam("location"); v != "" {
		location := utils.SanitizeInput(v)
		filter.Location = &location
	}

	if v := c.QueryParam("gender"); v != "" {
		gender := utils.SanitizeInput(v)
		filter.Gender = &gender
	}

	if v := c.QueryParam("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errors.New("invalid verified flag")
		}
		filter.Verified = &verified
	}

	if v := c.QueryParam("skip"); v != "" {
		skip, err := strconv.ParseInt(v, 10, 64)
		if err != nil || skip < 0 {
			return filter, errors.New("invalid skip")
		}
		filter.Skip = skip
	}

	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 1 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = limit
	}

	return filter, nil
}
