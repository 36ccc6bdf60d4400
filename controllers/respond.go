// controllers/respond.go
package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MagicWinnie/MeetingAppBackend/models"
	"github.com/MagicWinnie/MeetingAppBackend/services"
)

// statusFromError maps service error kinds onto HTTP status codes. The
// services stay transport-agnostic; this is the only place the mapping
// lives.
func statusFromError(err error) int {
	switch services.KindOf(err) {
	case services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindBadRequest:
		return http.StatusBadRequest
	case services.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(c echo.Context, err error) error {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		// Don't leak internals
		message = "Something went wrong, please try again later"
		c.Logger().Error(err)
	}

	return c.JSON(status, models.Response{
		Status:  status,
		Message: message,
	})
}
