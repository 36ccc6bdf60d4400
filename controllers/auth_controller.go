// controllers/auth_controller.go
package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/MagicWinnie/MeetingAppBackend/models"
	"github.com/MagicWinnie/MeetingAppBackend/services"
	"github.com/MagicWinnie/MeetingAppBackend/utils"
)

// AuthController exposes the authentication endpoints.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	user, err := ac.auth.Register(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Registration successful, a verification code has been sent to your email",
		Data:    services.NewUserResponse(user),
	})
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	tokens, user, err := ac.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: map[string]interface{}{
			"tokens": tokens,
			"user":   services.NewUserResponse(user),
		},
	})
}

// RefreshToken handles POST /api/auth/refresh
func (ac *AuthController) RefreshToken(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	tokens, err := ac.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Token refreshed",
		Data:    tokens,
	})
}

// VerifyEmail handles POST /api/auth/verify-email
func (ac *AuthController) VerifyEmail(c echo.Context) error {
	var req models.VerifyEmailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	user, err := ac.auth.VerifyEmail(c.Request().Context(), req.UserID, utils.SanitizeInput(req.OTP))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Email verified successfully",
		Data:    services.NewUserResponse(user),
	})
}

// ResendVerification handles POST /api/auth/resend-verification
func (ac *AuthController) ResendVerification(c echo.Context) error {
	var req models.ResendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if err := ac.auth.ResendVerification(c.Request().Context(), req.UserID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "A new verification code has been sent to your email",
	})
}

// ForgotPassword handles POST /api/auth/forgot-password
func (ac *AuthController) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if err := ac.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password reset OTP sent successfully",
		Data: map[string]interface{}{
			"email": utils.MaskEmail(req.Email),
		},
	})
}

// ResetPassword handles POST /api/auth/reset-password
func (ac *AuthController) ResetPassword(c echo.Context) error {
	var req models.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if err := ac.auth.ResetPassword(c.Request().Context(), req.Email, utils.SanitizeInput(req.OTP), req.NewPassword); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Password reset successfully",
	})
}
