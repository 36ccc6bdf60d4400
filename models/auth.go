// models/auth.go
package models

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	FullName  string   `json:"fullName" validate:"required,min=3,max=64"`
	BirthDate string   `json:"birthDate,omitempty"` // "2006-01-02"
	Gender    string   `json:"gender,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Location  string   `json:"location,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type VerifyEmailRequest struct {
	UserID string `json:"userId" validate:"required"`
	OTP    string `json:"otp" validate:"required"`
}

type ResendVerificationRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
