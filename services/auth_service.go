// services/auth_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/MagicWinnie/MeetingAppBackend/middleware"
	"github.com/MagicWinnie/MeetingAppBackend/models"
	"github.com/MagicWinnie/MeetingAppBackend/utils"
)

const birthDateLayout = "2006-01-02"

// UserStore is the user directory contract the services depend on.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	AppendPhoto(ctx context.Context, id, url string) error
	Search(ctx context.Context, filter models.UserSearchFilter) ([]models.User, error)
}

// AuthService orchestrates registration, login, token refresh, email
// verification and password reset.
type AuthService struct {
	users  UserStore
	otps   OTPStore
	mailer Mailer
	logger *log.Logger
}

// NewAuthService creates a new auth service. mailer may be nil when SMTP is
// not configured; notification emails are then skipped with a log entry.
func NewAuthService(users UserStore, otps OTPStore, mailer Mailer) *AuthService {
	return &AuthService{
		users:  users,
		otps:   otps,
		mailer: mailer,
		logger: log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
	}
}

// Register creates an unverified account and issues a verification code.
// Storing and mailing the code are side effects of an already committed
// registration: their failure is logged, never surfaced.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return nil, ErrBadRequest("invalid email format")
	}

	// Best-effort pre-check; the unique index is the real arbiter.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrConflict("user with this email already exists")
	} else if KindOf(err) != KindNotFound {
		return nil, err
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse(birthDateLayout, req.BirthDate)
		if err != nil {
			return nil, ErrBadRequest("invalid birth date, expected YYYY-MM-DD")
		}
		birthDate = &parsed
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Email:     email,
		Password:  hashed,
		FullName:  utils.SanitizeInput(req.FullName),
		BirthDate: birthDate,
		Gender:    utils.SanitizeInput(req.Gender),
		Bio:       utils.SanitizeInput(req.Bio),
		Location:  utils.SanitizeInput(req.Location),
		Interests: utils.SanitizeStringArray(req.Interests),
		Verified:  false,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.issueVerificationCode(ctx, user)

	return user, nil
}

// issueVerificationCode generates, stores and emails a fresh verification
// code. All failures are logged only.
func (s *AuthService) issueVerificationCode(ctx context.Context, user *models.User) {
	otp, err := utils.GenerateOTP(utils.OTPLength)
	if err != nil {
		s.logger.Printf("Failed to generate verification code for %s: %v", user.ID.Hex(), err)
		return
	}

	key := OTPKey{Purpose: PurposeEmailVerification, UserID: user.ID.Hex()}
	if err := s.otps.Store(ctx, key, otp, DefaultOTPTTL); err != nil {
		s.logger.Printf("Failed to store verification code for %s: %v", user.ID.Hex(), err)
		return
	}

	s.sendEmail(func(m Mailer) error {
		return m.SendVerificationEmail(user.Email, user.FullName, otp)
	})
}

// sendEmail runs a notification side effect. Mail failures never fail the
// primary operation.
func (s *AuthService) sendEmail(send func(Mailer) error) {
	if s.mailer == nil {
		s.logger.Println("Mailer not configured, skipping notification email")
		return
	}
	if err := send(s.mailer); err != nil {
		s.logger.Printf("Failed to send notification email: %v", err)
	}
}

// Login authenticates by email and password and issues a token pair. An
// unknown email and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, *models.User, error) {
	email, err := utils.SanitizeEmail(email)
	if err != nil {
		return nil, nil, ErrUnauthorized("invalid credentials")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return nil, nil, ErrUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}

	if err := utils.CheckPassword(password, user.Password); err != nil {
		return nil, nil, ErrUnauthorized("invalid credentials")
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID.Hex())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

// Refresh exchanges a valid refresh token for a new token pair. Tokens are
// stateless, so the previous refresh token stays usable until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := middleware.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrUnauthorized("invalid refresh token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return nil, ErrUnauthorized("invalid refresh token")
		}
		return nil, err
	}

	accessToken, newRefreshToken, err := middleware.GenerateTokenPair(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &models.TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// VerifyEmail confirms an account with the code sent at registration.
// Verifying an already verified account succeeds as a no-op.
func (s *AuthService) VerifyEmail(ctx context.Context, userID, otp string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Verified {
		return user, nil
	}

	key := OTPKey{Purpose: PurposeEmailVerification, UserID: userID}
	ok, err := s.otps.VerifyAndDelete(ctx, key, otp)
	if err != nil && err != ErrOTPNotFound {
		return nil, err
	}
	if !ok {
		return nil, ErrBadRequest("invalid or expired verification code")
	}

	if err := s.users.UpdateFields(ctx, userID, map[string]interface{}{"verified": true}); err != nil {
		return nil, err
	}

	user.Verified = true
	return user, nil
}

// ResendVerification replaces the stored verification code with a fresh one
// and re-sends it. The previous code stops working immediately.
func (s *AuthService) ResendVerification(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Verified {
		return ErrBadRequest("email is already verified")
	}

	otp, err := utils.GenerateOTP(utils.OTPLength)
	if err != nil {
		return fmt.Errorf("failed to generate verification code: %w", err)
	}

	key := OTPKey{Purpose: PurposeEmailVerification, UserID: userID}
	if err := s.otps.Store(ctx, key, otp, DefaultOTPTTL); err != nil {
		return err
	}

	s.sendEmail(func(m Mailer) error {
		return m.SendVerificationEmail(user.Email, user.FullName, otp)
	})

	return nil
}

// ForgotPassword issues a password-reset code for the account behind the
// email address.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email, err := utils.SanitizeEmail(email)
	if err != nil {
		return ErrBadRequest("invalid email format")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	otp, err := utils.GenerateOTP(utils.OTPLength)
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	key := OTPKey{Purpose: PurposePasswordReset, UserID: user.ID.Hex()}
	if err := s.otps.Store(ctx, key, otp, DefaultOTPTTL); err != nil {
		return err
	}

	s.sendEmail(func(m Mailer) error {
		return m.SendPasswordResetEmail(user.Email, user.FullName, otp)
	})

	return nil
}

// ResetPassword sets a new password after validating the reset code.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email, err := utils.SanitizeEmail(email)
	if err != nil {
		return ErrBadRequest("invalid email format")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	key := OTPKey{Purpose: PurposePasswordReset, UserID: user.ID.Hex()}
	ok, err := s.otps.VerifyAndDelete(ctx, key, otp)
	if err != nil && err != ErrOTPNotFound {
		return err
	}
	if !ok {
		return ErrBadRequest("invalid or expired reset code")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdateFields(ctx, user.ID.Hex(), map[string]interface{}{"password": hashed})
}
