// utils/auth.go
package utils

import (
	"errors"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/MagicWinnie/MeetingAppBackend/middleware"
)

// HashPassword hashes a plain-text password with bcrypt. A fresh salt is
// generated on every call and embedded in the output.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plain-text password against a bcrypt hash.
// Returns a non-nil error on mismatch or a malformed hash, never panics.
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GetUserIDFromToken extracts the user ID from the JWT claims set by the
// JWT middleware.
func GetUserIDFromToken(c echo.Context) (primitive.ObjectID, error) {
	userToken := c.Get("user")
	if userToken == nil {
		return primitive.ObjectID{}, errors.New("no token found")
	}

	token, ok := userToken.(*jwt.Token)
	if !ok {
		return primitive.ObjectID{}, errors.New("invalid token type")
	}

	claims, ok := token.Claims.(*middleware.JwtCustomClaims)
	if !ok {
		return primitive.ObjectID{}, errors.New("invalid claims type")
	}

	return primitive.ObjectIDFromHex(claims.UserID)
}
