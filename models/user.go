// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password"`
	FullName      string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	BirthDate     *time.Time         `json:"birthDate,omitempty" bson:"birthDate,omitempty"`
	Gender        string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Bio           string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Location      string             `json:"location,omitempty" bson:"location,omitempty"`
	Interests     []string           `json:"interests" bson:"interests"`
	ProfilePhotos []string           `json:"profilePhotos,omitempty" bson:"profilePhotos,omitempty"`
	Verified      bool               `json:"verified" bson:"verified"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Response is the standard API response envelope
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// UserResponse is the user payload returned by the API. Age is derived from
// the birth date at response time and never stored.
type UserResponse struct {
	ID            primitive.ObjectID `json:"id"`
	Email         string             `json:"email"`
	FullName      string             `json:"fullName,omitempty"`
	BirthDate     *time.Time         `json:"birthDate,omitempty"`
	Age           *int               `json:"age,omitempty"`
	Gender        string             `json:"gender,omitempty"`
	Bio           string             `json:"bio,omitempty"`
	Location      string             `json:"location,omitempty"`
	Interests     []string           `json:"interests"`
	ProfilePhotos []string           `json:"profilePhotos,omitempty"`
	Verified      bool               `json:"verified"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	Email     *string   `json:"email,omitempty"`
	FullName  *string   `json:"fullName,omitempty"`
	BirthDate *string   `json:"birthDate,omitempty"` // "2006-01-02"
	Gender    *string   `json:"gender,omitempty"`
	Bio       *string   `json:"bio,omitempty"`
	Location  *string   `json:"location,omitempty"`
	Interests *[]string `json:"interests,omitempty"`
}

// UserSearchFilter holds the optional, conjunctive search criteria.
type UserSearchFilter struct {
	Interests []string
	MinAge    *int
	MaxAge    *int
	Location  *string
	Gender    *string
	Verified  *bool
	Skip      int64
	Limit     int64
	ExcludeID string
}
