// services/user_service.go
package services

import (
	"context"
	"time"

	"github.com/MagicWinnie/MeetingAppBackend/models"
	"github.com/MagicWinnie/MeetingAppBackend/utils"
)

// maxSearchLimit caps a single search page.
const maxSearchLimit = 100

// UserService handles profile reads, partial updates, search and profile
// picture upload.
type UserService struct {
	users   UserStore
	storage ObjectStore
}

// NewUserService creates a new user service.
func NewUserService(users UserStore, storage ObjectStore) *UserService {
	return &UserService{users: users, storage: storage}
}

// GetByID fetches a single user.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update applies a partial profile update. Only explicitly supplied fields
// are touched; changing the email re-checks uniqueness first.
func (s *UserService) Update(ctx context.Context, userID string, upd models.UserUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if upd.Email != nil {
		email, err := utils.SanitizeEmail(*upd.Email)
		if err != nil {
			return nil, ErrBadRequest("invalid email format")
		}
		if email != user.Email {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				return nil, ErrConflict("email already exists")
			} else if KindOf(err) != KindNotFound {
				return nil, err
			}
			fields["email"] = email
		}
	}

	if upd.FullName != nil {
		fields["fullName"] = utils.SanitizeInput(*upd.FullName)
	}
	if upd.BirthDate != nil {
		parsed, err := time.Parse(birthDateLayout, *upd.BirthDate)
		if err != nil {
			return nil, ErrBadRequest("invalid birth date, expected YYYY-MM-DD")
		}
		fields["birthDate"] = parsed
	}
	if upd.Gender != nil {
		fields["gender"] = utils.SanitizeInput(*upd.Gender)
	}
	if upd.Bio != nil {
		fields["bio"] = utils.SanitizeInput(*upd.Bio)
	}
	if upd.Location != nil {
		fields["location"] = utils.SanitizeInput(*upd.Location)
	}
	if upd.Interests != nil {
		fields["interests"] = utils.SanitizeStringArray(*upd.Interests)
	}

	// Even an empty update bumps updatedAt.
	if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, userID)
}

// Search returns users matching the conjunctive filters, excluding the
// requester from their own results.
func (s *UserService) Search(ctx context.Context, requesterID string, filter models.UserSearchFilter) ([]models.User, error) {
	if filter.Limit <= 0 || filter.Limit > maxSearchLimit {
		filter.Limit = maxSearchLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	filter.ExcludeID = requesterID

	return s.users.Search(ctx, filter)
}

// UploadProfilePicture validates, normalizes and stores a picture, then
// appends its URL to the profile's photo list.
func (s *UserService) UploadProfilePicture(ctx context.Context, userID, filename string, data []byte) (*models.User, error) {
	if err := utils.ValidateImageFile(filename, int64(len(data))); err != nil {
		return nil, ErrBadRequest(err.Error())
	}

	normalized, err := utils.NormalizeImage(data, filename)
	if err != nil {
		return nil, ErrBadRequest("invalid image data")
	}

	key := utils.NewObjectKey("profiles", filename)
	url, err := s.storage.Upload(ctx, key, utils.ImageContentType(filename), normalized)
	if err != nil {
		return nil, err
	}

	if err := s.users.AppendPhoto(ctx, userID, url); err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, userID)
}

// NewUserResponse converts a stored user into its API shape, deriving age
// from the birth date.
func NewUserResponse(user *models.User) models.UserResponse {
	resp := models.UserResponse{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		BirthDate:     user.BirthDate,
		Gender:        user.Gender,
		Bio:           user.Bio,
		Location:      user.Location,
		Interests:     user.Interests,
		ProfilePhotos: user.ProfilePhotos,
		Verified:      user.Verified,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}

	if user.BirthDate != nil {
		age := utils.Age(*user.BirthDate, time.Now().UTC())
		resp.Age = &age
	}

	return resp
}
