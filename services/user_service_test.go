package services

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MagicWinnie/MeetingAppBackend/models"
)

func seedUser(t *testing.T, users *fakeUserStore, email string) *models.User {
	t.Helper()

	birthDate := time.Date(1996, time.August, 30, 0, 0, 0, 0, time.UTC)
	user := &models.User{
		Email:     email,
		Password:  "$2a$10$notarealhash",
		FullName:  "Jamie Doe",
		BirthDate: &birthDate,
		Location:  "Berlin",
		Interests: []string{"Hiking"},
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func strPtr(s string) *string { return &s }

func TestUpdate_PartialFields(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users, &fakeObjectStore{})
	user := seedUser(t, users, "jamie@example.com")

	updated, err := svc.Update(context.Background(), user.ID.Hex(), models.UserUpdate{
		Location: strPtr("Munich"),
		Bio:      strPtr("Hello there"),
	})
	require.NoError(t, err)

	require.Equal(t, "Munich", updated.Location)
	require.Equal(t, "Hello there", updated.Bio)

	// Untouched fields survive.
	require.Equal(t, "jamie@example.com", updated.Email)
	require.Equal(t, "Jamie Doe", updated.FullName)
	require.Equal(t, []string{"Hiking"}, updated.Interests)
	require.NotNil(t, updated.BirthDate)
}

func TestUpdate_EmptyUpdateBumpsTimestamp(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users, &fakeObjectStore{})
	user := seedUser(t, users, "jamie@example.com")

	// Age the stored record so the bump is observable.
	stale := users.users[user.ID.Hex()]
	stale.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	users.users[user.ID.Hex()] = stale

	updated, err := svc.Update(context.Background(), user.ID.Hex(), models.UserUpdate{})
	require.NoError(t, err)

	// No fields change, but updatedAt always moves.
	require.Equal(t, user.Email, updated.Email)
	require.Equal(t, user.FullName, updated.FullName)
	require.True(t, updated.UpdatedAt.After(stale.UpdatedAt))
}

func TestUpdate_EmailConflict(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users, &fakeObjectStore{})
	user := seedUser(t, users, "jamie@example.com")
	seedUser(t, users, "taken@example.com")

	_, err := svc.Update(context.Background(), user.ID.Hex(), models.UserUpdate{
		Email: strPtr("taken@example.com"),
	})
	require.Equal(t, KindConflict, KindOf(err))

	// Re-submitting the current email is not a conflict.
	updated, err := svc.Update(context.Background(), user.ID.Hex(), models.UserUpdate{
		Email: strPtr("Jamie@Example.com"),
	})
	require.NoError(t, err)
	require.Equal(t, "jamie@example.com", updated.Email)
}

func TestUpdate_InvalidBirthDate(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users, &fakeObjectStore{})
	user := seedUser(t, users, "jamie@example.com")

	_, err := svc.Update(context.Background(), user.ID.Hex(), models.UserUpdate{
		BirthDate: strPtr("30.08.1996"),
	})
	require.Equal(t, KindBadRequest, KindOf(err))
}

func TestUpdate_UnknownUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users, &fakeObjectStore{})

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), models.UserUpdate{
		Location: strPtr("Munich"),
	})
	require.Equal(t, KindNotFound, KindOf(err))
}

func TestSearch_ClampsPaginationAndExcludesRequester(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users, &fakeObjectStore{})
	requesterID := primitive.NewObjectID().Hex()

	_, err := svc.Search(context.Background(), requesterID, models.UserSearchFilter{
		Limit: 5000,
		Skip:  -3,
	})
	require.NoError(t, err)

	require.NotNil(t, users.lastSearch)
	require.Equal(t, int64(100), users.lastSearch.Limit)
	require.Equal(t, int64(0), users.lastSearch.Skip)
	require.Equal(t, requesterID, users.lastSearch.ExcludeID)

	// A zero limit also falls back to the maximum page size.
	_, err = svc.Search(context.Background(), requesterID, models.UserSearchFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(100), users.lastSearch.Limit)

	// A sane limit passes through untouched.
	_, err = svc.Search(context.Background(), requesterID, models.UserSearchFilter{Limit: 20, Skip: 40})
	require.NoError(t, err)
	require.Equal(t, int64(20), users.lastSearch.Limit)
	require.Equal(t, int64(40), users.lastSearch.Skip)
}

func TestSearch_PassesFiltersThrough(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users, &fakeObjectStore{})

	minAge, maxAge := 25, 35
	location := "Berlin"
	verified := true

	_, err := svc.Search(context.Background(), primitive.NewObjectID().Hex(), models.UserSearchFilter{
		Interests: []string{"Hiking", "Chess"},
		MinAge:    &minAge,
		MaxAge:    &maxAge,
		Location:  &location,
		Verified:  &verified,
		Limit:     10,
	})
	require.NoError(t, err)

	require.Equal(t, []string{"Hiking", "Chess"}, users.lastSearch.Interests)
	require.Equal(t, &minAge, users.lastSearch.MinAge)
	require.Equal(t, &maxAge, users.lastSearch.MaxAge)
	require.Equal(t, &location, users.lastSearch.Location)
	require.Equal(t, &verified, users.lastSearch.Verified)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestUploadProfilePicture(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	storage := &fakeObjectStore{}
	svc := NewUserService(users, storage)
	user := seedUser(t, users, "jamie@example.com")

	updated, err := svc.UploadProfilePicture(context.Background(), user.ID.Hex(), "selfie.png", pngBytes(t, 64, 64))
	require.NoError(t, err)

	require.Len(t, storage.uploads, 1)
	require.True(t, strings.HasPrefix(storage.uploads[0], "profiles/"))
	require.True(t, strings.HasSuffix(storage.uploads[0], ".png"))

	require.Len(t, updated.ProfilePhotos, 1)
	require.Equal(t, "https://cdn.test/"+storage.uploads[0], updated.ProfilePhotos[0])

	// A second upload appends, never replaces.
	updated, err = svc.UploadProfilePicture(context.Background(), user.ID.Hex(), "selfie2.png", pngBytes(t, 64, 64))
	require.NoError(t, err)
	require.Len(t, updated.ProfilePhotos, 2)
}

func TestUploadProfilePicture_RejectsUnsupportedFormat(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	storage := &fakeObjectStore{}
	svc := NewUserService(users, storage)
	user := seedUser(t, users, "jamie@example.com")

	_, err := svc.UploadProfilePicture(context.Background(), user.ID.Hex(), "anim.gif", pngBytes(t, 64, 64))
	require.Equal(t, KindBadRequest, KindOf(err))
	require.Empty(t, storage.uploads, "nothing may reach the object store")
}

func TestUploadProfilePicture_RejectsGarbageData(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	storage := &fakeObjectStore{}
	svc := NewUserService(users, storage)
	user := seedUser(t, users, "jamie@example.com")

	_, err := svc.UploadProfilePicture(context.Background(), user.ID.Hex(), "selfie.png", []byte("not an image"))
	require.Equal(t, KindBadRequest, KindOf(err))
	require.Empty(t, storage.uploads)
}

func TestUploadProfilePicture_StorageFailure(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	storage := &fakeObjectStore{err: ErrTransient("object store unavailable", nil)}
	svc := NewUserService(users, storage)
	user := seedUser(t, users, "jamie@example.com")

	_, err := svc.UploadProfilePicture(context.Background(), user.ID.Hex(), "selfie.png", pngBytes(t, 64, 64))
	require.Equal(t, KindTransient, KindOf(err))

	stored, err := users.GetByID(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	require.Empty(t, stored.ProfilePhotos, "no photo recorded when the upload failed")
}

func TestNewUserResponse_DerivesAge(t *testing.T) {
	t.Parallel()

	birthDate := time.Now().UTC().AddDate(-30, 0, -1)
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     "jamie@example.com",
		Password:  "hash-never-leaves",
		BirthDate: &birthDate,
	}

	resp := NewUserResponse(user)
	require.NotNil(t, resp.Age)
	require.Equal(t, 30, *resp.Age)
}

func TestNewUserResponse_NoBirthDate(t *testing.T) {
	t.Parallel()

	resp := NewUserResponse(&models.User{ID: primitive.NewObjectID(), Email: "jamie@example.com"})
	require.Nil(t, resp.Age)
}
