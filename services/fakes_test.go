package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/MagicWinnie/MeetingAppBackend/models"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	mu           sync.Mutex
	users        map[string]models.User
	lastSearch   *models.UserSearchFilter
	searchResult []models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return ErrConflict("user with this email already exists")
		}
	}

	user.ID = primitive.NewObjectID()
	f.users[user.ID.Hex()] = *user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound("user not found")
	}
	cp := u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound("user not found")
}

func (f *fakeUserStore) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return ErrNotFound("user not found")
	}

	for k, v := range fields {
		switch k {
		case "email":
			u.Email = v.(string)
		case "password":
			u.Password = v.(string)
		case "fullName":
			u.FullName = v.(string)
		case "birthDate":
			t := v.(time.Time)
			u.BirthDate = &t
		case "gender":
			u.Gender = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "location":
			u.Location = v.(string)
		case "interests":
			u.Interests = v.([]string)
		case "verified":
			u.Verified = v.(bool)
		default:
			return errors.New("unexpected field: " + k)
		}
	}
	u.UpdatedAt = time.Now().UTC()

	f.users[id] = u
	return nil
}

func (f *fakeUserStore) AppendPhoto(_ context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return ErrNotFound("user not found")
	}
	u.ProfilePhotos = append(u.ProfilePhotos, url)
	u.UpdatedAt = time.Now().UTC()
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) Search(_ context.Context, filter models.UserSearchFilter) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastSearch = &filter
	return f.searchResult, nil
}

// fakeOTPStore is an in-memory OTPStore. TTLs are ignored; codes live until
// deleted.
type fakeOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
	down  bool
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{codes: map[string]string{}}
}

func (f *fakeOTPStore) Store(_ context.Context, key OTPKey, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.down {
		return ErrTransient("otp store unavailable", nil)
	}
	f.codes[key.String()] = code
	return nil
}

func (f *fakeOTPStore) Get(_ context.Context, key OTPKey) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.down {
		return "", ErrTransient("otp store unavailable", nil)
	}
	code, ok := f.codes[key.String()]
	if !ok {
		return "", ErrOTPNotFound
	}
	return code, nil
}

func (f *fakeOTPStore) Delete(_ context.Context, key OTPKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.down {
		return ErrTransient("otp store unavailable", nil)
	}
	delete(f.codes, key.String())
	return nil
}

func (f *fakeOTPStore) VerifyAndDelete(_ context.Context, key OTPKey, code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.down {
		return false, ErrTransient("otp store unavailable", nil)
	}
	stored, ok := f.codes[key.String()]
	if !ok || stored != code {
		return false, nil
	}
	delete(f.codes, key.String())
	return true, nil
}

type sentMail struct {
	to   string
	name string
	code string
}

// fakeMailer records sent emails and can simulate SMTP failures.
type fakeMailer struct {
	mu            sync.Mutex
	verifications []sentMail
	resets        []sentMail
	err           error
}

func (f *fakeMailer) SendVerificationEmail(to, name, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.verifications = append(f.verifications, sentMail{to: to, name: name, code: code})
	return nil
}

func (f *fakeMailer) SendPasswordResetEmail(to, name, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.resets = append(f.resets, sentMail{to: to, name: name, code: code})
	return nil
}

// fakeObjectStore records uploads and returns predictable URLs.
type fakeObjectStore struct {
	mu      sync.Mutex
	uploads []string
	err     error
}

func (f *fakeObjectStore) Upload(_ context.Context, key, _ string, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, key)
	return "https://cdn.test/" + key, nil
}
