// services/otp_store.go
package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultOTPTTL is how long a stored code stays valid.
const DefaultOTPTTL = 600 * time.Second

// ErrOTPNotFound is returned when no unexpired code exists for a key. It is
// distinct from a transient store failure.
var ErrOTPNotFound = errors.New("otp not found")

// OTPPurpose scopes a code to the flow it was issued for.
type OTPPurpose string

const (
	// PurposeEmailVerification covers the post-registration email check.
	PurposeEmailVerification OTPPurpose = ""
	// PurposePasswordReset covers the forgot-password flow. Its codes live
	// under a separate key namespace so they can never be confused with a
	// verification code for the same user.
	PurposePasswordReset OTPPurpose = "pwd-reset"
)

// OTPKey identifies a stored code by purpose and subject.
type OTPKey struct {
	Purpose OTPPurpose
	UserID  string
}

func (k OTPKey) String() string {
	if k.Purpose == "" {
		return "otp:" + k.UserID
	}
	return "otp:" + string(k.Purpose) + ":" + k.UserID
}

// OTPStore is the key-value contract the auth service depends on.
type OTPStore interface {
	Store(ctx context.Context, key OTPKey, code string, ttl time.Duration) error
	Get(ctx context.Context, key OTPKey) (string, error)
	Delete(ctx context.Context, key OTPKey) error
	VerifyAndDelete(ctx context.Context, key OTPKey, code string) (bool, error)
}

// verifyAndDeleteScript deletes the key only when it still holds the
// expected code, so two concurrent verifications cannot both succeed.
var verifyAndDeleteScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// RedisOTPStore keeps one-time codes in Redis with server-side expiry.
type RedisOTPStore struct {
	client *redis.Client
}

// NewRedisOTPStore creates an OTP store backed by the given Redis client.
// A nil client yields a store that reports every operation as transient.
func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

// Store overwrites any existing code for the key and resets its TTL,
// implicitly invalidating a previously issued code.
func (s *RedisOTPStore) Store(ctx context.Context, key OTPKey, code string, ttl time.Duration) error {
	if s.client == nil {
		return ErrTransient("otp store unavailable", nil)
	}

	if err := s.client.Set(ctx, key.String(), code, ttl).Err(); err != nil {
		return ErrTransient("failed to store otp", err)
	}
	return nil
}

// Get returns the code if present and unexpired. A missing code comes back
// as ErrOTPNotFound; a backing-store failure comes back as transient.
func (s *RedisOTPStore) Get(ctx context.Context, key OTPKey) (string, error) {
	if s.client == nil {
		return "", ErrTransient("otp store unavailable", nil)
	}

	code, err := s.client.Get(ctx, key.String()).Result()
	if err == redis.Nil {
		return "", ErrOTPNotFound
	}
	if err != nil {
		return "", ErrTransient("failed to read otp", err)
	}
	return code, nil
}

// Delete removes the code. Deleting a missing key is not an error.
func (s *RedisOTPStore) Delete(ctx context.Context, key OTPKey) error {
	if s.client == nil {
		return ErrTransient("otp store unavailable", nil)
	}

	if err := s.client.Del(ctx, key.String()).Err(); err != nil {
		return ErrTransient("failed to delete otp", err)
	}
	return nil
}

// VerifyAndDelete atomically compares the stored code and removes it on a
// match. Returns false on mismatch or when no code is stored.
func (s *RedisOTPStore) VerifyAndDelete(ctx context.Context, key OTPKey, code string) (bool, error) {
	if s.client == nil {
		return false, ErrTransient("otp store unavailable", nil)
	}

	res, err := verifyAndDeleteScript.Run(ctx, s.client, []string{key.String()}, code).Int()
	if err != nil {
		return false, ErrTransient("failed to verify otp", err)
	}
	return res == 1, nil
}
