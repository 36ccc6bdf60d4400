package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOTPKeyString(t *testing.T) {
	t.Parallel()

	verify := OTPKey{Purpose: PurposeEmailVerification, UserID: "507f1f77bcf86cd799439011"}
	require.Equal(t, "otp:507f1f77bcf86cd799439011", verify.String())

	reset := OTPKey{Purpose: PurposePasswordReset, UserID: "507f1f77bcf86cd799439011"}
	require.Equal(t, "otp:pwd-reset:507f1f77bcf86cd799439011", reset.String())

	require.NotEqual(t, verify.String(), reset.String())
}

func TestRedisOTPStore_NilClient(t *testing.T) {
	t.Parallel()

	store := NewRedisOTPStore(nil)
	key := OTPKey{UserID: "507f1f77bcf86cd799439011"}
	ctx := context.Background()

	err := store.Store(ctx, key, "123456", DefaultOTPTTL)
	require.Equal(t, KindTransient, KindOf(err))

	_, err = store.Get(ctx, key)
	require.Equal(t, KindTransient, KindOf(err))

	err = store.Delete(ctx, key)
	require.Equal(t, KindTransient, KindOf(err))

	_, err = store.VerifyAndDelete(ctx, key, "123456")
	require.Equal(t, KindTransient, KindOf(err))
}
