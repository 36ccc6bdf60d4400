package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	hash1, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	hash2, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "two hashes of the same password must differ")

	require.NoError(t, CheckPassword("s3cret-password", hash1))
	require.NoError(t, CheckPassword("s3cret-password", hash2))
}

func TestCheckPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	require.Error(t, CheckPassword("battery-staple", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	require.Error(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	require.Error(t, CheckPassword("anything", ""))
}
