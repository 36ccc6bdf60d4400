// utils/otp.go
package utils

import (
	"crypto/rand"
	"math/big"
)

// OTPLength is the number of digits in a generated code.
const OTPLength = 6

// GenerateOTP generates a random numeric one-time code of the given length
// using crypto/rand.
func GenerateOTP(length int) (string, error) {
	const digits = "0123456789"

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}

	return string(code), nil
}
