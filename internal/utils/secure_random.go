package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// SecureIntn returns a cryptographically secure uniform integer in [0, n).
func SecureIntn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("n must be positive")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return int(v.Int64()), nil
}
