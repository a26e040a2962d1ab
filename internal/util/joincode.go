package util

import (
	"crypto/rand"
	"math/big"
)

const (
	joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	JoinCodeLength   = 6
)

// RandomJoinCode returns a 6-character uppercase alphanumeric code. It does
// not check for collisions; callers must verify against live profiles and
// resample, with the unique index on student_profiles.join_code as the
// final guard.
func RandomJoinCode() (string, error) {
	buf := make([]byte, JoinCodeLength)
	max := big.NewInt(int64(len(joinCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = joinCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
