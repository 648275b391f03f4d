package utils

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
)

// GenerateRandomCode returns n random decimal digits.
func GenerateRandomCode(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic(err)
		}
		sb.WriteString(d.String())
	}
	return sb.String()
}

// ParseID parses a positive numeric identifier.
func ParseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
