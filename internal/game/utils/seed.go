package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	// TagLength is the length of generated run tags
	TagLength = 6

	// TagCharset defines the characters used in run tags
	// Excluding similar-looking characters like 0, O, 1, I, etc.
	TagCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// NewSeed generates a non-deterministic seed for a simulation run.
// The seed is drawn from crypto/rand and is always positive so a zero
// value can keep meaning "pick one for me" in configuration.
func NewSeed() (int64, error) {
	max := big.NewInt(0).SetInt64(int64(1) << 62)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0, err
	}
	return n.Int64() + 1, nil
}

// GenerateRunTag creates a random alphanumeric tag for simulation runs
func GenerateRunTag() (string, error) {
	charsetLength := big.NewInt(int64(len(TagCharset)))
	tagBuilder := strings.Builder{}
	tagBuilder.Grow(TagLength)

	for i := 0; i < TagLength; i++ {
		// Generate a random index within the charset
		randomIndex, err := rand.Int(rand.Reader, charsetLength)
		if err != nil {
			return "", err
		}

		// Append the character at the random index to the tag
		tagBuilder.WriteByte(TagCharset[randomIndex.Int64()])
	}

	return tagBuilder.String(), nil
}

// IsValidRunTag checks if a run tag is valid
func IsValidRunTag(tag string) bool {
	if len(tag) != TagLength {
		return false
	}

	// Check if all characters are in the charset
	for _, char := range tag {
		if !strings.ContainsRune(TagCharset, char) {
			return false
		}
	}

	return true
}
