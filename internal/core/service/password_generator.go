package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	DefaultGeneratedPasswordLength = 12
	minGeneratedPasswordLength     = 4

	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars   = "0123456789"
	specialChars = "!@#$%&*"
	allChars     = upperChars + lowerChars + digitChars + specialChars
)

// PasswordGenerator builds temporary passwords containing at least one
// uppercase letter, lowercase letter, digit and symbol.
type PasswordGenerator struct {
	length int
}

// NewPasswordGenerator returns a generator for passwords of the given
// length. Zero selects DefaultGeneratedPasswordLength; anything shorter than
// one character per category is raised to that minimum.
func NewPasswordGenerator(length int) *PasswordGenerator {
	if length == 0 {
		length = DefaultGeneratedPasswordLength
	}
	if length < minGeneratedPasswordLength {
		length = minGeneratedPasswordLength
	}
	return &PasswordGenerator{length: length}
}

func (g *PasswordGenerator) Generate() (string, error) {
	buf := make([]byte, 0, g.length)
	for _, set := range []string{upperChars, lowerChars, digitChars, specialChars} {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	for len(buf) < g.length {
		c, err := pick(allChars)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	// Fisher-Yates
	for i := len(buf) - 1; i > 0; i-- {
		j, err := randIndex(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}

func pick(set string) (byte, error) {
	i, err := randIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("password generator: %w", err)
	}
	return int(v.Int64()), nil
}
