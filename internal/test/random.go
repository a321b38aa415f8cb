package test

import (
	"math/rand"
	"strings"
)

const (
	asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
)

// RandomASCIIString returns a pseudo-random alphanumeric string with a
// length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	return randomFrom(asciiLetters, minLen, maxLen)
}

// RandomEmail returns a unique-looking lower-case address on example.com.
func RandomEmail() string {
	return randomFrom(lowerLetters, 6, 12) + "@example.com"
}

// RandomRegistration returns name, email and password that pass registration
// validation.
func RandomRegistration() (name, email, password string) {
	name = strings.ToUpper(randomFrom(lowerLetters, 1, 1)) + randomFrom(lowerLetters, 3, 9)
	return name, RandomEmail(), RandomASCIIString(8, 16)
}

func randomFrom(alphabet string, minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.Intn(maxLen-minLen+1)
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}
