package generator

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"math/big"
	"strings"
)

type RandomTokenType string

func tokenTypeFromString(token string) RandomTokenType {
	if token == "" {
		panic("zero length token issued, this is probably the only reason to ever panic")
	}
	return RandomTokenType(token)
}

type RandomTokenGenerator struct{}

// CreateDigitCode creates a fixed-length numeric one-time code,
// left-padded with zeros so every code has exactly `length` digits
func (*RandomTokenGenerator) CreateDigitCode(length int) RandomTokenType {
	digits := make([]byte, length)
	for i := range digits {
		n := genRandNum(0, 10)
		digits[i] = byte('0' + n)
	}
	return tokenTypeFromString(string(digits))
}

// CreateSecureToken creates a url-safe token with 256 bits of entropy
func (*RandomTokenGenerator) CreateSecureToken() RandomTokenType {
	b := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err.Error()) // rand should never fail
	}
	return tokenTypeFromString(removePadding(base64.URLEncoding.EncodeToString(b)))
}

func (*RandomTokenGenerator) CreateSecureTokenWithSize(size int) RandomTokenType {
	b := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err.Error()) // rand should never fail
	}
	return tokenTypeFromString(removePadding(base64.URLEncoding.EncodeToString(b)))
}

func removePadding(token string) string {
	return strings.TrimRight(token, "=")
}

func genRandNum(min, max int64) int64 {
	bg := big.NewInt(max - min)
	n, err := rand.Int(rand.Reader, bg)
	if err != nil {
		panic(err)
	}
	return n.Int64() + min
}

func New() *RandomTokenGenerator {
	return &RandomTokenGenerator{}
}
