package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateDigitCodeLengthAndCharset(t *testing.T) {
	assert := assert.New(t)
	gen := New()
	for i := 0; i < 100; i++ {
		code := string(gen.CreateDigitCode(6))
		assert.Len(code, 6)
		for _, r := range code {
			assert.True(r >= '0' && r <= '9')
		}
	}
}

func TestCreateSecureTokenIsUrlSafe(t *testing.T) {
	assert := assert.New(t)
	gen := New()
	token := string(gen.CreateSecureToken())
	assert.NotEmpty(token)
	assert.NotContains(token, "=")
	assert.NotContains(token, "+")
	assert.NotContains(token, "/")
}

func TestCreateSecureTokenDoesNotRepeat(t *testing.T) {
	assert := assert.New(t)
	gen := New()
	seen := make(map[RandomTokenType]bool)
	for i := 0; i < 50; i++ {
		token := gen.CreateSecureToken()
		assert.False(seen[token])
		seen[token] = true
	}
}
