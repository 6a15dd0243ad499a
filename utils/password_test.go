package utils

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestHashAndVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "pbkdf2_sha256$"))

	ok, err := VerifyPassword("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPasswordUsesUniqueSalt(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordInvalidFormats(t *testing.T) {
	_, err := VerifyPassword("pw", "not-a-hash")
	assert.Error(t, err)

	_, err = VerifyPassword("pw", "bcrypt$1$abc$def")
	assert.Error(t, err)

	_, err = VerifyPassword("pw", "pbkdf2_sha256$zero$abc$def")
	assert.Error(t, err)
}

func TestVerifyPasswordHonorsStoredIterations(t *testing.T) {
	// A hash created with a lower iteration count still verifies
	salt := []byte("0123456789abcdef")
	key := pbkdf2.Key([]byte("pw"), salt, 1000, 32, sha256.New)
	encoded := fmt.Sprintf("pbkdf2_sha256$1000$%s$%s",
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	)

	ok, err := VerifyPassword("pw", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}
