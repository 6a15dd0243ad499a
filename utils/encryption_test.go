package utils

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	t.Setenv("ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(key))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	testKey(t)

	encrypted, err := EncryptData("483920")
	require.NoError(t, err)
	require.NotEmpty(t, encrypted)
	assert.NotEqual(t, "483920", encrypted)

	decrypted, err := DecryptData(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "483920", decrypted)
}

func TestEncryptDataEmptyInput(t *testing.T) {
	testKey(t)

	encrypted, err := EncryptData("")
	require.NoError(t, err)
	assert.Empty(t, encrypted)
}

func TestEncryptDataMissingKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "")

	_, err := EncryptData("483920")
	assert.Error(t, err)
}

func TestDecryptDataTamperedCiphertext(t *testing.T) {
	testKey(t)

	encrypted, err := EncryptData("483920")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = DecryptData(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err)
}
